package inquiry

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stillhouse/infras/otel"
	"stillhouse/internal/domains/event/model/dto"
	"stillhouse/internal/domains/event/service"
	"stillhouse/shared/constant"
	"stillhouse/shared/validator"
	"stillhouse/transport/http/response"
)

// Handler takes booking inquiries from the public website form. It is
// the one unauthenticated write surface, so it accepts a narrower
// payload than the admin form and never echoes internal fields back.
type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inquiries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInquiry)
	})
}

// CreateInquiry handles a public booking inquiry.
// @Summary Submit a booking inquiry
// @Description Create a booking from the public inquiry form. The booking always starts uncontacted and unpaid.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param request body dto.InquiryRequest true "Inquiry Request"
// @Success 201 {object} response.Data[dto.EventResponse] "Inquiry received"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [post]
func (handler *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInquiry")
	defer scope.End()

	req := dto.InquiryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate inquiry body")

		response.WithError(w, err)

		return
	}

	event, err := handler.service.CreateInquiry(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inquiry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry received from " + req.Email)

	response.WithJSON(w, http.StatusCreated, event)
}
