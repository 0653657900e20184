package event

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stillhouse/infras/otel"
	"stillhouse/internal/domains/event/model"
	"stillhouse/internal/domains/event/model/dto"
	"stillhouse/internal/domains/event/service"
	"stillhouse/shared/constant"
	gDto "stillhouse/shared/dto"
	"stillhouse/shared/validator"
	"stillhouse/transport/http/response"
)

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
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEvent)
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Post("/estimate", handler.EstimateEvent)
		routerGroup.Get("/{id}", handler.GetEventByID)
		routerGroup.Patch("/{id}", handler.UpdateEvent)
		routerGroup.Delete("/{id}", handler.DeleteEvent)
		routerGroup.Get("/{id}/sheet", handler.GetEventSheet)
		routerGroup.Post("/{id}/calendar", handler.PushEventToCalendar)
		routerGroup.Get("/{id}/briefing", handler.GetEventBriefing)
	})
}

// CreateEvent handles the creation of a new booking from the admin form.
// @Summary Create a new event booking
// @Description Create a new private event booking with draft defaults for anything omitted.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Create Event Request"
// @Success 201 {object} response.Data[dto.EventResponse] "Event created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [post]
// @Security BearerAuth
func (handler *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEvent")
	defer scope.End()

	req := dto.CreateEventRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	event, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create event")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, event)
}

// GetEvents retrieves bookings for a dashboard view.
// @Summary Get event bookings
// @Description Retrieve bookings with optional view mode, type and date-range filtering.
// @Tags Event
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param mode query string false "View mode (all, new, pending_deposit)"
// @Param event_type query string false "Filter by event type"
// @Param from query string false "Requested date lower bound (YYYY-MM-DD)"
// @Param to query string false "Requested date upper bound (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetEventsResponse] "List of events"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
// @Security BearerAuth
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	mode := r.URL.Query().Get(constant.RequestParamMode)
	eventType := r.URL.Query().Get(model.FieldEventType)
	from := r.URL.Query().Get(constant.RequestParamFrom)
	to := r.URL.Query().Get(constant.RequestParamTo)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if eventType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEventType,
			Operator: gDto.FilterOperatorEq,
			Value:    eventType,
			Table:    model.TableName,
		})
	}

	if from != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  constant.RequestParamFrom,
			Field:    model.FieldDateRequested,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if to != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  constant.RequestParamTo,
			Field:    model.FieldDateRequested,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		})
	}

	events, err := handler.service.GetAll(ctx, queryParams, filterGroup, mode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Events retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

// GetStats retrieves the dashboard headline statistics.
// @Summary Get booking statistics
// @Description Retrieve total, revenue, new-request and pending-deposit counts over all bookings.
// @Tags Event
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Booking statistics"
// @Failure 500 {object} response.Error
// @Router /v1/events/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetRevenue retrieves the monthly revenue summary.
// @Summary Get monthly revenue summary
// @Description Retrieve booked revenue bucketed by requested month, with peak and average figures.
// @Tags Event
// @Produce json
// @Success 200 {object} response.Data[dto.RevenueResponse] "Monthly revenue summary"
// @Failure 500 {object} response.Error
// @Router /v1/events/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	revenue, err := handler.service.Revenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, revenue)
}

// EstimateEvent suggests a price for a draft booking.
// @Summary Estimate a booking price
// @Description Compute an advisory price suggestion for a draft; nothing is stored.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body dto.EstimateRequest true "Estimate Request"
// @Success 200 {object} response.Data[dto.EstimateResponse] "Price suggestion"
// @Failure 400 {object} response.Error
// @Router /v1/events/estimate [post]
// @Security BearerAuth
func (handler *Handler) EstimateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EstimateEvent")
	defer scope.End()

	req := dto.EstimateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, handler.service.Estimate(ctx, req))
}

// GetEventByID retrieves a booking by its ID.
// @Summary Get an event by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.EventResponse] "Event details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	event, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, event)
}

// UpdateEvent applies a partial update to a booking.
// @Summary Update an event
// @Description Apply a partial update; omitted fields stay unchanged, the id is immutable.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Update Event Request"
// @Success 200 {object} response.Message "Event updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEventRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update event")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event updated successfully")
}

// DeleteEvent removes a booking permanently.
// @Summary Delete an event
// @Description Delete a booking permanently. This cannot be undone.
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete event")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event deleted successfully")
}

// GetEventSheet retrieves the printable event order sheet.
// @Summary Get the event order sheet
// @Description Retrieve the printable event order payload, including the staff briefing when available.
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.SheetResponse] "Event order sheet"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id}/sheet [get]
// @Security BearerAuth
func (handler *Handler) GetEventSheet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventSheet")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	sheet, err := handler.service.Sheet(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build event sheet")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, sheet)
}

// PushEventToCalendar sends a booking to the calendar automation webhook.
// @Summary Push an event to the calendar
// @Description Send the booking to the calendar webhook and persist the sync state on success.
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.CalendarPushResponse] "Calendar push result"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/events/{id}/calendar [post]
// @Security BearerAuth
func (handler *Handler) PushEventToCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PushEventToCalendar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	result, err := handler.service.PushToCalendar(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to push event to calendar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event pushed to calendar: " + id)

	response.WithJSON(w, http.StatusOK, result)
}

// GetEventBriefing generates the staff briefing for a booking.
// @Summary Get the staff briefing
// @Description Generate a Front of House briefing for the booking via the text-generation service.
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.BriefingResponse] "Staff briefing"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/events/{id}/briefing [get]
// @Security BearerAuth
func (handler *Handler) GetEventBriefing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventBriefing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	briefing, err := handler.service.Briefing(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate event briefing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, briefing)
}
