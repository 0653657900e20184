package calendarhook

//go:generate go run go.uber.org/mock/mockgen -source=./calendarhook.go -destination=./mocks/calendarhook_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"stillhouse/config"
	"stillhouse/infras/otel"
	"stillhouse/shared/constant"
)

// ErrNotConfigured means no webhook URL is set; pushing is disabled and
// nothing was sent.
var ErrNotConfigured = errors.New("calendar webhook URL not configured")

const defaultTimeoutSeconds = 10

// fallbackEventID is used when the webhook acknowledges without
// returning an upstream event id.
const fallbackEventID = "pushed"

// Request is one calendar entry to create upstream. The venue location
// is appended by the client from configuration.
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location"`
	EventID     string `json:"eventId"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
}

// Result reports a successful push.
type Result struct {
	GoogleEventID string
	PushedAt      time.Time
}

// Pusher sends bookings to the calendar automation webhook.
type Pusher interface {
	Push(ctx context.Context, req Request) (Result, error)
}

type pusherImpl struct {
	cfg    *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(cfg *config.Config, ot otel.Otel) Pusher {
	timeout := cfg.External.Calendar.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &pusherImpl{
		cfg:  cfg,
		otel: ot,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

func (p *pusherImpl) Push(ctx context.Context, req Request) (res Result, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".CalendarPush")
	defer scope.End()
	defer scope.TraceIfError(err)

	webhookURL := p.cfg.External.Calendar.WebhookURL
	if webhookURL == "" {
		return res, ErrNotConfigured
	}

	req.Location = p.cfg.External.Calendar.VenueLocation
	scope.SetAttribute("calendar.event_id", req.EventID)

	payload, err := json.Marshal(req)
	if err != nil {
		return res, fmt.Errorf("failed to marshal calendar payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return res, fmt.Errorf("failed to build calendar request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	httpRes, err := p.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("eventID", req.EventID).Msg("calendar webhook request failed")

		return res, fmt.Errorf("calendar webhook request failed: %w", err)
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode < http.StatusOK || httpRes.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", httpRes.StatusCode).Str("eventID", req.EventID).Msg("calendar webhook rejected push")

		return res, fmt.Errorf("calendar webhook rejected push: %s", httpRes.Status)
	}

	var ack struct {
		ID            string `json:"id"`
		GoogleEventID string `json:"google_event_id"`
	}

	// some automations acknowledge with an empty body; treat that as
	// pushed without an upstream id
	if err := json.NewDecoder(httpRes.Body).Decode(&ack); err != nil {
		ack = struct {
			ID            string `json:"id"`
			GoogleEventID string `json:"google_event_id"`
		}{}
	}

	res.GoogleEventID = ack.ID
	if res.GoogleEventID == "" {
		res.GoogleEventID = ack.GoogleEventID
	}

	if res.GoogleEventID == "" {
		res.GoogleEventID = fallbackEventID
	}

	res.PushedAt = time.Now()

	log.Info().Str("eventID", req.EventID).Str("googleEventID", res.GoogleEventID).Msg("booking pushed to calendar")

	return res, nil
}
