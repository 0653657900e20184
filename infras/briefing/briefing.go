package briefing

//go:generate go run go.uber.org/mock/mockgen -source=./briefing.go -destination=./mocks/briefing_mock.go -package=mocks

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

// ErrNotConfigured means no API key is set; briefing generation is
// disabled.
var ErrNotConfigured = errors.New("briefing generator not configured")

const (
	defaultEndpoint       = "https://generativelanguage.googleapis.com"
	defaultModel          = "gemini-3-flash-preview"
	defaultTimeoutSeconds = 30

	systemInstruction = "You are an expert event coordinator. Generate a highly professional, concise Front of House (FOH) intelligence briefing based on the provided event data. Focus on critical operational details."
)

// Input is the event data the briefing prompt is assembled from.
type Input struct {
	EventType   string
	GuestName   string
	Guests      int64
	BarType     string
	FoodDetails string
	Notes       string
}

// Generator produces a staff briefing text for one booking.
type Generator interface {
	Generate(ctx context.Context, input Input) (string, error)
}

type generatorImpl struct {
	cfg    *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(cfg *config.Config, ot otel.Otel) Generator {
	timeout := cfg.External.Briefing.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &generatorImpl{
		cfg:  cfg,
		otel: ot,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

type generateRequest struct {
	SystemInstruction content   `json:"system_instruction"`
	Contents          []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *generatorImpl) Generate(ctx context.Context, input Input) (text string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GenerateBriefing")
	defer scope.End()
	defer scope.TraceIfError(err)

	apiKey := g.cfg.External.Briefing.APIKey
	if apiKey == "" {
		return "", ErrNotConfigured
	}

	endpoint := g.cfg.External.Briefing.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	model := g.cfg.External.Briefing.Model
	if model == "" {
		model = defaultModel
	}

	body := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt(input)}}}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal briefing request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", endpoint, model, apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build briefing request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	httpRes, err := g.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("briefing request failed")

		return "", fmt.Errorf("briefing request failed: %w", err)
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode != http.StatusOK {
		log.Error().Int("status", httpRes.StatusCode).Msg("briefing generator rejected request")

		return "", fmt.Errorf("briefing generator rejected request: %s", httpRes.Status)
	}

	var res generateResponse
	if err := json.NewDecoder(httpRes.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("failed to decode briefing response: %w", err)
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("briefing response contained no text")
	}

	return res.Candidates[0].Content.Parts[0].Text, nil
}

func prompt(input Input) string {
	return fmt.Sprintf(
		"Generate a concise Front of House (FOH) intelligence briefing for:\n"+
			"Event: %s\n"+
			"Guest: %s\n"+
			"Count: %d\n"+
			"Bar Selection: %s\n"+
			"Catering: %s\n"+
			"Specific Client Notes: %s",
		input.EventType,
		input.GuestName,
		input.Guests,
		input.BarType,
		input.FoodDetails,
		input.Notes,
	)
}
