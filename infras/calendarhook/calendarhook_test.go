package calendarhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stillhouse/config"
	"stillhouse/infras/calendarhook"
	"stillhouse/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPusher(webhookURL string) calendarhook.Pusher {
	cfg := &config.Config{}
	cfg.External.Calendar.WebhookURL = webhookURL
	cfg.External.Calendar.VenueLocation = "Distillery Tasting Room & Production Floor"

	return calendarhook.New(cfg, mocks.NewOtel())
}

func TestPush_Success(t *testing.T) {
	var received calendarhook.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]string{"google_event_id": "gcal-123"})
	}))
	defer server.Close()

	result, err := newPusher(server.URL).Push(context.Background(), calendarhook.Request{
		Title:       "Wedding - Mara Quinn",
		Start:       "2026-10-03T17:00:00Z",
		End:         "2026-10-03T22:00:00Z",
		EventID:     "evt-1",
		ClientEmail: "mara@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "gcal-123", result.GoogleEventID)
	assert.False(t, result.PushedAt.IsZero())

	assert.Equal(t, "evt-1", received.EventID)
	assert.Equal(t, "Distillery Tasting Room & Production Floor", received.Location, "location comes from config")
}

func TestPush_IDFieldPreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "upstream-9", "google_event_id": "ignored"})
	}))
	defer server.Close()

	result, err := newPusher(server.URL).Push(context.Background(), calendarhook.Request{EventID: "evt-1"})

	require.NoError(t, err)
	assert.Equal(t, "upstream-9", result.GoogleEventID)
}

func TestPush_EmptyAckBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result, err := newPusher(server.URL).Push(context.Background(), calendarhook.Request{EventID: "evt-1"})

	require.NoError(t, err)
	assert.Equal(t, "pushed", result.GoogleEventID)
}

func TestPush_UpstreamRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newPusher(server.URL).Push(context.Background(), calendarhook.Request{EventID: "evt-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestPush_NotConfigured(t *testing.T) {
	_, err := newPusher("").Push(context.Background(), calendarhook.Request{EventID: "evt-1"})

	assert.ErrorIs(t, err, calendarhook.ErrNotConfigured)
}
