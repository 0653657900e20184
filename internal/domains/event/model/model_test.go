package model_test

import (
	"encoding/json"
	"testing"

	"stillhouse/internal/domains/event/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft_Defaults(t *testing.T) {
	draft := model.NewDraft()

	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, model.DefaultEventType, draft.EventType)
	assert.Equal(t, int64(model.DefaultGuests), draft.Guests)
	assert.Equal(t, model.DefaultStartTime, draft.StartTime)
	assert.Equal(t, model.DefaultEndTime, draft.EndTime)
	assert.Equal(t, model.BarTypeCash, draft.BarType)
	assert.True(t, draft.BeerWineOffered)

	assert.False(t, draft.Contacted)
	assert.False(t, draft.DepositPaid)
	assert.False(t, draft.BalancePaid)
	assert.False(t, draft.HasFood)
	assert.False(t, draft.AddParking)
	assert.False(t, draft.HasTasting)
	assert.False(t, draft.HasTour)
	assert.Zero(t, draft.TotalAmount)
	assert.Zero(t, draft.DepositAmount)
}

func TestNewDraft_FreshIdentifiers(t *testing.T) {
	assert.NotEqual(t, model.NewDraft().ID, model.NewDraft().ID)
}

func TestEvent_Predicates(t *testing.T) {
	event := model.Event{Contacted: false, DepositPaid: false, BalancePaid: false}
	assert.True(t, event.IsNew())
	assert.True(t, event.HasPendingCollections())

	event.Contacted = true
	assert.False(t, event.IsNew())

	event.DepositPaid = true
	assert.True(t, event.HasPendingCollections(), "balance still open")

	event.BalancePaid = true
	assert.False(t, event.HasPendingCollections())
}

func TestSanitize(t *testing.T) {
	events := []model.Event{
		{ID: "evt-1"},
		{},
		{ID: "evt-2"},
		{},
	}

	sanitized := model.Sanitize(events)

	require.Len(t, sanitized, 2)
	assert.Equal(t, "evt-1", sanitized[0].ID)
	assert.Equal(t, "evt-2", sanitized[1].ID)
}

func TestSanitize_Empty(t *testing.T) {
	assert.Empty(t, model.Sanitize(nil))
	assert.Empty(t, model.Sanitize([]model.Event{}))
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	original := model.NewDraft()
	original.FirstName = "Mara"
	original.LastName = "Quinn"
	original.Email = "mara@example.com"
	original.Phone = "555-0142"
	original.DateRequested = "2026-10-03"
	original.Guests = 40
	original.TotalAmount = 3100
	original.DepositAmount = 775
	original.BarType = model.BarTypeOpen
	original.HasFood = true
	original.FoodSource = model.FoodSourceCatered
	original.FoodServiceType = model.FoodServicePassed
	original.Notes = "allergy table near the stillroom"

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded model.Event
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, original, decoded)
}
