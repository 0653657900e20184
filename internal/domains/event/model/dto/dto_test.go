package dto_test

import (
	"encoding/json"
	"testing"

	"stillhouse/internal/domains/event/model"
	"stillhouse/internal/domains/event/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnits_Coercion(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int64
	}{
		{"plain number", `{"guests": 40}`, 40},
		{"quoted number", `{"guests": "25"}`, 25},
		{"empty string", `{"guests": ""}`, 0},
		{"non-numeric", `{"guests": "a few"}`, 0},
		{"negative clamps to zero", `{"guests": -3}`, 0},
		{"null", `{"guests": null}`, 0},
		{"fractional rounds", `{"guests": 12.6}`, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				Guests dto.Units `json:"guests"`
			}

			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			assert.Equal(t, tt.want, int64(req.Guests))
		})
	}
}

func TestCreateEventRequest_ToModel_Defaults(t *testing.T) {
	req := dto.CreateEventRequest{
		FirstName: "Mara",
		Email:     "mara@example.com",
	}

	event := req.ToModel("ops@stillhouse.example")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, model.DefaultEventType, event.EventType)
	assert.Equal(t, int64(model.DefaultGuests), event.Guests)
	assert.Equal(t, model.DefaultStartTime, event.StartTime)
	assert.Equal(t, model.DefaultEndTime, event.EndTime)
	assert.Equal(t, model.BarTypeCash, event.BarType)
	assert.True(t, event.BeerWineOffered)
	assert.Equal(t, "ops@stillhouse.example", event.CreatedBy)
}

func TestCreateEventRequest_ToModel_Overrides(t *testing.T) {
	guests := dto.Units(55)
	beerWine := false

	req := dto.CreateEventRequest{
		FirstName:       "Mara",
		Email:           "mara@example.com",
		EventType:       "Wedding",
		DateRequested:   "2026-10-03",
		StartTime:       "17:00",
		EndTime:         "22:00",
		Guests:          &guests,
		BarType:         model.BarTypeOpen,
		BeerWineOffered: &beerWine,
		TotalAmount:     4000,
		DepositAmount:   1000,
	}

	event := req.ToModel("ops@stillhouse.example")

	assert.Equal(t, "Wedding", event.EventType)
	assert.Equal(t, int64(55), event.Guests)
	assert.Equal(t, "17:00", event.StartTime)
	assert.Equal(t, "22:00", event.EndTime)
	assert.Equal(t, model.BarTypeOpen, event.BarType)
	assert.False(t, event.BeerWineOffered)
	assert.Equal(t, int64(4000), event.TotalAmount)
	assert.Equal(t, int64(1000), event.DepositAmount)
}

func TestCreateEventRequest_ToModel_LegacyDuration(t *testing.T) {
	req := dto.CreateEventRequest{
		FirstName:     "Mara",
		Email:         "mara@example.com",
		StartTime:     "11:00",
		DurationHours: 2.5,
	}

	event := req.ToModel("ops")

	assert.Equal(t, "13:30", event.EndTime)
}

func TestCreateEventRequest_ToModel_ExplicitEndWinsOverDuration(t *testing.T) {
	req := dto.CreateEventRequest{
		FirstName:     "Mara",
		Email:         "mara@example.com",
		StartTime:     "11:00",
		EndTime:       "15:00",
		DurationHours: 2,
	}

	event := req.ToModel("ops")

	assert.Equal(t, "15:00", event.EndTime)
}

func TestInquiryRequest_ToModel_ForcesCleanFollowUpState(t *testing.T) {
	req := dto.InquiryRequest{
		FirstName:     "Jo",
		LastName:      "Barnes",
		Email:         "jo@example.com",
		Phone:         "555-0101",
		EventType:     "Corporate",
		DateRequested: "2026-11-20",
	}

	event := req.ToModel()

	assert.False(t, event.Contacted)
	assert.False(t, event.DepositPaid)
	assert.False(t, event.BalancePaid)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "Corporate", event.EventType)
	assert.Equal(t, "jo@example.com", event.CreatedBy)
	assert.Zero(t, event.TotalAmount)
}

func TestUpdateEventRequest_IsEmpty(t *testing.T) {
	empty := dto.UpdateEventRequest{}
	assert.True(t, empty.IsEmpty())

	contacted := true
	patch := dto.UpdateEventRequest{Contacted: &contacted}
	assert.False(t, patch.IsEmpty())
}

func TestEstimateRequest_ToModel(t *testing.T) {
	req := dto.EstimateRequest{
		Guests:     10,
		BarType:    model.BarTypeOpen,
		HasFood:    true,
		FoodSource: model.FoodSourceCatered,
	}

	event := req.ToModel()

	assert.Equal(t, int64(10), event.Guests)
	assert.True(t, event.BeerWineOffered, "defaults to offered when omitted")
	assert.Equal(t, model.BarTypeOpen, event.BarType)
}

func TestEventResponse_FromModel(t *testing.T) {
	event := model.Event{
		ID:              "evt-1",
		FirstName:       "Mara",
		StartTime:       "12:00",
		EndTime:         "15:00",
		HasFood:         false,
		FoodSource:      model.FoodSourceCatered, // stale
		FoodServiceType: model.FoodServiceBuffet, // stale
	}

	var res dto.EventResponse
	res.FromModel(event)

	assert.Equal(t, "12-3pm", res.TimeWindow)
	assert.Empty(t, res.FoodSource, "stale catering fields hidden")
	assert.Empty(t, res.FoodServiceType)
}

func TestGetEventsResponse_FromModels(t *testing.T) {
	models := []model.Event{{ID: "a"}, {ID: "b"}}

	var res dto.GetEventsResponse
	res.FromModels(models, 120, 50)

	assert.Len(t, res.Events, 2)
	assert.Equal(t, 120, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}
