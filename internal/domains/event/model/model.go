package model

import (
	"time"

	"stillhouse/shared/identifier"
	"stillhouse/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID               = "id"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldEventType        = "event_type"
	FieldDateRequested    = "date_requested"
	FieldStartTime        = "start_time"
	FieldEndTime          = "end_time"
	FieldGuests           = "guests"
	FieldTotalAmount      = "total_amount"
	FieldDepositAmount    = "deposit_amount"
	FieldDepositPaid      = "deposit_paid"
	FieldBalancePaid      = "balance_paid"
	FieldContacted        = "contacted"
	FieldBarType          = "bar_type"
	FieldBeerWineOffered  = "beer_wine_offered"
	FieldHasFood          = "has_food"
	FieldFoodSource       = "food_source"
	FieldFoodServiceType  = "food_service_type"
	FieldAddParking       = "add_parking"
	FieldHasTasting       = "has_tasting"
	FieldHasTour          = "has_tour"
	FieldNotes            = "notes"
	FieldPushedToCalendar = "pushed_to_calendar"
	FieldCalendarPushedAt = "calendar_pushed_at"
	FieldGoogleEventID    = "google_event_id"
)

// Bar service variants as they appear on contracts and the public form.
const (
	BarTypeCash = "Cash Bar"
	BarTypeOpen = "Open Bar"
	BarTypeNone = "None"
)

const (
	FoodSourceCatered = "Catered (In-house)"
	FoodSourceBYO     = "Bring Your Own"
)

const (
	FoodServiceBuffet = "Buffet"
	FoodServicePassed = "Passed Apps"
	FoodServiceFull   = "Full-Service"
)

// Draft defaults for a new booking before staff touch it.
const (
	DefaultEventType = "Tasting Room Takeover"
	DefaultGuests    = 10
	DefaultStartTime = "12:00"
	DefaultEndTime   = "14:00"
)

type Event struct {
	ID               string     `db:"id"                 json:"id"`
	FirstName        string     `db:"first_name"         json:"first_name"`
	LastName         string     `db:"last_name"          json:"last_name"`
	Email            string     `db:"email"              json:"email"`
	Phone            string     `db:"phone"              json:"phone"`
	EventType        string     `db:"event_type"         json:"event_type"`
	DateRequested    string     `db:"date_requested"     json:"date_requested"`
	StartTime        string     `db:"start_time"         json:"time"`
	EndTime          string     `db:"end_time"           json:"end_time"`
	Guests           int64      `db:"guests"             json:"guests"`
	TotalAmount      int64      `db:"total_amount"       json:"total_amount"`
	DepositAmount    int64      `db:"deposit_amount"     json:"deposit_amount"`
	DepositPaid      bool       `db:"deposit_paid"       json:"deposit_paid"`
	BalancePaid      bool       `db:"balance_paid"       json:"balance_paid"`
	Contacted        bool       `db:"contacted"          json:"contacted"`
	BarType          string     `db:"bar_type"           json:"bar_type"`
	BeerWineOffered  bool       `db:"beer_wine_offered"  json:"beer_wine_offered"`
	HasFood          bool       `db:"has_food"           json:"has_food"`
	FoodSource       string     `db:"food_source"        json:"food_source"`
	FoodServiceType  string     `db:"food_service_type"  json:"food_service_type"`
	AddParking       bool       `db:"add_parking"        json:"add_parking"`
	HasTasting       bool       `db:"has_tasting"        json:"has_tasting"`
	HasTour          bool       `db:"has_tour"           json:"has_tour"`
	Notes            string     `db:"notes"              json:"notes"`
	PushedToCalendar bool       `db:"pushed_to_calendar" json:"pushed_to_calendar"`
	CalendarPushedAt *time.Time `db:"calendar_pushed_at" json:"calendar_pushed_at,omitempty"`
	GoogleEventID    string     `db:"google_event_id"    json:"google_event_id,omitempty"`
	model.Metadata
}

// NewDraft returns a fresh booking with a generated identifier and the
// venue's standard defaults applied.
func NewDraft() Event {
	return Event{
		ID:              identifier.New(),
		EventType:       DefaultEventType,
		Guests:          DefaultGuests,
		StartTime:       DefaultStartTime,
		EndTime:         DefaultEndTime,
		BarType:         BarTypeCash,
		BeerWineOffered: true,
	}
}

// IsNew reports whether staff still owe the client an initial follow up.
func (e *Event) IsNew() bool {
	return !e.Contacted
}

// HasPendingCollections reports whether any payment is outstanding.
func (e *Event) HasPendingCollections() bool {
	return !e.DepositPaid || !e.BalancePaid
}

// Sanitize drops entries that cannot be displayed or aggregated,
// currently those without an identifier. Store adapters occasionally
// hand back padded or half-written rows.
func Sanitize(events []Event) []Event {
	sanitized := make([]Event, 0, len(events))

	for _, event := range events {
		if event.ID == "" {
			continue
		}

		sanitized = append(sanitized, event)
	}

	return sanitized
}
