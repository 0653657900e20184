package dto

import (
	"math"
	"strconv"
	"strings"

	"stillhouse/internal/domains/event/model"
	"stillhouse/internal/domains/event/pricing"
	"stillhouse/internal/domains/event/report"
	"stillhouse/shared"
	gDto "stillhouse/shared/dto"
	"stillhouse/shared/timewindow"
	"stillhouse/shared/timezone"
)

// Units is a non-negative whole number field as the dashboard forms
// submit it: sometimes a number, sometimes a quoted string, sometimes
// blank. Anything unusable coerces to zero rather than failing the
// request, and negatives clamp to zero.
type Units int64

func (u *Units) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)

	if raw == "" || raw == "null" {
		*u = 0

		return nil
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || parsed < 0 {
		*u = 0

		return nil
	}

	*u = Units(math.Round(parsed))

	return nil
}

type CreateEventRequest struct {
	FirstName       string  `json:"first_name"        validate:"required,max=100"`
	LastName        string  `json:"last_name"         validate:"omitempty,max=100"`
	Email           string  `json:"email"             validate:"required,email,max=100"`
	Phone           string  `json:"phone"             validate:"omitempty,max=30"`
	EventType       string  `json:"event_type"        validate:"omitempty,max=100"`
	DateRequested   string  `json:"date_requested"    validate:"omitempty,caldate"`
	StartTime       string  `json:"time"              validate:"omitempty,clocktime"`
	EndTime         string  `json:"end_time"          validate:"omitempty,clocktime"`
	DurationHours   float64 `json:"duration"          validate:"omitempty,gte=0"`
	Guests          *Units  `json:"guests"            validate:"omitempty"`
	TotalAmount     Units   `json:"total_amount"      validate:"omitempty"`
	DepositAmount   Units   `json:"deposit_amount"    validate:"omitempty"`
	DepositPaid     bool    `json:"deposit_paid"`
	BalancePaid     bool    `json:"balance_paid"`
	Contacted       bool    `json:"contacted"`
	BarType         string  `json:"bar_type"          validate:"omitempty,enumlist=Cash Bar0x7COpen Bar0x7CNone"`
	BeerWineOffered *bool   `json:"beer_wine_offered"`
	HasFood         bool    `json:"has_food"`
	FoodSource      string  `json:"food_source"       validate:"omitempty,enumlist=Catered (In-house)0x7CBring Your Own"`
	FoodServiceType string  `json:"food_service_type" validate:"omitempty,enumlist=Buffet0x7CPassed Apps0x7CFull-Service"`
	AddParking      bool    `json:"add_parking"`
	HasTasting      bool    `json:"has_tasting"`
	HasTour         bool    `json:"has_tour"`
	Notes           string  `json:"notes"`
}

// ToModel builds the booking from draft defaults overlaid with
// whatever the form supplied. Legacy payloads that send a duration
// instead of an end time get one computed.
func (c *CreateEventRequest) ToModel(user string) model.Event {
	event := model.NewDraft()

	event.FirstName = c.FirstName
	event.LastName = c.LastName
	event.Email = c.Email
	event.Phone = c.Phone
	event.DateRequested = c.DateRequested
	event.TotalAmount = int64(c.TotalAmount)
	event.DepositAmount = int64(c.DepositAmount)
	event.DepositPaid = c.DepositPaid
	event.BalancePaid = c.BalancePaid
	event.Contacted = c.Contacted
	event.HasFood = c.HasFood
	event.FoodSource = c.FoodSource
	event.FoodServiceType = c.FoodServiceType
	event.AddParking = c.AddParking
	event.HasTasting = c.HasTasting
	event.HasTour = c.HasTour
	event.Notes = c.Notes

	if c.EventType != "" {
		event.EventType = c.EventType
	}

	if c.Guests != nil {
		event.Guests = int64(*c.Guests)
	}

	if c.StartTime != "" {
		event.StartTime = c.StartTime
	}

	switch {
	case c.EndTime != "":
		event.EndTime = c.EndTime
	case c.DurationHours > 0:
		if end := timewindow.EndOf(event.StartTime, c.DurationHours); end != "" {
			event.EndTime = end
		}
	}

	if c.BarType != "" {
		event.BarType = c.BarType
	}

	if c.BeerWineOffered != nil {
		event.BeerWineOffered = *c.BeerWineOffered
	}

	event.Metadata.Stamp(timezone.Now(), user)

	return event
}

// InquiryRequest is the public booking form. Clients must be
// reachable, so contact fields are mandatory; staff follow-up and
// payment state always start cleared regardless of what was posted.
type InquiryRequest struct {
	FirstName     string  `json:"first_name"     validate:"required,max=100"`
	LastName      string  `json:"last_name"      validate:"required,max=100"`
	Email         string  `json:"email"          validate:"required,email,max=100"`
	Phone         string  `json:"phone"          validate:"required,max=30"`
	EventType     string  `json:"event_type"     validate:"omitempty,max=100"`
	DateRequested string  `json:"date_requested" validate:"omitempty,caldate"`
	StartTime     string  `json:"time"           validate:"omitempty,clocktime"`
	EndTime       string  `json:"end_time"       validate:"omitempty,clocktime"`
	DurationHours float64 `json:"duration"       validate:"omitempty,gte=0"`
	Guests        *Units  `json:"guests"         validate:"omitempty"`
	BarType       string  `json:"bar_type"       validate:"omitempty,enumlist=Cash Bar0x7COpen Bar0x7CNone"`
	Notes         string  `json:"notes"`
}

func (i *InquiryRequest) ToModel() model.Event {
	event := model.NewDraft()

	event.FirstName = i.FirstName
	event.LastName = i.LastName
	event.Email = i.Email
	event.Phone = i.Phone
	event.DateRequested = i.DateRequested
	event.Notes = i.Notes

	if i.EventType != "" {
		event.EventType = i.EventType
	}

	if i.Guests != nil {
		event.Guests = int64(*i.Guests)
	}

	if i.StartTime != "" {
		event.StartTime = i.StartTime
	}

	switch {
	case i.EndTime != "":
		event.EndTime = i.EndTime
	case i.DurationHours > 0:
		if end := timewindow.EndOf(event.StartTime, i.DurationHours); end != "" {
			event.EndTime = end
		}
	}

	if i.BarType != "" {
		event.BarType = i.BarType
	}

	// inquiries always land uncontacted and unpaid
	event.Contacted = false
	event.DepositPaid = false
	event.BalancePaid = false

	event.Metadata.Stamp(timezone.Now(), event.Email)

	return event
}

// UpdateEventRequest carries a staff PATCH. Pointer fields distinguish
// "set to false/zero" from "leave alone"; anything nil stays as is.
// The id itself is never updatable.
type UpdateEventRequest struct {
	FirstName       string  `db:"first_name"        json:"first_name"        validate:"omitempty,max=100"`
	LastName        string  `db:"last_name"         json:"last_name"         validate:"omitempty,max=100"`
	Email           string  `db:"email"             json:"email"             validate:"omitempty,email,max=100"`
	Phone           string  `db:"phone"             json:"phone"             validate:"omitempty,max=30"`
	EventType       string  `db:"event_type"        json:"event_type"        validate:"omitempty,max=100"`
	DateRequested   string  `db:"date_requested"    json:"date_requested"    validate:"omitempty,caldate"`
	StartTime       string  `db:"start_time"        json:"time"              validate:"omitempty,clocktime"`
	EndTime         string  `db:"end_time"          json:"end_time"          validate:"omitempty,clocktime"`
	Guests          *Units  `db:"guests"            json:"guests"            validate:"omitempty"`
	TotalAmount     *Units  `db:"total_amount"      json:"total_amount"      validate:"omitempty"`
	DepositAmount   *Units  `db:"deposit_amount"    json:"deposit_amount"    validate:"omitempty"`
	DepositPaid     *bool   `db:"deposit_paid"      json:"deposit_paid"`
	BalancePaid     *bool   `db:"balance_paid"      json:"balance_paid"`
	Contacted       *bool   `db:"contacted"         json:"contacted"`
	BarType         string  `db:"bar_type"          json:"bar_type"          validate:"omitempty,enumlist=Cash Bar0x7COpen Bar0x7CNone"`
	BeerWineOffered *bool   `db:"beer_wine_offered" json:"beer_wine_offered"`
	HasFood         *bool   `db:"has_food"          json:"has_food"`
	FoodSource      string  `db:"food_source"       json:"food_source"       validate:"omitempty,enumlist=Catered (In-house)0x7CBring Your Own"`
	FoodServiceType string  `db:"food_service_type" json:"food_service_type" validate:"omitempty,enumlist=Buffet0x7CPassed Apps0x7CFull-Service"`
	AddParking      *bool   `db:"add_parking"       json:"add_parking"`
	HasTasting      *bool   `db:"has_tasting"       json:"has_tasting"`
	HasTour         *bool   `db:"has_tour"          json:"has_tour"`
	Notes           *string `db:"notes"             json:"notes"`
}

// IsEmpty reports whether the patch carries nothing to apply.
func (u *UpdateEventRequest) IsEmpty() bool {
	return *u == (UpdateEventRequest{})
}

// EstimateRequest is the subset of a draft the price estimator needs.
type EstimateRequest struct {
	Guests          Units  `json:"guests"            validate:"omitempty"`
	BarType         string `json:"bar_type"          validate:"omitempty,enumlist=Cash Bar0x7COpen Bar0x7CNone"`
	BeerWineOffered *bool  `json:"beer_wine_offered"`
	HasFood         bool   `json:"has_food"`
	FoodSource      string `json:"food_source"       validate:"omitempty,enumlist=Catered (In-house)0x7CBring Your Own"`
	AddParking      bool   `json:"add_parking"`
	HasTasting      bool   `json:"has_tasting"`
	HasTour         bool   `json:"has_tour"`
}

func (e *EstimateRequest) ToModel() model.Event {
	beerWine := true
	if e.BeerWineOffered != nil {
		beerWine = *e.BeerWineOffered
	}

	return model.Event{
		Guests:          int64(e.Guests),
		BarType:         e.BarType,
		BeerWineOffered: beerWine,
		HasFood:         e.HasFood,
		FoodSource:      e.FoodSource,
		AddParking:      e.AddParking,
		HasTasting:      e.HasTasting,
		HasTour:         e.HasTour,
	}
}

type EstimateResponse struct {
	pricing.Estimate
}

type EventResponse struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EventType        string `json:"event_type"`
	DateRequested    string `json:"date_requested"`
	StartTime        string `json:"time"`
	EndTime          string `json:"end_time"`
	TimeWindow       string `json:"time_window"`
	Guests           int64  `json:"guests"`
	TotalAmount      int64  `json:"total_amount"`
	DepositAmount    int64  `json:"deposit_amount"`
	DepositPaid      bool   `json:"deposit_paid"`
	BalancePaid      bool   `json:"balance_paid"`
	Contacted        bool   `json:"contacted"`
	BarType          string `json:"bar_type"`
	BeerWineOffered  bool   `json:"beer_wine_offered"`
	HasFood          bool   `json:"has_food"`
	FoodSource       string `json:"food_source,omitempty"`
	FoodServiceType  string `json:"food_service_type,omitempty"`
	AddParking       bool   `json:"add_parking"`
	HasTasting       bool   `json:"has_tasting"`
	HasTour          bool   `json:"has_tour"`
	Notes            string `json:"notes"`
	PushedToCalendar bool   `json:"pushed_to_calendar"`
	CalendarPushedAt string `json:"calendar_pushed_at,omitempty"`
	GoogleEventID    string `json:"google_event_id,omitempty"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(event model.Event) {
	r.ID = event.ID
	r.FirstName = event.FirstName
	r.LastName = event.LastName
	r.Email = event.Email
	r.Phone = event.Phone
	r.EventType = event.EventType
	r.DateRequested = event.DateRequested
	r.StartTime = event.StartTime
	r.EndTime = event.EndTime
	r.TimeWindow = timewindow.Format(event.StartTime, event.EndTime)
	r.Guests = event.Guests
	r.TotalAmount = event.TotalAmount
	r.DepositAmount = event.DepositAmount
	r.DepositPaid = event.DepositPaid
	r.BalancePaid = event.BalancePaid
	r.Contacted = event.Contacted
	r.BarType = event.BarType
	r.BeerWineOffered = event.BeerWineOffered
	r.HasFood = event.HasFood
	r.AddParking = event.AddParking
	r.HasTasting = event.HasTasting
	r.HasTour = event.HasTour
	r.Notes = event.Notes
	r.PushedToCalendar = event.PushedToCalendar
	r.GoogleEventID = event.GoogleEventID
	r.Metadata.FromModel(event.Metadata)

	// stale catering fields stay out of responses when food is off
	if event.HasFood {
		r.FoodSource = event.FoodSource
		r.FoodServiceType = event.FoodServiceType
	}

	if event.CalendarPushedAt != nil {
		r.CalendarPushedAt = timezone.Format(*event.CalendarPushedAt, "2006-01-02T15:04:05Z07:00")
	}
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}

type StatsResponse struct {
	report.Stats
}

type RevenueResponse struct {
	report.RevenueSummary
}

// SheetResponse is the printable event order payload.
type SheetResponse struct {
	EventID       string `json:"event_id"`
	ClientName    string `json:"client_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	EventType     string `json:"event_type"`
	DateStamp     string `json:"date_stamp"`
	TimeWindow    string `json:"time_window"`
	Guests        int64  `json:"guests"`
	BarService    string `json:"bar_service"`
	BarFeeNote    string `json:"bar_fee_note"`
	HasFood       bool   `json:"has_food"`
	FoodSource    string `json:"food_source,omitempty"`
	FoodStyle     string `json:"food_style,omitempty"`
	FacilityUsage string `json:"facility_usage"`
	TotalAmount   int64  `json:"total_amount"`
	DepositAmount int64  `json:"deposit_amount"`
	DepositPaid   bool   `json:"deposit_paid"`
	BalancePaid   bool   `json:"balance_paid"`
	UncorkingFee  int64  `json:"uncorking_fee,omitempty"`
	Notes         string `json:"notes"`
	Briefing      string `json:"briefing,omitempty"`
}

type CalendarPushResponse struct {
	EventID          string `json:"event_id"`
	GoogleEventID    string `json:"google_event_id"`
	PushedToCalendar bool   `json:"pushed_to_calendar"`
	CalendarPushedAt string `json:"calendar_pushed_at"`
}

type BriefingResponse struct {
	EventID  string `json:"event_id"`
	Briefing string `json:"briefing"`
}
