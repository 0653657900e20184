package pricing

import (
	"math"

	"stillhouse/internal/domains/event/model"
)

// Rate card, whole currency units. The uncorking fee applies when the
// client supplies their own beer and wine; it is surfaced on the event
// sheet as an advisory line and never folded into the suggested total.
const (
	BaseVenueFee   = 1000
	PerGuestRate   = 25
	OpenBarRate    = 35
	CateringRate   = 45
	ParkingFlatFee = 500
	TastingRate    = 20
	TourRate       = 15
	UncorkingFee   = 150
)

const depositShare = 0.25

// Line is one component of a suggested price, for display.
type Line struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Estimate is an advisory quote. Applying it is always an explicit
// staff action; nothing here mutates a booking.
type Estimate struct {
	Total    int64  `json:"total"`
	Deposit  int64  `json:"deposit"`
	Lines    []Line `json:"lines"`
	Advisory []Line `json:"advisory,omitempty"`
}

// EstimateTotal maps the draft's service selections to a suggested
// total. Catering fields are ignored outright when food is off, stale
// values included.
func EstimateTotal(event model.Event) int64 {
	guests := event.Guests
	if guests < 0 {
		guests = 0
	}

	total := int64(BaseVenueFee)
	total += guests * PerGuestRate

	if event.BarType == model.BarTypeOpen {
		total += guests * OpenBarRate
	}

	if event.HasFood && event.FoodSource == model.FoodSourceCatered {
		total += guests * CateringRate
	}

	if event.AddParking {
		total += ParkingFlatFee
	}

	if event.HasTasting {
		total += guests * TastingRate
	}

	if event.HasTour {
		total += guests * TourRate
	}

	return total
}

// EstimateDeposit suggests the retainer, a quarter of the total rounded
// half up to a whole currency unit.
func EstimateDeposit(total int64) int64 {
	return int64(math.Floor(float64(total)*depositShare + 0.5))
}

// Suggest builds the full advisory estimate with its display breakdown.
func Suggest(event model.Event) Estimate {
	guests := event.Guests
	if guests < 0 {
		guests = 0
	}

	lines := []Line{
		{Label: "Venue fee", Amount: BaseVenueFee},
		{Label: "Guest services", Amount: guests * PerGuestRate},
	}

	if event.BarType == model.BarTypeOpen {
		lines = append(lines, Line{Label: "Open bar", Amount: guests * OpenBarRate})
	}

	if event.HasFood && event.FoodSource == model.FoodSourceCatered {
		lines = append(lines, Line{Label: "In-house catering", Amount: guests * CateringRate})
	}

	if event.AddParking {
		lines = append(lines, Line{Label: "Parking", Amount: ParkingFlatFee})
	}

	if event.HasTasting {
		lines = append(lines, Line{Label: "Tasting", Amount: guests * TastingRate})
	}

	if event.HasTour {
		lines = append(lines, Line{Label: "Distillery tour", Amount: guests * TourRate})
	}

	estimate := Estimate{
		Total: EstimateTotal(event),
		Lines: lines,
	}

	estimate.Deposit = EstimateDeposit(estimate.Total)

	if !event.BeerWineOffered {
		estimate.Advisory = []Line{{Label: "Uncorking fee", Amount: UncorkingFee}}
	}

	return estimate
}
