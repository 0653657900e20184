package report

import (
	"slices"
	"strings"
	"time"

	"stillhouse/internal/domains/event/model"
	"stillhouse/shared/constant"
)

// Dashboard view modes.
const (
	ModeAll            = "all"
	ModeNew            = "new"
	ModePendingDeposit = "pending_deposit"
)

// Stats is the dashboard headline block, computed fresh on every read.
type Stats struct {
	TotalEvents     int   `json:"total_events"`
	TotalRevenue    int64 `json:"total_revenue"`
	NewRequests     int   `json:"new_requests"`
	PendingDeposits int   `json:"pending_deposits"`
}

// ComputeStats accumulates the headline numbers over a collection. The
// result is order independent; entries without an identifier are
// skipped.
func ComputeStats(events []model.Event) Stats {
	var stats Stats

	for _, event := range model.Sanitize(events) {
		stats.TotalEvents++

		if event.TotalAmount > 0 {
			stats.TotalRevenue += event.TotalAmount
		}

		if event.IsNew() {
			stats.NewRequests++
		}

		if event.HasPendingCollections() {
			stats.PendingDeposits++
		}
	}

	return stats
}

// FilterAndSort produces the view for a dashboard mode: a fresh slice,
// never mutating its input, filtered by mode and stably sorted by
// requested date ascending. Records without a parseable date sort
// first. Unknown modes fall back to the full view.
func FilterAndSort(events []model.Event, mode string) []model.Event {
	view := model.Sanitize(events)

	switch mode {
	case ModeNew:
		view = slices.DeleteFunc(view, func(e model.Event) bool {
			return !e.IsNew()
		})
	case ModePendingDeposit:
		view = slices.DeleteFunc(view, func(e model.Event) bool {
			return !e.HasPendingCollections()
		})
	}

	slices.SortStableFunc(view, func(a, b model.Event) int {
		return dateKey(a.DateRequested).Compare(dateKey(b.DateRequested))
	})

	return view
}

// dateKey orders requested dates, treating the unset or unparseable as
// the epoch so they surface at the top of the list.
func dateKey(dateRequested string) time.Time {
	if dateRequested == "" {
		return time.Unix(0, 0).UTC()
	}

	parsed, err := time.Parse(constant.CalendarDate, strings.TrimSpace(dateRequested))
	if err != nil {
		return time.Unix(0, 0).UTC()
	}

	return parsed
}

// RevenueSummary is the monthly pipeline view behind the revenue chart.
type RevenueSummary struct {
	Months          [12]int64 `json:"months"`
	PeakMonth       int       `json:"peak_month"` // 1-12, 0 when there is no revenue
	PeakRevenue     int64     `json:"peak_revenue"`
	AveragePerEvent int64     `json:"average_per_event"`
	TotalPipeline   int64     `json:"total_pipeline"`
}

// MonthlyRevenue buckets booked totals by requested month. Entries
// without a parseable date carry revenue into the pipeline total but no
// month bucket, so the buckets may sum to less than the pipeline.
func MonthlyRevenue(events []model.Event) [12]int64 {
	var months [12]int64

	for _, event := range model.Sanitize(events) {
		if event.TotalAmount <= 0 {
			continue
		}

		parsed, err := time.Parse(constant.CalendarDate, strings.TrimSpace(event.DateRequested))
		if err != nil {
			continue
		}

		months[parsed.Month()-1] += event.TotalAmount
	}

	return months
}

// SummarizeRevenue derives the chart summary block. The average spreads
// the pipeline over every booking, zero-amount ones included, matching
// the dashboard chart.
func SummarizeRevenue(events []model.Event) RevenueSummary {
	summary := RevenueSummary{Months: MonthlyRevenue(events)}

	sanitized := model.Sanitize(events)

	for _, event := range sanitized {
		if event.TotalAmount > 0 {
			summary.TotalPipeline += event.TotalAmount
		}
	}

	for idx, revenue := range summary.Months {
		if revenue > summary.PeakRevenue {
			summary.PeakRevenue = revenue
			summary.PeakMonth = idx + 1
		}
	}

	if len(sanitized) > 0 {
		summary.AveragePerEvent = summary.TotalPipeline / int64(len(sanitized))
	}

	return summary
}
