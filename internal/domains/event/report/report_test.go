package report_test

import (
	"testing"

	"stillhouse/internal/domains/event/model"
	"stillhouse/internal/domains/event/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []model.Event {
	return []model.Event{
		{ID: "a", DateRequested: "2026-06-15", TotalAmount: 2000, Contacted: true, DepositPaid: true, BalancePaid: true},
		{ID: "b", DateRequested: "2026-02-01", TotalAmount: 1500, Contacted: false, DepositPaid: false, BalancePaid: false},
		{ID: "c", DateRequested: "", TotalAmount: 0, Contacted: true, DepositPaid: true, BalancePaid: false},
		{ID: "d", DateRequested: "2026-06-02", TotalAmount: 3000, Contacted: false, DepositPaid: true, BalancePaid: true},
	}
}

func TestComputeStats(t *testing.T) {
	stats := report.ComputeStats(fixture())

	assert.Equal(t, 4, stats.TotalEvents)
	assert.Equal(t, int64(6500), stats.TotalRevenue)
	assert.Equal(t, 2, stats.NewRequests)
	assert.Equal(t, 2, stats.PendingDeposits)
}

func TestComputeStats_OrderIndependent(t *testing.T) {
	events := fixture()
	reversed := make([]model.Event, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		reversed = append(reversed, events[i])
	}

	assert.Equal(t, report.ComputeStats(events), report.ComputeStats(reversed))
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, report.Stats{}, report.ComputeStats(nil))
	assert.Equal(t, report.Stats{}, report.ComputeStats([]model.Event{}))
}

func TestComputeStats_SkipsMalformedEntries(t *testing.T) {
	events := append(fixture(), model.Event{TotalAmount: 99999})

	stats := report.ComputeStats(events)

	assert.Equal(t, 4, stats.TotalEvents)
	assert.Equal(t, int64(6500), stats.TotalRevenue)
}

func TestFilterAndSort_Modes(t *testing.T) {
	events := fixture()

	tests := []struct {
		name    string
		mode    string
		wantIDs []string
	}{
		{"all sorted by date with missing first", report.ModeAll, []string{"c", "b", "d", "a"}},
		{"new keeps uncontacted", report.ModeNew, []string{"b", "d"}},
		{"pending deposit keeps open balances", report.ModePendingDeposit, []string{"c", "b"}},
		{"unknown mode falls back to all", "archived", []string{"c", "b", "d", "a"}},
		{"empty mode falls back to all", "", []string{"c", "b", "d", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := report.FilterAndSort(events, tt.mode)

			ids := make([]string, len(view))
			for i, event := range view {
				ids[i] = event.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	events := fixture()
	original := make([]model.Event, len(events))
	copy(original, events)

	_ = report.FilterAndSort(events, report.ModeNew)

	assert.Equal(t, original, events)
}

func TestFilterAndSort_UnparseableDateSortsFirst(t *testing.T) {
	events := []model.Event{
		{ID: "later", DateRequested: "2026-11-01"},
		{ID: "broken", DateRequested: "next friday"},
	}

	view := report.FilterAndSort(events, report.ModeAll)

	require.Len(t, view, 2)
	assert.Equal(t, "broken", view[0].ID)
}

func TestFilterAndSort_StableForEqualDates(t *testing.T) {
	events := []model.Event{
		{ID: "first", DateRequested: "2026-05-05"},
		{ID: "second", DateRequested: "2026-05-05"},
	}

	view := report.FilterAndSort(events, report.ModeAll)

	require.Len(t, view, 2)
	assert.Equal(t, "first", view[0].ID)
	assert.Equal(t, "second", view[1].ID)
}

func TestMonthlyRevenue(t *testing.T) {
	months := report.MonthlyRevenue(fixture())

	assert.Equal(t, int64(1500), months[1], "February")
	assert.Equal(t, int64(5000), months[5], "June")

	var total int64
	for _, m := range months {
		total += m
	}
	assert.Equal(t, int64(6500), total)
}

func TestSummarizeRevenue(t *testing.T) {
	summary := report.SummarizeRevenue(fixture())

	assert.Equal(t, int64(6500), summary.TotalPipeline)
	assert.Equal(t, 6, summary.PeakMonth)
	assert.Equal(t, int64(5000), summary.PeakRevenue)
	assert.Equal(t, int64(1625), summary.AveragePerEvent, "average spreads over zero-amount bookings too")
}

func TestSummarizeRevenue_AverageCountsZeroAmountBookings(t *testing.T) {
	events := []model.Event{
		{ID: "a", DateRequested: "2026-03-01", TotalAmount: 2000},
		{ID: "b", DateRequested: "2026-04-01", TotalAmount: 1500},
		{ID: "c", DateRequested: "2026-05-01", TotalAmount: 0},
		{ID: "d", DateRequested: "2026-06-01", TotalAmount: 3000},
	}

	summary := report.SummarizeRevenue(events)

	assert.Equal(t, int64(6500), summary.TotalPipeline)
	assert.Equal(t, int64(1625), summary.AveragePerEvent)
}

func TestSummarizeRevenue_Empty(t *testing.T) {
	summary := report.SummarizeRevenue(nil)

	assert.Zero(t, summary.TotalPipeline)
	assert.Zero(t, summary.PeakMonth)
	assert.Zero(t, summary.AveragePerEvent)
}
