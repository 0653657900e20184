package timewindow_test

import (
	"math"
	"testing"

	"stillhouse/shared/timewindow"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"same meridiem suffix once", "12:00", "15:00", "12-3pm"},
		{"different meridiems keep both", "11:00", "13:00", "11am-1pm"},
		{"minutes kept when not on the hour", "18:30", "21:15", "6:30-9:15pm"},
		{"minutes dropped on the hour", "18:00", "20:00", "6-8pm"},
		{"morning window", "09:00", "11:30", "9-11:30am"},
		{"midnight is 12am", "00:00", "02:00", "12-2am"},
		{"noon boundary crosses meridiem", "10:00", "12:00", "10am-12pm"},
		{"empty start", "", "15:00", "TBD"},
		{"empty end", "12:00", "", "TBD"},
		{"start without colon", "noonish", "15:00", "TBD"},
		{"end without colon", "12:00", "3pm", "TBD"},
		{"unparseable numerics fall back verbatim", "ab:cd", "15:00", "ab:cd-15:00"},
		{"out of range hour falls back verbatim", "25:00", "15:00", "25:00-15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timewindow.Format(tt.start, tt.end))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		hours float64
		want  string
	}{
		{"whole hours", "12:00", 3, "12-3pm"},
		{"fractional hours", "11:00", 2.5, "11am-1:30pm"},
		{"zero duration", "18:00", 0, "6-6pm"},
		{"negative duration counts as zero", "18:00", -4, "6-6pm"},
		{"NaN duration counts as zero", "18:00", math.NaN(), "6-6pm"},
		{"wraps across midnight", "23:00", 2, "11pm-1am"},
		{"missing start", "", 2, "TBD"},
		{"unparseable start", "late", 2, "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timewindow.FormatDuration(tt.start, tt.hours))
		})
	}
}

func TestEndOf(t *testing.T) {
	assert.Equal(t, "14:00", timewindow.EndOf("12:00", 2))
	assert.Equal(t, "13:30", timewindow.EndOf("11:00", 2.5))
	assert.Equal(t, "01:00", timewindow.EndOf("23:00", 2))
	assert.Equal(t, "09:15", timewindow.EndOf("09:15", -1))
	assert.Empty(t, timewindow.EndOf("not a time", 2))
}
