package validator_test

import (
	"strings"
	"testing"

	"stillhouse/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingPayload struct {
	Email         string `json:"email" validate:"required,email"`
	DateRequested string `json:"dateRequested" validate:"caldate"`
	Time          string `json:"time" validate:"clocktime"`
	Guests        int64  `json:"guests" validate:"gte=0"`
	BarType       string `json:"barType" validate:"enumlist=Cash Bar0x7COpen Bar0x7CNone"`
}

func TestValidate_DecodesAndValidates(t *testing.T) {
	body := strings.NewReader(`{"email":"ops@stillhouse.example","dateRequested":"2026-09-12","time":"18:30","guests":40,"barType":"Open Bar"}`)

	var payload bookingPayload
	err := validator.Validate(body, &payload)

	require.NoError(t, err)
	assert.Equal(t, int64(40), payload.Guests)
	assert.Equal(t, "Open Bar", payload.BarType)
}

func TestValidate_BadJSON(t *testing.T) {
	var payload bookingPayload
	err := validator.Validate(strings.NewReader(`{"email":`), &payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		payload bookingPayload
		wantErr string
	}{
		{
			name:    "missing email",
			payload: bookingPayload{DateRequested: "2026-09-12"},
			wantErr: "Email is required",
		},
		{
			name:    "bad email",
			payload: bookingPayload{Email: "not-an-email"},
			wantErr: "Email must be a valid email address",
		},
		{
			name:    "bad date",
			payload: bookingPayload{Email: "a@b.c", DateRequested: "12/09/2026"},
			wantErr: "DateRequested must be a YYYY-MM-DD date",
		},
		{
			name:    "bad clock time",
			payload: bookingPayload{Email: "a@b.c", Time: "6pm"},
			wantErr: "Time must be a 24-hour HH:MM time",
		},
		{
			name:    "bar type outside enum",
			payload: bookingPayload{Email: "a@b.c", BarType: "Dry"},
			wantErr: "BarType must be one of Cash Bar|Open Bar|None",
		},
		{
			name:    "negative guests",
			payload: bookingPayload{Email: "a@b.c", Guests: -1},
			wantErr: "Guests must be greater than or equal to 0",
		},
		{
			name:    "valid with optional fields empty",
			payload: bookingPayload{Email: "a@b.c"},
		},
		{
			name: "valid full payload",
			payload: bookingPayload{
				Email:         "a@b.c",
				DateRequested: "2026-10-01",
				Time:          "12:00",
				Guests:        10,
				BarType:       "Cash Bar",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.payload)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("18:00", "clocktime"))
	assert.Error(t, validator.ValidateVar("25:99", "clocktime"))
	assert.NoError(t, validator.ValidateVar("", "caldate"))
	assert.Error(t, validator.ValidateVar("pending_deposit!", "oneof=all new pending_deposit"))
}
