package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"

	"stillhouse/shared/constant"
	"stillhouse/shared/failure"
)

var validate *val.Validate

// registerClockTimeValidation accepts 24h "HH:MM" strings. Empty values pass,
// pair the tag with required when the field is mandatory.
func registerClockTimeValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if value == "" {
		return true
	}

	_, err := time.Parse(constant.ClockTime, value)

	return err == nil
}

// registerCalendarDateValidation accepts "YYYY-MM-DD" strings, empty allowed.
func registerCalendarDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if value == "" {
		return true
	}

	_, err := time.Parse(constant.CalendarDate, value)

	return err == nil
}

// registerEnumValidation matches against a |-separated param list. The enum
// labels carry spaces ("Cash Bar", "Catered (In-house)") so the stock oneof
// tag cannot hold them.
func registerEnumValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if value == "" {
		return true
	}

	allowed := strings.Split(field.Param(), "|")

	return slices.Contains(allowed, value)
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("clocktime", registerClockTimeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("caldate", registerCalendarDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("enumlist", registerEnumValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
