package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("place", validatePlace)
	_ = v.RegisterValidation("timestamp", validateTimestamp)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lower-cased field name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "place":
			errs[field] = "Must be one of MARKET, TRADE, GATHER"
		case "timestamp":
			errs[field] = "Must be a UTC timestamp like " + domain.TimestampLayout
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte", "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidPlaces are the trade log sources
var ValidPlaces = map[string]bool{
	domain.PlaceMarket: true,
	domain.PlaceTrade:  true,
	domain.PlaceGather: true,
}

func validatePlace(fl validator.FieldLevel) bool {
	place := fl.Field().String()
	if place == "" {
		return true
	}
	return ValidPlaces[place]
}

func validateTimestamp(fl validator.FieldLevel) bool {
	return domain.IsCanonicalTimestamp(fl.Field().String())
}
