package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
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

	// Register custom validations for chain identifiers and consumable types
	_ = v.RegisterValidation("ethaddr", validateEthAddress)
	_ = v.RegisterValidation("txhash", validateTxHash)
	_ = v.RegisterValidation("consumable", validateConsumable)

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
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	// Check if it's a validator.ValidationErrors
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
		case "ethaddr":
			errs[field] = "Invalid Ethereum address (expected 0x + 40 hex characters)"
		case "txhash":
			errs[field] = "Invalid transaction hash (expected 0x + 64 hex characters)"
		case "consumable":
			errs[field] = "Invalid consumable type"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "uuid":
			errs[field] = "Must be a valid UUID"
		case "dive":
			errs[field] = "Invalid list entry"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

var (
	ethAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	txHashPattern     = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// ValidConsumables defines the accepted consumable type strings
var ValidConsumables = map[string]bool{
	"water":      true,
	"fertilizer": true,
	"antibug":    true,
}

func validateEthAddress(fl validator.FieldLevel) bool {
	return ethAddressPattern.MatchString(fl.Field().String())
}

func validateTxHash(fl validator.FieldLevel) bool {
	return txHashPattern.MatchString(fl.Field().String())
}

func validateConsumable(fl validator.FieldLevel) bool {
	return ValidConsumables[strings.ToLower(fl.Field().String())]
}
