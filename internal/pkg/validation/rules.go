package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// CPF validation pattern - exactly 11 digits
	CPFPattern = `^\d{11}$`

	// Name validation min/max length
	NameMinLength = 3
	NameMaxLength = 100

	// Course name max length
	CourseNameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CPF *regexp.Regexp
}{
	CPF: regexp.MustCompile(CPFPattern),
}

// DateFormat is the wire format for date-only fields (birth dates, enrollment dates).
const DateFormat = "2006-01-02"

// RegisterCustomValidators registers application-specific validation rules on the
// given validator engine. Must be called once during bootstrap, before the router
// starts binding requests.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("cpf", validateCPF); err != nil {
		return err
	}
	return v.RegisterValidation("pastdate", validatePastDate)
}

// validateCPF checks the fixed 11-digit numeric CPF format.
func validateCPF(fl validator.FieldLevel) bool {
	return CompiledPatterns.CPF.MatchString(fl.Field().String())
}

// validatePastDate checks that a date-only string parses and lies strictly in the past.
func validatePastDate(fl validator.FieldLevel) bool {
	parsed, err := time.Parse(DateFormat, fl.Field().String())
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return parsed.Before(today)
}

// ParseDate parses a date-only string in the wire format.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}

// FormatDate renders a time as a date-only string in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
