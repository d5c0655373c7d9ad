package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Swedish personal number shape: YYYYMMDD-XXXX
	pnrRegex = regexp.MustCompile(`^[0-9]{8}-[0-9]{4}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("person_name", PersonName)
	_ = v.RegisterValidation("pnr", Pnr)
	_ = v.RegisterValidation("strong_password", StrongPassword)
}

// PersonName validates that a string contains letters only.
// Length bounds are applied with the min/max tags alongside this rule.
func PersonName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	for _, r := range val {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Pnr validates the national identity number pattern NNNNNNNN-NNNN
func Pnr(fl validator.FieldLevel) bool {
	return pnrRegex.MatchString(fl.Field().String())
}

// StrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter and a digit.
func StrongPassword(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if len(val) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range val {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
