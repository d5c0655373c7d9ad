package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":              "First name",
	"Surname":           "Surname",
	"Pnr":               "Personal number",
	"Email":             "Email",
	"Password":          "Password",
	"CompetenceID":      "Competence",
	"YearsOfExperience": "Years of experience",
	"FromDate":          "From date",
	"ToDate":            "To date",
	"Status":            "Status",
	"Competences":       "Competences",
	"Availabilities":    "Availabilities",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must have at least %s items", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must have at most %s items", label, param)

	case "gte":
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "lte":
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "datetime":
		return fmt.Sprintf("%s: must be a date in the form %s", label, param)

	case "person_name":
		return fmt.Sprintf("%s: letters only", label)

	case "pnr":
		return fmt.Sprintf("%s: must match NNNNNNNN-NNNN", label)

	case "strong_password":
		return fmt.Sprintf("%s: at least 8 characters with an upper-case letter, a lower-case letter and a digit", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
