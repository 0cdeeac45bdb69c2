package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Auth fields
	"Email":    "Email",
	"Password": "Password",
	"FullName": "Full name",
	"Role":     "Role",
	"Phone":    "Phone number",

	// Student profile fields
	"CollegeName":       "College name",
	"Degree":            "Degree",
	"GraduationYear":    "Graduation year",
	"GPA":               "GPA",
	"ExpectedSalaryMin": "Minimum expected salary",
	"ExpectedSalaryMax": "Maximum expected salary",

	// Company profile fields
	"CompanyName": "Company name",
	"Website":     "Website",

	// Job fields
	"Title":       "Job title",
	"Description": "Description",
	"SalaryMin":   "Minimum salary",
	"SalaryMax":   "Maximum salary",
	"Location":    "Location",

	// Mood log fields
	"MoodScore":   "Mood score",
	"StressLevel": "Stress level",
	"EnergyLevel": "Energy level",
	"FocusLevel":  "Focus level",
	"Notes":       "Notes",
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
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation (. ' - /) allowed", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone format (7-15 digits, with/without +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "max_graduation_year":
		return fmt.Sprintf("%s: too far in the future", label)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	var result strings.Builder
	for i, r := range fieldName {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
