package forms

import (
	"strings"

	"github.com/denr-tlph/licensing-api/internal/models"
)

// FormSnapshot is a typed snapshot of the form values at validation time,
// keyed by field identifier. Validation never touches a presentation layer.
type FormSnapshot map[string]string

// ValidationResult reports whether a step may advance. Missing holds the
// labels of every unfilled required field in declaration order, so the user
// sees all problems at once rather than one per attempt.
type ValidationResult struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
}

// CanAdvance checks the active category's required field set against the
// snapshot. Text values are trimmed before the emptiness check; select values
// matching the field's placeholder sentinel count as empty. Pure and
// synchronous: no network or storage access.
func CanAdvance(category models.ApplicantCategory, snapshot FormSnapshot) ValidationResult {
	var missing []string
	for _, field := range CategoryFields(category) {
		if fieldEmpty(field, snapshot[field.ID]) {
			missing = append(missing, field.Label)
		}
	}
	return ValidationResult{OK: len(missing) == 0, Missing: missing}
}

// fieldEmpty reports whether a submitted value counts as unfilled for the
// given field definition.
func fieldEmpty(field FieldDef, value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	if field.Kind == FieldSelect && field.Placeholder != "" && trimmed == field.Placeholder {
		return true
	}
	return false
}
