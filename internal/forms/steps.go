package forms

import (
	"fmt"

	"github.com/denr-tlph/licensing-api/internal/models"
)

// Step identifies one registration form step.
type Step string

const (
	StepContact      Step = "1"
	StepVerifyEmail  Step = "2"
	StepCategoryInfo Step = "3a"
	StepCredentials  Step = "3b"
)

// stepOrder is the fixed progression through the registration wizard.
var stepOrder = []Step{StepContact, StepVerifyEmail, StepCategoryInfo, StepCredentials}

// Navigator tracks the single active step of the registration wizard and the
// required-field set derived from the selected category. Exactly one step is
// active at any time.
type Navigator struct {
	active   Step
	category models.ApplicantCategory
	required map[string]bool
}

// NewNavigator starts a wizard at the contact step.
func NewNavigator() *Navigator {
	return &Navigator{
		active:   StepContact,
		required: map[string]bool{},
	}
}

// Active returns the currently visible step.
func (n *Navigator) Active() Step {
	return n.active
}

// Category returns the selected applicant category.
func (n *Navigator) Category() models.ApplicantCategory {
	return n.category
}

// SelectCategory records the applicant category chosen on the contact step.
// If the category step is already active the required set is recomputed
// immediately.
func (n *Navigator) SelectCategory(category models.ApplicantCategory) {
	n.category = category
	if n.active == StepCategoryInfo {
		n.required = RequiredFieldSet(category)
	}
}

// Required returns the required flag per field identifier as derived on the
// last entry into the category step.
func (n *Navigator) Required() map[string]bool {
	return n.required
}

// Activate makes the given step the single active one. Entering the category
// step recomputes the required-field set for the selected category. An
// unknown step identifier is a programming error.
func (n *Navigator) Activate(step Step) {
	if !knownStep(step) {
		panic(fmt.Sprintf("forms: unknown step %q", step))
	}
	n.active = step
	if step == StepCategoryInfo {
		n.required = RequiredFieldSet(n.category)
	}
}

// CanAdvance is the pure half of the transition: it reports whether the
// active step may advance given the snapshot, without changing state. Only
// the category step is gated; the contact and verification steps are advanced
// by their own handlers once their side effects succeed.
func (n *Navigator) CanAdvance(snapshot FormSnapshot) ValidationResult {
	if n.active == StepCategoryInfo {
		return CanAdvance(n.category, snapshot)
	}
	return ValidationResult{OK: true}
}

// Advance is the effectful half: it validates via CanAdvance and activates
// the next step. Advancing past the final step is a programming error.
func (n *Navigator) Advance(snapshot FormSnapshot) (ValidationResult, error) {
	result := n.CanAdvance(snapshot)
	if !result.OK {
		return result, nil
	}
	next, err := nextStep(n.active)
	if err != nil {
		return result, err
	}
	n.Activate(next)
	return result, nil
}

func knownStep(step Step) bool {
	for _, s := range stepOrder {
		if s == step {
			return true
		}
	}
	return false
}

func nextStep(step Step) (Step, error) {
	for i, s := range stepOrder {
		if s == step {
			if i == len(stepOrder)-1 {
				return "", fmt.Errorf("forms: no step after %q", step)
			}
			return stepOrder[i+1], nil
		}
	}
	return "", fmt.Errorf("forms: unknown step %q", step)
}
