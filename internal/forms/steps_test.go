package forms

import (
	"testing"

	"github.com/denr-tlph/licensing-api/internal/models"
)

func TestNavigator_StartsAtContactStep(t *testing.T) {
	n := NewNavigator()
	if n.Active() != StepContact {
		t.Errorf("Active() = %q, want %q", n.Active(), StepContact)
	}
}

func TestNavigator_ActivateUnknownStepPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Activate() with unknown step did not panic")
		}
	}()

	NewNavigator().Activate(Step("9"))
}

func TestNavigator_EnteringCategoryStepRecomputesRequired(t *testing.T) {
	n := NewNavigator()
	n.SelectCategory(models.CategoryCooperative)
	n.Activate(StepCategoryInfo)

	required := n.Required()
	if !required["cdaNumber"] {
		t.Error("cdaNumber not required after entering category step as cooperative")
	}

	// Switching category while the step is active must flip the flags.
	n.SelectCategory(models.CategoryAgribusiness)
	required = n.Required()
	if required["cdaNumber"] {
		t.Error("cdaNumber still required after switching to agribusiness")
	}
	if !required["secNumber"] {
		t.Error("secNumber not required after switching to agribusiness")
	}
}

func TestNavigator_AdvanceBlockedByMissingFields(t *testing.T) {
	n := NewNavigator()
	n.SelectCategory(models.CategoryCooperative)
	n.Activate(StepCategoryInfo)

	result, err := n.Advance(FormSnapshot{})
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if result.OK {
		t.Fatal("Advance() ok with empty snapshot, want validation failure")
	}
	if n.Active() != StepCategoryInfo {
		t.Errorf("Active() = %q after blocked advance, want %q", n.Active(), StepCategoryInfo)
	}
}

func TestNavigator_FullProgression(t *testing.T) {
	n := NewNavigator()
	n.SelectCategory(models.CategoryIndividualTenant)

	steps := []Step{StepVerifyEmail, StepCategoryInfo, StepCredentials}
	for _, want := range steps {
		result, err := n.Advance(FormSnapshot{})
		if err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		if !result.OK {
			t.Fatalf("Advance() blocked at %q: %v", n.Active(), result.Missing)
		}
		if n.Active() != want {
			t.Fatalf("Active() = %q, want %q", n.Active(), want)
		}
	}

	// There is no step after credentials.
	if _, err := n.Advance(FormSnapshot{}); err == nil {
		t.Error("Advance() past final step did not error")
	}
}
