package door

import (
	"testing"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/door/trace"
)

func TestGameSimulator_AlwaysAcceptFillsVenue(t *testing.T) {
	spec := &ScenarioSpec{
		Name:     "tiny",
		Capacity: 50,
		Constraints: []ConstraintSpec{
			{Attribute: "a", MinCount: 0},
		},
		Statistics: &StatisticsSpec{
			RelativeFrequencies: map[string]float64{"a": 0.5},
		},
	}

	outcome := NewGameSimulator(spec, &AlwaysAccept{}, 3).Run()

	if outcome.AdmittedCount != 50 {
		t.Errorf("admitted = %d, want 50", outcome.AdmittedCount)
	}
	if outcome.RejectedCount != 0 {
		t.Errorf("rejected = %d, want 0", outcome.RejectedCount)
	}
	if outcome.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", outcome.Status, StatusCompleted)
	}
	if len(outcome.Samples) != 50 {
		t.Errorf("samples = %d, want 50", len(outcome.Samples))
	}
}

func TestGameSimulator_RejectionBudgetEndsSession(t *testing.T) {
	// An unsatisfiable constraint: the attribute never occurs.
	spec := &ScenarioSpec{
		Name:            "impossible",
		Capacity:        10,
		RejectionBudget: 100,
		Constraints: []ConstraintSpec{
			{Attribute: "unicorn", MinCount: 10},
		},
		Statistics: &StatisticsSpec{
			RelativeFrequencies: map[string]float64{"unicorn": 0.0},
		},
	}

	policy := NewConstraintAdmission(DefaultThresholds())
	outcome := NewGameSimulator(spec, policy, 5).Run()

	if outcome.Status != StatusFailed {
		t.Errorf("status = %q, want %q", outcome.Status, StatusFailed)
	}
	if outcome.ConstraintsMet {
		t.Error("expected constraints unmet")
	}
	if outcome.AdmittedCount >= 10 && outcome.RejectedCount < 100 {
		t.Error("expected the session to end on capacity or budget")
	}
}

func TestGameSimulator_Deterministic(t *testing.T) {
	spec := ScenarioFirstFriday()
	a := NewGameSimulator(spec, NewConstraintAdmission(spec.EffectiveThresholds()), 42).Run()
	b := NewGameSimulator(spec, NewConstraintAdmission(spec.EffectiveThresholds()), 42).Run()

	if a.AdmittedCount != b.AdmittedCount || a.RejectedCount != b.RejectedCount {
		t.Errorf("same seed diverged: (%d, %d) vs (%d, %d)",
			a.AdmittedCount, a.RejectedCount, b.AdmittedCount, b.RejectedCount)
	}
}

func TestGameSimulator_TraceMatchesCounts(t *testing.T) {
	spec := ScenarioFirstFriday()
	outcome := NewGameSimulator(spec, NewConstraintAdmission(spec.EffectiveThresholds()), 1).Run()

	summary := trace.Summarize(outcome.Trace)
	if summary.AcceptedCount != outcome.AdmittedCount {
		t.Errorf("trace accepted = %d, outcome admitted = %d",
			summary.AcceptedCount, outcome.AdmittedCount)
	}
	if summary.RejectedCount != outcome.RejectedCount {
		t.Errorf("trace rejected = %d, outcome rejected = %d",
			summary.RejectedCount, outcome.RejectedCount)
	}
	if summary.TotalDecisions != len(outcome.Samples) {
		t.Errorf("trace decisions = %d, samples = %d",
			summary.TotalDecisions, len(outcome.Samples))
	}
}
