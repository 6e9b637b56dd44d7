package door

import (
	"strings"
	"testing"
)

// testSession builds a session with explicit counters for decision tests.
func testSession(capacity, admitted int, constraints []Constraint, stats *Statistics, counts map[string]int) *Session {
	s := NewSession(capacity, DefaultRejectionBudget, constraints, stats)
	s.State.AdmittedCount = admitted
	for attr, n := range counts {
		s.State.AttributeCounts[attr] = n
	}
	return s
}

func TestConstraintAdmission_CapacityGuard(t *testing.T) {
	engine := NewConstraintAdmission(DefaultThresholds())
	s := testSession(3, 3, []Constraint{{Attribute: "young", MinCount: 2}}, nil, nil)

	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"young": true}}, s)
	if accept {
		t.Fatalf("expected reject at capacity, got accept (%s)", reason)
	}
	if reason != "venue full" {
		t.Errorf("expected reason %q, got %q", "venue full", reason)
	}
}

func TestConstraintAdmission_SingleNeedEarlyPhase(t *testing.T) {
	engine := NewConstraintAdmission(DefaultThresholds())
	s := testSession(100, 0, []Constraint{{Attribute: "young", MinCount: 2}}, nil, nil)

	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"young": true}}, s)
	if !accept {
		t.Fatalf("expected accept for open constraint in early phase, got reject (%s)", reason)
	}
}

func TestConstraintAdmission_SatisfiedPastTolerance(t *testing.T) {
	cfg := DefaultThresholds()
	cfg.OverTargetCommon = 1.05
	engine := NewConstraintAdmission(cfg)
	s := testSession(100, 95, []Constraint{{Attribute: "young", MinCount: 2}}, nil,
		map[string]int{"young": 2})

	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"young": true}}, s)
	if accept {
		t.Fatalf("expected reject for satisfied constraint late in session, got accept (%s)", reason)
	}
}

func TestConstraintAdmission_RarityRuleIgnoresPhase(t *testing.T) {
	stats := &Statistics{RelativeFrequencies: map[string]float64{"a": 0.05, "b": 0.5}}
	constraints := []Constraint{
		{Attribute: "a", MinCount: 5},
		{Attribute: "b", MinCount: 5},
	}
	engine := NewConstraintAdmission(DefaultThresholds())

	// Late in the session, a is still 5 short while b is done.
	s := testSession(100, 95, constraints, stats, map[string]int{"b": 5})
	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"a": true}}, s)
	if !accept {
		t.Fatalf("expected accept for rare open attribute, got reject (%s)", reason)
	}
	if !strings.Contains(reason, "rare attribute a") {
		t.Errorf("expected a rarity reason, got %q", reason)
	}
}

func TestConstraintAdmission_NegativeCorrelationPair(t *testing.T) {
	stats := &Statistics{
		Correlations: map[string]map[string]float64{
			"a": {"b": -0.7},
		},
	}
	constraints := []Constraint{
		{Attribute: "a", MinCount: 10},
		{Attribute: "b", MinCount: 10},
	}
	engine := NewConstraintAdmission(DefaultThresholds())

	// Both constraints open, candidate carries both: the pair rule fires
	// even late in the session, when a single carrier would be rejected.
	s := testSession(100, 95, constraints, stats, map[string]int{"a": 8, "b": 8})
	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"a": true, "b": true}}, s)
	if !accept {
		t.Fatalf("expected accept for negatively correlated pair, got reject (%s)", reason)
	}

	single, _ := engine.Decide(&Candidate{Attributes: map[string]bool{"a": true}}, s)
	if single {
		t.Error("expected single carrier to be rejected at this fill")
	}
}

func TestConstraintAdmission_NoNeedMidSession(t *testing.T) {
	engine := NewConstraintAdmission(DefaultThresholds())
	s := testSession(100, 50, []Constraint{{Attribute: "young", MinCount: 2}}, nil,
		map[string]int{"young": 2})

	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"tattooed": true}}, s)
	if accept {
		t.Fatalf("expected reject for no open constraints at fill 0.5, got accept (%s)", reason)
	}
}

func TestConstraintAdmission_OpeningGrace(t *testing.T) {
	engine := NewConstraintAdmission(DefaultThresholds())
	s := testSession(100, 2, []Constraint{{Attribute: "young", MinCount: 2}}, nil,
		map[string]int{"young": 2})

	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"tattooed": true}}, s)
	if !accept {
		t.Fatalf("expected opening grace at fill 0.02, got reject (%s)", reason)
	}
}

// Decreasing a rare attribute's admitted count must never flip an accept
// into a reject.
func TestConstraintAdmission_RarityMonotonicity(t *testing.T) {
	stats := &Statistics{RelativeFrequencies: map[string]float64{"a": 0.05}}
	constraints := []Constraint{{Attribute: "a", MinCount: 10}}
	engine := NewConstraintAdmission(DefaultThresholds())
	candidate := &Candidate{Attributes: map[string]bool{"a": true}}

	accepted := false
	for count := 9; count >= 0; count-- {
		s := testSession(100, 90, constraints, stats, map[string]int{"a": count})
		accept, _ := engine.Decide(candidate, s)
		if accepted && !accept {
			t.Fatalf("accept flipped to reject when count dropped to %d", count)
		}
		if accept {
			accepted = true
		}
	}
	if !accepted {
		t.Fatal("expected at least one accept for a rare attribute under target")
	}
}

// For a single-need, non-critical candidate, the deterministic outcome is
// non-increasing as fill grows.
func TestConstraintAdmission_PhaseMonotonicity(t *testing.T) {
	constraints := []Constraint{{Attribute: "young", MinCount: 40}}
	engine := NewConstraintAdmission(DefaultThresholds())
	candidate := &Candidate{Attributes: map[string]bool{"young": true}}

	rejected := false
	for admitted := 0; admitted < 100; admitted++ {
		s := testSession(100, admitted, constraints, nil, map[string]int{"young": 30})
		accept, _ := engine.Decide(candidate, s)
		if rejected && accept {
			t.Fatalf("reject flipped back to accept at fill %.2f", s.FillRatio())
		}
		if !accept {
			rejected = true
		}
	}
	if !rejected {
		t.Fatal("expected the single-need rule to tighten before capacity")
	}
}

// Absent statistics must never panic and must never enable the
// correlation rules.
func TestConstraintAdmission_NilStatistics(t *testing.T) {
	constraints := []Constraint{
		{Attribute: "a", MinCount: 10},
		{Attribute: "b", MinCount: 10},
	}
	engine := NewConstraintAdmission(DefaultThresholds())
	candidate := &Candidate{Attributes: map[string]bool{"a": true, "b": true}}

	// Late fill, small deficits: with a strong negative correlation this
	// candidate would be accepted by the pair rule. Without statistics the
	// single-need path applies and rejects.
	s := testSession(100, 98, constraints, nil, map[string]int{"a": 9, "b": 9})
	accept, reason := engine.Decide(candidate, s)
	if accept {
		t.Fatalf("expected reject without statistics, got accept (%s)", reason)
	}

	withStats := testSession(100, 98, constraints,
		&Statistics{Correlations: map[string]map[string]float64{"a": {"b": -0.7}}},
		map[string]int{"a": 9, "b": 9})
	accept, _ = engine.Decide(candidate, withStats)
	if !accept {
		t.Error("expected the pair rule to accept once statistics are present")
	}
}

func TestConstraintAdmission_UnconstrainedAttributeFallback(t *testing.T) {
	engine := NewConstraintAdmission(DefaultThresholds())
	s := testSession(100, 50, []Constraint{{Attribute: "young", MinCount: 2}}, nil,
		map[string]int{"young": 2})

	// An attribute with no constraint entry uses the default target and
	// must not panic.
	accept, _ := engine.Decide(&Candidate{Attributes: map[string]bool{"unlisted": true}}, s)
	if accept {
		t.Error("expected default zero target to leave no open constraint")
	}
}

func TestConstraintAdmission_MultiNeedRule(t *testing.T) {
	constraints := []Constraint{
		{Attribute: "a", MinCount: 10},
		{Attribute: "b", MinCount: 10},
		{Attribute: "c", MinCount: 10},
	}
	engine := NewConstraintAdmission(DefaultThresholds())

	// Three open constraints at once: accepted even at high fill.
	s := testSession(100, 96, constraints, nil, map[string]int{"a": 5, "b": 5, "c": 5})
	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"a": true, "b": true, "c": true}}, s)
	if !accept {
		t.Fatalf("expected multi-need accept, got reject (%s)", reason)
	}
	if !strings.Contains(reason, "3 open constraints") {
		t.Errorf("expected multi-need reason, got %q", reason)
	}
}

func TestConstraintAdmission_RareFloorGate(t *testing.T) {
	stats := &Statistics{RelativeFrequencies: map[string]float64{"rare": 0.05, "common": 0.6}}
	constraints := []Constraint{
		{Attribute: "rare", MinCount: 100},
		{Attribute: "common", MinCount: 100},
	}
	engine := NewConstraintAdmission(DefaultThresholds())

	// rare is far below its floor: carriers without it are turned away
	// even though common is still open.
	s := testSession(1000, 500, constraints, stats, map[string]int{"rare": 10, "common": 50})
	accept, reason := engine.Decide(&Candidate{Attributes: map[string]bool{"common": true}}, s)
	if accept {
		t.Fatalf("expected the rare floor gate to reject, got accept (%s)", reason)
	}
	accept, _ = engine.Decide(&Candidate{Attributes: map[string]bool{"rare": true}}, s)
	if !accept {
		t.Fatal("expected a rare carrier to pass the floor gate")
	}
}
