package door

import "testing"

func TestRunningState_Record(t *testing.T) {
	rs := NewRunningState()

	rs.Record(true, map[string]bool{"young": true, "local": false})
	rs.Record(true, map[string]bool{"young": true, "local": true})
	rs.Record(false, map[string]bool{"young": true})

	if rs.AdmittedCount != 2 {
		t.Errorf("admitted = %d, want 2", rs.AdmittedCount)
	}
	if rs.RejectedCount != 1 {
		t.Errorf("rejected = %d, want 1", rs.RejectedCount)
	}
	if rs.CountOf("young") != 2 {
		t.Errorf("young count = %d, want 2", rs.CountOf("young"))
	}
	// Rejections and false attributes never advance tallies.
	if rs.CountOf("local") != 1 {
		t.Errorf("local count = %d, want 1", rs.CountOf("local"))
	}
}

func TestRunningState_SyncCountsKeepsTallies(t *testing.T) {
	rs := NewRunningState()
	rs.Record(true, map[string]bool{"young": true})

	rs.SyncCounts(10, 40)
	if rs.AdmittedCount != 10 || rs.RejectedCount != 40 {
		t.Errorf("counts = (%d, %d), want (10, 40)", rs.AdmittedCount, rs.RejectedCount)
	}
	if rs.CountOf("young") != 1 {
		t.Error("sync must not touch attribute tallies")
	}
}

func TestSession_FillRatio(t *testing.T) {
	s := NewSession(200, DefaultRejectionBudget, nil, nil)
	s.State.AdmittedCount = 50
	if got := s.FillRatio(); got != 0.25 {
		t.Errorf("fill = %v, want 0.25", got)
	}

	// Zero capacity reads as full.
	empty := NewSession(0, DefaultRejectionBudget, nil, nil)
	if got := empty.FillRatio(); got != 1.0 {
		t.Errorf("fill = %v, want 1.0", got)
	}
}

func TestSession_ConstraintsMet(t *testing.T) {
	constraints := []Constraint{
		{Attribute: "young", MinCount: 2},
		{Attribute: "local", MinCount: 1},
	}
	s := NewSession(100, DefaultRejectionBudget, constraints, nil)
	if s.ConstraintsMet() {
		t.Error("expected unmet constraints at start")
	}

	s.State.AttributeCounts["young"] = 2
	s.State.AttributeCounts["local"] = 1
	if !s.ConstraintsMet() {
		t.Error("expected constraints met")
	}
}

func TestSession_TargetFor(t *testing.T) {
	s := NewSession(100, DefaultRejectionBudget, []Constraint{{Attribute: "young", MinCount: 5}}, nil)

	if target, ok := s.TargetFor("young"); !ok || target != 5 {
		t.Errorf("TargetFor(young) = (%d, %v), want (5, true)", target, ok)
	}
	if _, ok := s.TargetFor("unlisted"); ok {
		t.Error("expected unlisted attribute to be unconstrained")
	}
}

func TestStatistics_NilReceiver(t *testing.T) {
	var stats *Statistics

	if _, known := stats.Frequency("a"); known {
		t.Error("nil statistics must report unknown frequency")
	}
	if got := stats.Correlation("a", "b"); got != 0 {
		t.Errorf("nil correlation = %v, want 0", got)
	}
	if got := stats.Correlation("a", "a"); got != 1.0 {
		t.Errorf("self correlation = %v, want 1.0", got)
	}
	if stats.Attributes() != nil {
		t.Error("nil statistics must have no attributes")
	}
}

func TestStatistics_CorrelationSymmetry(t *testing.T) {
	stats := &Statistics{
		Correlations: map[string]map[string]float64{
			"a": {"b": -0.4},
		},
	}
	if got := stats.Correlation("b", "a"); got != -0.4 {
		t.Errorf("Correlation(b, a) = %v, want -0.4", got)
	}
	if got := stats.Correlation("a", "c"); got != 0 {
		t.Errorf("unknown pair = %v, want 0", got)
	}
}
