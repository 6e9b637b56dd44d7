package door

// RunningState holds the caller-owned mutable counters of one session.
// It is created empty at session start, updated exactly once per candidate
// by the driver, and discarded when the session reaches a terminal status.
// Policies only read it.
type RunningState struct {
	AdmittedCount   int
	RejectedCount   int
	AttributeCounts map[string]int
}

// NewRunningState creates an empty RunningState.
func NewRunningState() *RunningState {
	return &RunningState{AttributeCounts: make(map[string]int)}
}

// Record applies one decision to the counters. Attribute tallies change
// only on acceptance.
func (rs *RunningState) Record(accepted bool, attrs map[string]bool) {
	if !accepted {
		rs.RejectedCount++
		return
	}
	rs.AdmittedCount++
	for attr, present := range attrs {
		if present {
			rs.AttributeCounts[attr]++
		}
	}
}

// SyncCounts overwrites the admitted/rejected counters with authoritative
// values reported by the game server. Attribute tallies are kept local
// because the server never reports them.
func (rs *RunningState) SyncCounts(admitted, rejected int) {
	rs.AdmittedCount = admitted
	rs.RejectedCount = rejected
}

// CountOf returns the number of admitted candidates carrying attr.
func (rs *RunningState) CountOf(attr string) int {
	return rs.AttributeCounts[attr]
}

// Session is the read-only view handed to admission policies: fixed session
// parameters plus the caller's running counters. Policies must not mutate it.
type Session struct {
	Capacity        int
	RejectionBudget int
	Constraints     []Constraint
	Stats           *Statistics
	State           *RunningState
}

// NewSession creates a Session with a fresh RunningState.
func NewSession(capacity, rejectionBudget int, constraints []Constraint, stats *Statistics) *Session {
	return &Session{
		Capacity:        capacity,
		RejectionBudget: rejectionBudget,
		Constraints:     constraints,
		Stats:           stats,
		State:           NewRunningState(),
	}
}

// FillRatio returns admitted count over capacity, the phase proxy for how
// far through the session we are. Zero capacity reads as full.
func (s *Session) FillRatio() float64 {
	if s.Capacity <= 0 {
		return 1.0
	}
	return float64(s.State.AdmittedCount) / float64(s.Capacity)
}

// TargetFor returns the constraint minimum for attr and whether attr is
// constrained at all.
func (s *Session) TargetFor(attr string) (int, bool) {
	for _, c := range s.Constraints {
		if c.Attribute == attr {
			return c.MinCount, true
		}
	}
	return 0, false
}

// ConstraintsMet reports whether every constraint minimum has been reached.
func (s *Session) ConstraintsMet() bool {
	for _, c := range s.Constraints {
		if s.State.CountOf(c.Attribute) < c.MinCount {
			return false
		}
	}
	return true
}
