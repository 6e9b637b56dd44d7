package door

import "fmt"

// Policy decides whether the current candidate is admitted. Implementations
// must be pure: they read the Session and return, never mutating state.
type Policy interface {
	Decide(c *Candidate, s *Session) (accept bool, reason string)
}

// AlwaysAccept admits every candidate until the venue is full. Baseline for
// simulation comparisons.
type AlwaysAccept struct{}

func (a *AlwaysAccept) Decide(_ *Candidate, s *Session) (bool, string) {
	if s.State.AdmittedCount >= s.Capacity {
		return false, "venue full"
	}
	return true, ""
}

// ValidPolicies is the set of recognized policy names. Shared by
// ScenarioSpec.Validate and NewPolicy to avoid duplication.
var ValidPolicies = map[string]bool{"": true, "always-accept": true, "constraint-aware": true}

// IsValidPolicy reports whether name is a recognized policy name.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// NewPolicy creates an admission policy by name. An empty string defaults
// to constraint-aware. Panics on unrecognized names; validate user input
// with IsValidPolicy first.
func NewPolicy(name string, cfg Thresholds) Policy {
	switch name {
	case "always-accept":
		return &AlwaysAccept{}
	case "", "constraint-aware":
		return NewConstraintAdmission(cfg)
	default:
		panic(fmt.Sprintf("unknown admission policy %q; valid policies: [always-accept, constraint-aware]", name))
	}
}
