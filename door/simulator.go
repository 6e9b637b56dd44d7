package door

import (
	"github.com/sirupsen/logrus"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/door/trace"
)

// Terminal session statuses. The game server reports the same strings.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Outcome is the result of one simulated session.
type Outcome struct {
	Status          string
	AdmittedCount   int
	RejectedCount   int
	AttributeCounts map[string]int
	ConstraintsMet  bool
	Trace           *trace.GameTrace
	Samples         []map[string]bool // every generated attribute vector, for statistics checks
}

// GameSimulator replays a scenario offline against any policy: candidates
// are drawn from the scenario's advertised statistics and streamed through
// the policy until capacity or the rejection budget ends the session. Used
// for threshold tuning without burning real game attempts.
type GameSimulator struct {
	spec    *ScenarioSpec
	policy  Policy
	sampler *CandidateSampler
}

// NewGameSimulator creates a simulator for one scenario, deterministic for
// a given seed.
func NewGameSimulator(spec *ScenarioSpec, policy Policy, seed int64) *GameSimulator {
	return &GameSimulator{
		spec:    spec,
		policy:  policy,
		sampler: NewCandidateSampler(spec, seed),
	}
}

// Run plays one full session and returns its outcome.
func (g *GameSimulator) Run() *Outcome {
	session := NewSessionFromSpec(g.spec)
	gt := trace.NewGameTrace()
	samples := make([]map[string]bool, 0, session.Capacity)

	for index := 0; session.State.AdmittedCount < session.Capacity &&
		session.State.RejectedCount < session.RejectionBudget; index++ {

		c := g.sampler.Next(index)
		samples = append(samples, c.Attributes)

		accept, reason := g.policy.Decide(c, session)
		gt.Record(trace.DecisionRecord{
			Index:     index,
			Accepted:  accept,
			Reason:    reason,
			FillRatio: session.FillRatio(),
		})
		session.State.Record(accept, c.Attributes)

		logrus.Debugf("person %d: accept=%v (%s) admitted=%d rejected=%d",
			index, accept, reason, session.State.AdmittedCount, session.State.RejectedCount)
	}

	met := session.ConstraintsMet()
	status := StatusFailed
	if met && session.State.AdmittedCount >= session.Capacity {
		status = StatusCompleted
	}
	return &Outcome{
		Status:          status,
		AdmittedCount:   session.State.AdmittedCount,
		RejectedCount:   session.State.RejectedCount,
		AttributeCounts: session.State.AttributeCounts,
		ConstraintsMet:  met,
		Trace:           gt,
		Samples:         samples,
	}
}
