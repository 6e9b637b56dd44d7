// Package game owns the play loop: it threads the running state through
// fetch → decide → submit until the session reaches a terminal status. All
// state mutation happens here; the policy only reads.
package game

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/client"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/door"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/door/trace"
)

// API is the slice of the game client the runner needs.
type API interface {
	DecideAndNext(ctx context.Context, gameID string, personIndex int, accept *bool) (*client.DecideResponse, error)
}

// Result is the terminal state of one attempt.
type Result struct {
	Status          string
	AdmittedCount   int
	RejectedCount   int
	AttributeCounts map[string]int
	ConstraintsMet  bool
	Trace           *trace.GameTrace
}

// Runner plays one game session end to end.
type Runner struct {
	api     API
	policy  door.Policy
	session *door.Session
	log     *logrus.Entry
}

// NewRunner creates a Runner for one attempt. The session must be fresh:
// the runner owns its RunningState for the duration of the attempt.
func NewRunner(api API, policy door.Policy, session *door.Session) *Runner {
	return &Runner{
		api:     api,
		policy:  policy,
		session: session,
		log:     logrus.WithField("component", "runner"),
	}
}

// Play drives the session until a terminal status, the capacity, or the
// rejection budget is reached. The context cancels the loop between
// candidates.
func (r *Runner) Play(ctx context.Context, gameID string) (*Result, error) {
	gt := trace.NewGameTrace()
	state := r.session.State

	// First call reveals candidate 0 with no prior decision.
	resp, err := r.api.DecideAndNext(ctx, gameID, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching first candidate: %w", err)
	}

	for resp.Status == door.StatusRunning && resp.NextPerson != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		person := resp.NextPerson
		state.SyncCounts(resp.AdmittedCount, resp.RejectedCount)

		candidate := &door.Candidate{Index: person.PersonIndex, Attributes: person.Attributes}
		accept, reason := r.policy.Decide(candidate, r.session)
		gt.Record(trace.DecisionRecord{
			Index:     person.PersonIndex,
			Accepted:  accept,
			Reason:    reason,
			FillRatio: r.session.FillRatio(),
		})

		// Local tallies update before the submit so the next decision sees
		// them even if the server response omits counters.
		state.Record(accept, person.Attributes)

		r.log.Debugf("person %d: accept=%v (%s) admitted=%d rejected=%d",
			person.PersonIndex, accept, reason, state.AdmittedCount, state.RejectedCount)

		resp, err = r.api.DecideAndNext(ctx, gameID, person.PersonIndex, &accept)
		if err != nil {
			return nil, fmt.Errorf("submitting decision for person %d: %w", person.PersonIndex, err)
		}
		state.SyncCounts(resp.AdmittedCount, resp.RejectedCount)

		if state.AdmittedCount >= r.session.Capacity {
			r.log.Infof("venue full: %d admitted", state.AdmittedCount)
			break
		}
		if state.RejectedCount >= r.session.RejectionBudget {
			r.log.Warnf("rejection budget exhausted: %d rejected", state.RejectedCount)
			break
		}
	}

	status := resp.Status
	if status == door.StatusRunning {
		// Loop ended on a local guard before the server reported terminal.
		status = door.StatusFailed
		if r.session.ConstraintsMet() {
			status = door.StatusCompleted
		}
	}
	if resp.Reason != "" {
		r.log.Warnf("game %s finished %s: %s", gameID, status, resp.Reason)
	}

	return &Result{
		Status:          status,
		AdmittedCount:   state.AdmittedCount,
		RejectedCount:   state.RejectedCount,
		AttributeCounts: state.AttributeCounts,
		ConstraintsMet:  r.session.ConstraintsMet(),
		Trace:           gt,
	}, nil
}

// SessionFromGame builds a fresh Session from a stored or freshly
// registered game's constraints and statistics.
func SessionFromGame(g *client.NewGameResponse) *door.Session {
	constraints := make([]door.Constraint, len(g.Constraints))
	for i, c := range g.Constraints {
		constraints[i] = door.Constraint{Attribute: c.Attribute, MinCount: c.MinCount}
	}
	var stats *door.Statistics
	if g.AttributeStatistics != nil {
		stats = &door.Statistics{
			RelativeFrequencies: g.AttributeStatistics.RelativeFrequencies,
			Correlations:        g.AttributeStatistics.Correlations,
		}
	}
	return door.NewSession(door.DefaultCapacity, door.DefaultRejectionBudget, constraints, stats)
}
