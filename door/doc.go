// Package door implements the admission-control core of the Berghain
// challenge player: decide, one candidate at a time, who gets into a venue
// of fixed capacity so that every per-attribute minimum is met before the
// rejection budget runs out.
//
// # Reading Guide
//
// Start with these three files to understand the decision core:
//   - types.go: Candidate, Constraint and Statistics value types
//   - state.go: RunningState (the caller-owned counters) and the read-only Session view
//   - engine.go: ConstraintAdmission, the deficit- and correlation-aware rule cascade
//
// # Architecture
//
// Policies implement the single-method Policy interface and are pure: all
// mutable session state lives in RunningState and is updated by the driver
// (package game for live play, simulator.go for offline runs), never by a
// policy. Scenarios are declarative ScenarioSpec values, loaded from YAML
// or taken from the built-in presets in scenarios.go, and carry optional
// threshold overrides applied over DefaultThresholds.
//
// The door/trace sub-package records per-decision outcomes; sampler.go and
// simulator.go replay scenarios offline for threshold tuning; stats.go
// derives observed statistics from a decision history.
package door
