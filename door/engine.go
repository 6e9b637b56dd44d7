package door

import "fmt"

// ConstraintAdmission is the deficit- and correlation-aware admission
// engine. It is a pure function of the candidate and the session view: it
// never mutates RunningState and never fails on malformed input — unknown
// attributes are treated as absent, missing constraint entries fall back to
// Thresholds.DefaultMinCount, and missing statistics disable the rarity and
// correlation rules without otherwise changing control flow.
type ConstraintAdmission struct {
	cfg Thresholds
}

// NewConstraintAdmission creates the engine with the given thresholds.
func NewConstraintAdmission(cfg Thresholds) *ConstraintAdmission {
	return &ConstraintAdmission{cfg: cfg}
}

// attrEval is the per-attribute working set computed once per decision.
// One entry per constrained attribute, plus one per candidate attribute
// that has no constraint entry (those use the default target).
type attrEval struct {
	name     string
	has      bool
	count    int
	target   int
	deficit  int
	progress float64
	rare     bool
}

func (e *ConstraintAdmission) evaluate(c *Candidate, s *Session) []attrEval {
	seen := make(map[string]bool, len(s.Constraints))
	evals := make([]attrEval, 0, len(s.Constraints)+len(c.Attributes))

	add := func(name string, target int) {
		count := s.State.CountOf(name)
		progress := 1.0 // zero target reads as satisfied
		if target > 0 {
			progress = float64(count) / float64(target)
		}
		freq, known := s.Stats.Frequency(name)
		evals = append(evals, attrEval{
			name:     name,
			has:      c.Has(name),
			count:    count,
			target:   target,
			deficit:  target - count,
			progress: progress,
			rare:     known && target > 0 && freq < e.cfg.RarityThreshold,
		})
		seen[name] = true
	}

	for _, con := range s.Constraints {
		add(con.Attribute, con.MinCount)
	}
	for name, present := range c.Attributes {
		if present && !seen[name] {
			add(name, e.cfg.DefaultMinCount)
		}
	}
	return evals
}

// Decide implements Policy.
func (e *ConstraintAdmission) Decide(c *Candidate, s *Session) (bool, string) {
	// Hard capacity guard. The only unconditional rule.
	if s.State.AdmittedCount >= s.Capacity {
		return false, "venue full"
	}

	evals := e.evaluate(c, s)
	fill := s.FillRatio()

	// Exclusive floor gate: while some rare attribute is badly behind, the
	// only candidates worth a slot are those carrying an open rare
	// attribute. Expected future supply of rare traits is too thin to
	// spend capacity on anything else.
	if gated := e.rareFloorActive(evals); gated != "" {
		for _, ev := range evals {
			if ev.rare && ev.has && ev.deficit > 0 {
				return true, fmt.Sprintf("rare attribute %s below floor", ev.name)
			}
		}
		return false, fmt.Sprintf("holding capacity for rare attribute %s", gated)
	}

	// Rarity rule: rare attributes are accepted up to the wide over-target
	// tolerance regardless of phase.
	for _, ev := range evals {
		if ev.rare && ev.has && float64(ev.count) < e.cfg.OverTargetRare*float64(ev.target) {
			return true, fmt.Sprintf("rare attribute %s under tolerance", ev.name)
		}
	}

	needed, critical := 0, 0
	maxNeededDeficit := 0
	for _, ev := range evals {
		if !ev.has || ev.deficit <= 0 {
			continue
		}
		needed++
		if ev.deficit > maxNeededDeficit {
			maxNeededDeficit = ev.deficit
		}
		if ev.rare || ev.deficit > e.cfg.ModerateDeficit {
			critical++
		}
	}

	// Multi-need rule: disproportionately valuable candidates, accepted
	// regardless of phase.
	if needed >= e.cfg.MultiNeed {
		return true, fmt.Sprintf("satisfies %d open constraints", needed)
	}
	if critical >= e.cfg.MultiCritical {
		return true, fmt.Sprintf("satisfies %d critical constraints", critical)
	}

	// Correlation-aware combo rules. Skipped entirely without statistics.
	if s.Stats != nil {
		if accept, reason := e.correlationRules(s.Stats, evals, fill); accept {
			return true, reason
		}
	}

	// Single-need rule: acceptance tightens monotonically with fill.
	if needed >= 1 {
		switch {
		case fill < e.cfg.EarlyFill:
			return true, "open constraint, early phase"
		case fill < e.cfg.MidFill && maxNeededDeficit > e.cfg.ModerateDeficit:
			return true, fmt.Sprintf("open constraint, deficit %d", maxNeededDeficit)
		case fill < e.cfg.LateFill && maxNeededDeficit > e.cfg.LargeDeficit:
			return true, fmt.Sprintf("open constraint, large deficit %d", maxNeededDeficit)
		}
		return false, "open constraint, too late in session"
	}

	// Over-target grace: a satisfied attribute still within its common
	// tolerance keeps the venue filling while capacity is comfortable.
	for _, ev := range evals {
		if ev.has && ev.target > 0 && ev.deficit <= 0 &&
			ev.progress < e.cfg.OverTargetCommon && fill < e.cfg.MidFill {
			return true, fmt.Sprintf("%s within over-target tolerance", ev.name)
		}
	}

	// No-need rule: wasted admissions are near-free only at the very start.
	if fill < e.cfg.OpeningFill {
		return true, "opening grace"
	}
	return false, "no open constraints"
}

// rareFloorActive returns the name of a rare attribute still below its
// exclusive floor, or "" when the gate is inactive.
func (e *ConstraintAdmission) rareFloorActive(evals []attrEval) string {
	if e.cfg.RareFloorRatio <= 0 {
		return ""
	}
	for _, ev := range evals {
		if ev.rare && float64(ev.count) < e.cfg.RareFloorRatio*float64(ev.target) {
			return ev.name
		}
	}
	return ""
}

func (e *ConstraintAdmission) correlationRules(stats *Statistics, evals []attrEval, fill float64) (bool, string) {
	// Strongly negatively correlated pairs cannot be manufactured from
	// single-attribute candidates later: accept the dual carrier while
	// either constraint is open.
	for i := range evals {
		if !evals[i].has || evals[i].target <= 0 {
			continue
		}
		for j := i + 1; j < len(evals); j++ {
			if !evals[j].has || evals[j].target <= 0 {
				continue
			}
			corr := stats.Correlation(evals[i].name, evals[j].name)
			if corr <= e.cfg.NegativeCorrelation && (evals[i].deficit > 0 || evals[j].deficit > 0) {
				return true, fmt.Sprintf("negatively correlated pair %s+%s", evals[i].name, evals[j].name)
			}
		}
	}

	// A satisfied attribute strongly positively correlated with an open one
	// is a weak proxy for progress on the open constraint: accept a little
	// more liberally while capacity is comfortable.
	for _, sat := range evals {
		if !sat.has || sat.target <= 0 || sat.deficit > 0 {
			continue
		}
		for _, open := range evals {
			if open.deficit <= 0 || open.has || open.target <= 0 {
				continue
			}
			if stats.Correlation(sat.name, open.name) >= e.cfg.PositiveCorrelation && fill < e.cfg.MidFill {
				return true, fmt.Sprintf("%s positively correlated with open %s", sat.name, open.name)
			}
		}
	}
	return false, ""
}
