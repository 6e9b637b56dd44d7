package trace

// TraceSummary aggregates statistics from a GameTrace.
type TraceSummary struct {
	TotalDecisions int
	AcceptedCount  int
	RejectedCount  int
	ByReason       map[string]int // decision reason → count
}

// Summarize computes aggregate statistics from a GameTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(gt *GameTrace) *TraceSummary {
	summary := &TraceSummary{
		ByReason: make(map[string]int),
	}
	if gt == nil {
		return summary
	}

	summary.TotalDecisions = len(gt.Decisions)
	for _, d := range gt.Decisions {
		if d.Accepted {
			summary.AcceptedCount++
		} else {
			summary.RejectedCount++
		}
		summary.ByReason[d.Reason]++
	}
	return summary
}
