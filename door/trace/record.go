// Package trace provides decision-trace recording for admission policy
// analysis. It has no dependencies on door/ — it stores pure data types.
package trace

// DecisionRecord captures a single admission decision.
type DecisionRecord struct {
	Index     int
	Accepted  bool
	Reason    string
	FillRatio float64
}
