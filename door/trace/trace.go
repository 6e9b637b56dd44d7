package trace

// GameTrace collects decision records over one session.
type GameTrace struct {
	Decisions []DecisionRecord
}

// NewGameTrace creates a GameTrace ready for recording.
func NewGameTrace() *GameTrace {
	return &GameTrace{Decisions: make([]DecisionRecord, 0)}
}

// Record appends a decision record.
func (gt *GameTrace) Record(record DecisionRecord) {
	gt.Decisions = append(gt.Decisions, record)
}
