package door

// Thresholds holds the tunable parameters of ConstraintAdmission. The
// defaults below were tuned empirically against the three built-in
// scenarios; every field can be overridden per scenario via ScenarioSpec.
type Thresholds struct {
	// RarityThreshold: attributes with population relative frequency below
	// this value are treated as rare and accepted almost unconditionally
	// while under target. Range: (0, 1).
	RarityThreshold float64

	// RareFloorRatio: while a rare constrained attribute is below
	// RareFloorRatio x target, only candidates carrying some open rare
	// attribute are accepted at all. Set to 0 to disable the gate.
	RareFloorRatio float64

	// ModerateDeficit and LargeDeficit classify how far behind a
	// constraint is, in absolute admitted-count terms.
	ModerateDeficit int
	LargeDeficit    int

	// Fill-ratio phase boundaries. A single-need candidate is accepted
	// below EarlyFill unconditionally, below MidFill with a moderate
	// deficit, and below LateFill only with a large deficit. OpeningFill
	// is the tiny window in which even no-need candidates are tolerated.
	EarlyFill   float64
	MidFill     float64
	LateFill    float64
	OpeningFill float64

	// Over-target tolerance multipliers: how far past 100% of a target an
	// attribute is still worth accepting. Rare attributes get the wider
	// margin because their supply cannot be recovered later.
	OverTargetRare   float64
	OverTargetCommon float64

	// Correlation cutoffs for the combo rules. NegativeCorrelation is
	// compared with <= (e.g. -0.5), PositiveCorrelation with >=.
	NegativeCorrelation float64
	PositiveCorrelation float64

	// MultiNeed: a candidate satisfying at least this many open
	// constraints is accepted regardless of phase. MultiCritical is the
	// same for large-deficit (or rare) constraints.
	MultiNeed     int
	MultiCritical int

	// DefaultMinCount is the target substituted for attributes that have
	// no constraint entry. Zero means "already satisfied", so unknown
	// attributes never influence a decision.
	DefaultMinCount int
}

// DefaultThresholds returns the tuned starting parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RarityThreshold:     0.10,
		RareFloorRatio:      0.5,
		ModerateDeficit:     50,
		LargeDeficit:        100,
		EarlyFill:           0.8,
		MidFill:             0.9,
		LateFill:            0.97,
		OpeningFill:         0.05,
		OverTargetRare:      1.2,
		OverTargetCommon:    1.1,
		NegativeCorrelation: -0.5,
		PositiveCorrelation: 0.5,
		MultiNeed:           3,
		MultiCritical:       2,
		DefaultMinCount:     0,
	}
}
