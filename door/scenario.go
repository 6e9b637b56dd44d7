package door

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Default session bounds, from the game rules.
const (
	DefaultCapacity        = 1000
	DefaultRejectionBudget = 20000
)

// ScenarioSpec is the declarative per-scenario configuration: the attribute
// constraints, the advertised population statistics, and optional threshold
// overrides. Loaded from YAML via LoadScenarioSpec(path).
type ScenarioSpec struct {
	Name            string              `yaml:"name"`
	Capacity        int                 `yaml:"capacity,omitempty"`         // 0 = DefaultCapacity
	RejectionBudget int                 `yaml:"rejection_budget,omitempty"` // 0 = DefaultRejectionBudget
	Constraints     []ConstraintSpec    `yaml:"constraints"`
	Statistics      *StatisticsSpec     `yaml:"statistics,omitempty"`
	Thresholds      *ThresholdOverrides `yaml:"thresholds,omitempty"`
	Policy          string              `yaml:"policy,omitempty"`
}

// ConstraintSpec pairs an attribute with its minimum admitted count.
type ConstraintSpec struct {
	Attribute string `yaml:"attribute"`
	MinCount  int    `yaml:"min_count"`
}

// StatisticsSpec mirrors Statistics in YAML form.
type StatisticsSpec struct {
	RelativeFrequencies map[string]float64            `yaml:"relative_frequencies"`
	Correlations        map[string]map[string]float64 `yaml:"correlations,omitempty"`
}

// ThresholdOverrides holds optional per-scenario threshold overrides.
// Nil pointer fields mean "not set" — they do not override DefaultThresholds.
type ThresholdOverrides struct {
	RarityThreshold     *float64 `yaml:"rarity_threshold,omitempty"`
	RareFloorRatio      *float64 `yaml:"rare_floor_ratio,omitempty"`
	ModerateDeficit     *int     `yaml:"moderate_deficit,omitempty"`
	LargeDeficit        *int     `yaml:"large_deficit,omitempty"`
	EarlyFill           *float64 `yaml:"early_fill,omitempty"`
	MidFill             *float64 `yaml:"mid_fill,omitempty"`
	LateFill            *float64 `yaml:"late_fill,omitempty"`
	OpeningFill         *float64 `yaml:"opening_fill,omitempty"`
	OverTargetRare      *float64 `yaml:"over_target_rare,omitempty"`
	OverTargetCommon    *float64 `yaml:"over_target_common,omitempty"`
	NegativeCorrelation *float64 `yaml:"negative_correlation,omitempty"`
	PositiveCorrelation *float64 `yaml:"positive_correlation,omitempty"`
	MultiNeed           *int     `yaml:"multi_need,omitempty"`
	MultiCritical       *int     `yaml:"multi_critical,omitempty"`
	DefaultMinCount     *int     `yaml:"default_min_count,omitempty"`
}

// LoadScenarioSpec reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario spec: %w", err)
	}
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *ScenarioSpec) Validate() error {
	if s.Capacity < 0 {
		return fmt.Errorf("capacity must be non-negative, got %d", s.Capacity)
	}
	if s.RejectionBudget < 0 {
		return fmt.Errorf("rejection_budget must be non-negative, got %d", s.RejectionBudget)
	}
	if len(s.Constraints) == 0 {
		return fmt.Errorf("at least one constraint required")
	}
	seen := make(map[string]bool, len(s.Constraints))
	for i, c := range s.Constraints {
		prefix := fmt.Sprintf("constraint[%d]", i)
		if c.Attribute == "" {
			return fmt.Errorf("%s: attribute name required", prefix)
		}
		if seen[c.Attribute] {
			return fmt.Errorf("%s: duplicate attribute %q", prefix, c.Attribute)
		}
		seen[c.Attribute] = true
		if c.MinCount < 0 {
			return fmt.Errorf("%s: min_count must be non-negative, got %d", prefix, c.MinCount)
		}
	}
	if !IsValidPolicy(s.Policy) {
		return fmt.Errorf("unknown policy %q; valid: always-accept, constraint-aware, or empty", s.Policy)
	}
	if s.Statistics != nil {
		if err := s.Statistics.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (st *StatisticsSpec) validate() error {
	for name, f := range st.RelativeFrequencies {
		if math.IsNaN(f) || f < 0 || f > 1 {
			return fmt.Errorf("statistics.relative_frequencies.%s must be in [0, 1], got %f", name, f)
		}
	}
	for a, row := range st.Correlations {
		for b, v := range row {
			if math.IsNaN(v) || v < -1 || v > 1 {
				return fmt.Errorf("statistics.correlations.%s.%s must be in [-1, 1], got %f", a, b, v)
			}
		}
	}
	return nil
}

// EffectiveCapacity returns the session capacity, defaulted.
func (s *ScenarioSpec) EffectiveCapacity() int {
	if s.Capacity == 0 {
		return DefaultCapacity
	}
	return s.Capacity
}

// EffectiveRejectionBudget returns the rejection budget, defaulted.
func (s *ScenarioSpec) EffectiveRejectionBudget() int {
	if s.RejectionBudget == 0 {
		return DefaultRejectionBudget
	}
	return s.RejectionBudget
}

// ConstraintList converts the constraint specs to engine Constraints.
func (s *ScenarioSpec) ConstraintList() []Constraint {
	out := make([]Constraint, len(s.Constraints))
	for i, c := range s.Constraints {
		out[i] = Constraint{Attribute: c.Attribute, MinCount: c.MinCount}
	}
	return out
}

// StatisticsTable converts the statistics spec to an engine *Statistics.
// Returns nil when the scenario carries no statistics.
func (s *ScenarioSpec) StatisticsTable() *Statistics {
	if s.Statistics == nil {
		return nil
	}
	return &Statistics{
		RelativeFrequencies: s.Statistics.RelativeFrequencies,
		Correlations:        s.Statistics.Correlations,
	}
}

// EffectiveThresholds returns DefaultThresholds with the scenario's
// overrides applied.
func (s *ScenarioSpec) EffectiveThresholds() Thresholds {
	cfg := DefaultThresholds()
	o := s.Thresholds
	if o == nil {
		return cfg
	}
	if o.RarityThreshold != nil {
		cfg.RarityThreshold = *o.RarityThreshold
	}
	if o.RareFloorRatio != nil {
		cfg.RareFloorRatio = *o.RareFloorRatio
	}
	if o.ModerateDeficit != nil {
		cfg.ModerateDeficit = *o.ModerateDeficit
	}
	if o.LargeDeficit != nil {
		cfg.LargeDeficit = *o.LargeDeficit
	}
	if o.EarlyFill != nil {
		cfg.EarlyFill = *o.EarlyFill
	}
	if o.MidFill != nil {
		cfg.MidFill = *o.MidFill
	}
	if o.LateFill != nil {
		cfg.LateFill = *o.LateFill
	}
	if o.OpeningFill != nil {
		cfg.OpeningFill = *o.OpeningFill
	}
	if o.OverTargetRare != nil {
		cfg.OverTargetRare = *o.OverTargetRare
	}
	if o.OverTargetCommon != nil {
		cfg.OverTargetCommon = *o.OverTargetCommon
	}
	if o.NegativeCorrelation != nil {
		cfg.NegativeCorrelation = *o.NegativeCorrelation
	}
	if o.PositiveCorrelation != nil {
		cfg.PositiveCorrelation = *o.PositiveCorrelation
	}
	if o.MultiNeed != nil {
		cfg.MultiNeed = *o.MultiNeed
	}
	if o.MultiCritical != nil {
		cfg.MultiCritical = *o.MultiCritical
	}
	if o.DefaultMinCount != nil {
		cfg.DefaultMinCount = *o.DefaultMinCount
	}
	return cfg
}

// NewSessionFromSpec builds a fresh Session for one attempt at the scenario.
func NewSessionFromSpec(spec *ScenarioSpec) *Session {
	return NewSession(spec.EffectiveCapacity(), spec.EffectiveRejectionBudget(),
		spec.ConstraintList(), spec.StatisticsTable())
}
