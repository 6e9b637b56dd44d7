package door

// Candidate is one arrival in the admission stream. Attributes not present
// in the map are treated as false.
type Candidate struct {
	Index      int
	Attributes map[string]bool
}

// Has reports whether the candidate carries the named attribute.
func (c *Candidate) Has(attr string) bool {
	return c.Attributes[attr]
}

// Constraint requires a minimum number of admitted candidates carrying an
// attribute by the time the venue is full. A single admitted candidate may
// satisfy several constraints at once.
type Constraint struct {
	Attribute string
	MinCount  int
}

// Statistics holds advisory population-level attribute statistics: relative
// frequencies per attribute and a symmetric pairwise correlation table.
// A nil *Statistics is valid everywhere and disables correlation-aware and
// rarity-aware behavior.
type Statistics struct {
	RelativeFrequencies map[string]float64
	Correlations        map[string]map[string]float64
}

// Frequency returns the population relative frequency of attr and whether
// it is known. Safe on a nil receiver.
func (s *Statistics) Frequency(attr string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	f, ok := s.RelativeFrequencies[attr]
	return f, ok
}

// Correlation returns the pairwise correlation between two attributes.
// Self-correlation is 1.0. Unknown pairs return 0 (uncorrelated).
// The table is symmetric; both orderings are checked. Safe on a nil receiver.
func (s *Statistics) Correlation(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if s == nil {
		return 0
	}
	if row, ok := s.Correlations[a]; ok {
		if v, ok := row[b]; ok {
			return v
		}
	}
	if row, ok := s.Correlations[b]; ok {
		if v, ok := row[a]; ok {
			return v
		}
	}
	return 0
}

// Attributes returns the set of attribute names with known frequencies,
// in unspecified order. Safe on a nil receiver.
func (s *Statistics) Attributes() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.RelativeFrequencies))
	for name := range s.RelativeFrequencies {
		names = append(names, name)
	}
	return names
}
