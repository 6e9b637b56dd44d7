package door

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ComputeStatistics derives relative frequencies and pairwise correlations
// from observed attribute vectors (typically the full decision history of
// one session, accepted and rejected alike). Correlations are Pearson on
// the 0/1 indicator series, which for boolean attributes is the phi
// coefficient — the same quantity the game advertises. Pairs where either
// series is constant have undefined correlation and are reported as 0.
func ComputeStatistics(samples []map[string]bool) *Statistics {
	names := map[string]bool{}
	for _, s := range samples {
		for name := range s {
			names[name] = true
		}
	}
	attrs := make([]string, 0, len(names))
	for name := range names {
		attrs = append(attrs, name)
	}
	sort.Strings(attrs)

	series := make(map[string][]float64, len(attrs))
	freqs := make(map[string]float64, len(attrs))
	for _, attr := range attrs {
		xs := make([]float64, len(samples))
		sum := 0.0
		for i, s := range samples {
			if s[attr] {
				xs[i] = 1
				sum++
			}
		}
		series[attr] = xs
		if len(samples) > 0 {
			freqs[attr] = sum / float64(len(samples))
		}
	}

	corrs := make(map[string]map[string]float64, len(attrs))
	for i, a := range attrs {
		for _, b := range attrs[i+1:] {
			r := stat.Correlation(series[a], series[b], nil)
			if math.IsNaN(r) {
				r = 0
			}
			if corrs[a] == nil {
				corrs[a] = make(map[string]float64)
			}
			corrs[a][b] = r
		}
	}

	return &Statistics{RelativeFrequencies: freqs, Correlations: corrs}
}

// FrequencyDrift is the gap between an advertised and an observed relative
// frequency for one attribute.
type FrequencyDrift struct {
	Attribute  string
	Advertised float64
	Observed   float64
	Delta      float64 // observed - advertised
}

// CompareFrequencies diffs observed frequencies against the advertised
// table, sorted by attribute name. Attributes unknown to either side are
// reported with a zero on that side.
func CompareFrequencies(advertised, observed *Statistics) []FrequencyDrift {
	names := map[string]bool{}
	for _, n := range advertised.Attributes() {
		names[n] = true
	}
	for _, n := range observed.Attributes() {
		names[n] = true
	}
	attrs := make([]string, 0, len(names))
	for n := range names {
		attrs = append(attrs, n)
	}
	sort.Strings(attrs)

	drifts := make([]FrequencyDrift, 0, len(attrs))
	for _, attr := range attrs {
		adv, _ := advertised.Frequency(attr)
		obs, _ := observed.Frequency(attr)
		drifts = append(drifts, FrequencyDrift{
			Attribute:  attr,
			Advertised: adv,
			Observed:   obs,
			Delta:      obs - adv,
		})
	}
	return drifts
}
