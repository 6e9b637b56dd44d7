package door

import (
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CandidateSampler draws candidates whose boolean attributes follow a
// scenario's advertised relative frequencies and pairwise correlations,
// using a Gaussian copula: correlated standard normals are thresholded at
// each attribute's frequency quantile. Treating the advertised phi
// coefficients as normal-space correlations is an approximation, but it
// reproduces the marginals exactly and the correlation signs and rough
// magnitudes, which is all the policy keys on.
//
// With no statistics the sampler degrades to independent fair coin flips
// per constrained attribute.
type CandidateSampler struct {
	attrs     []string
	quantiles []float64
	chol      *mat.TriDense // nil = independent sampling
	rng       *rand.Rand
}

// NewCandidateSampler builds a sampler for the scenario's attribute set,
// deterministic for a given seed. Falls back to independent sampling (with
// a warning) when the correlation matrix is not positive definite.
func NewCandidateSampler(spec *ScenarioSpec, seed int64) *CandidateSampler {
	stats := spec.StatisticsTable()

	var attrs []string
	if stats != nil {
		attrs = stats.Attributes()
	} else {
		for _, c := range spec.Constraints {
			attrs = append(attrs, c.Attribute)
		}
	}
	sort.Strings(attrs)

	cs := &CandidateSampler{
		attrs:     attrs,
		quantiles: make([]float64, len(attrs)),
		rng:       rand.New(rand.NewSource(seed)),
	}
	for i, attr := range attrs {
		freq, ok := stats.Frequency(attr)
		if !ok {
			freq = 0.5
		}
		cs.quantiles[i] = distuv.UnitNormal.Quantile(clamp01(freq))
	}

	if stats == nil || len(attrs) < 2 {
		return cs
	}

	n := len(attrs)
	data := make([]float64, n*n)
	for i := range attrs {
		for j := range attrs {
			data[i*n+j] = stats.Correlation(attrs[i], attrs[j])
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(mat.NewSymDense(n, data)); !ok {
		logrus.Warnf("scenario %s: correlation matrix not positive definite; sampling attributes independently", spec.Name)
		return cs
	}
	cs.chol = mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(cs.chol)
	return cs
}

// Next draws the candidate at the given arrival index.
func (cs *CandidateSampler) Next(index int) *Candidate {
	n := len(cs.attrs)
	z := make([]float64, n)
	for i := range z {
		z[i] = cs.rng.NormFloat64()
	}

	attrs := make(map[string]bool, n)
	for i, attr := range cs.attrs {
		x := z[i]
		if cs.chol != nil {
			x = 0
			for j := 0; j <= i; j++ {
				x += cs.chol.At(i, j) * z[j]
			}
		}
		attrs[attr] = x <= cs.quantiles[i]
	}
	return &Candidate{Index: index, Attributes: attrs}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
