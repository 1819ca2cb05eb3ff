// Package randx wraps a single seeded math/rand source with the sampling
// primitives the generators share. Every stage draws from one *Rand in a
// fixed order, which is what makes a run reproducible for a given seed.
package randx

import (
	"math"
	"math/rand"
	"sort"
)

// Rand is a seeded random source with distribution helpers.
type Rand struct {
	*rand.Rand
}

// New creates a Rand seeded deterministically.
func New(seed int64) *Rand {
	return &Rand{Rand: rand.New(rand.NewSource(seed))}
}

// Uniform returns a uniform draw in [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Normal returns a normal draw with the given mean and standard deviation.
func (r *Rand) Normal(mean, sd float64) float64 {
	return r.NormFloat64()*sd + mean
}

// Exponential returns an exponential draw with the given mean.
func (r *Rand) Exponential(mean float64) float64 {
	return r.ExpFloat64() * mean
}

// LogNormal returns exp(N(mu, sigma)).
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return math.Exp(r.Normal(mu, sigma))
}

// Gamma2 returns a gamma draw with shape 2 and the given scale
// (sum of two independent exponentials).
func (r *Rand) Gamma2(scale float64) float64 {
	return r.Exponential(scale) + r.Exponential(scale)
}

// Poisson returns a Poisson draw with the given rate (Knuth's method;
// the rates used here are small, so the loop stays short).
func (r *Rand) Poisson(lambda float64) int {
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= r.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func (r *Rand) IntBetween(lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// Hit reports whether a draw landed under probability p.
func (r *Rand) Hit(p float64) bool {
	return r.Float64() < p
}

// Cumulative is a precomputed weighted-choice table. Weights need not sum
// to one; they are normalized implicitly.
type Cumulative struct {
	sums []float64
}

// NewCumulative builds a choice table from non-negative weights.
func NewCumulative(weights []float64) *Cumulative {
	sums := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		sums[i] = total
	}
	return &Cumulative{sums: sums}
}

// Sample returns a weighted index draw.
func (c *Cumulative) Sample(r *Rand) int {
	total := c.sums[len(c.sums)-1]
	x := r.Float64() * total
	i := sort.SearchFloat64s(c.sums, x)
	if i == len(c.sums) {
		i = len(c.sums) - 1
	}
	return i
}

// Round2 rounds to two decimals, the precision of all monetary columns.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round1 rounds to one decimal, the precision of alert scores.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
