// Package sampler implements Walker's alias method for drawing from a
// discrete weighted distribution: O(n) table construction, O(1) per
// draw.
package sampler

import "math/rand/v2"

// Walker holds the probability and alias tables for one weight vector.
// Candidate sets differ per request, so callers build a fresh table per
// selection rather than caching.
type Walker struct {
	prob  []float64
	alias []int
	rnd   *rand.Rand
}

// New builds the alias table for the given weights. Negative weights
// are treated as zero. A nil or all-zero vector produces a degenerate
// table whose Draw reports no winner.
func New(weights []float64) *Walker {
	return NewSource(weights, rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSource is New with an explicit random source, for deterministic
// tests.
func NewSource(weights []float64, src rand.Source) *Walker {
	w := &Walker{rnd: rand.New(src)}

	n := len(weights)
	if n == 0 {
		return w
	}
	total := 0.0
	for _, weight := range weights {
		if weight > 0 {
			total += weight
		}
	}
	if total <= 0 {
		return w
	}

	// Scale weights to mean 1 and split into the under- and over-full
	// columns, then pair each small column with a large donor.
	w.prob = make([]float64, n)
	w.alias = make([]int, n)
	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, weight := range weights {
		if weight < 0 {
			weight = 0
		}
		scaled[i] = weight * float64(n) / total
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}
	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		w.prob[s] = scaled[s]
		w.alias[s] = l
		scaled[l] -= 1 - scaled[s]
		if scaled[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	// Leftovers are exactly full up to floating point error.
	for _, i := range large {
		w.prob[i] = 1
	}
	for _, i := range small {
		w.prob[i] = 1
	}
	return w
}

// Draw returns the index of one winner. ok is false only for a
// degenerate table (empty or all-zero weights); callers are expected to
// recover with a uniform pick.
func (w *Walker) Draw() (idx int, ok bool) {
	if len(w.prob) == 0 {
		return 0, false
	}
	i := w.rnd.IntN(len(w.prob))
	if w.rnd.Float64() < w.prob[i] {
		return i, true
	}
	return w.alias[i], true
}
