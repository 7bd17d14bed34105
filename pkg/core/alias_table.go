package core

import "gonum.org/v1/gonum/floats"

// AliasTable is Vose's alias method for O(1) discrete sampling from a fixed
// set of non-negative weights. Used both for the emissive-triangle luminaire
// selector and the environment-map importance sampler.
type AliasTable struct {
	prob  []float64 // probability mass of entry i, prob[i] = weight[i] / sum(weights)
	table []int32   // alias index for entry i
	split []float64 // P(stay on i | index==i) in [0,1]
}

// NewAliasTable builds a table over weights. Weights must be non-negative.
// If they sum to zero or less, the table falls back to uniform selection; if
// len(weights) == 0, the table is empty and Sample returns -1.
func NewAliasTable(weights []float64) *AliasTable {
	n := len(weights)
	at := &AliasTable{
		prob:  make([]float64, n),
		table: make([]int32, n),
		split: make([]float64, n),
	}
	if n == 0 {
		return at
	}

	sum := floats.SumCompensated(weights)
	if sum <= 0 {
		// Degenerate: fall back to a uniform table rather than dividing by zero.
		uniform := 1.0 / float64(n)
		for i := range at.prob {
			at.prob[i] = uniform
			at.split[i] = 1
			at.table[i] = int32(i)
		}
		return at
	}

	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, w := range weights {
		at.prob[i] = w / sum
		scaled[i] = at.prob[i] * float64(n)
		if scaled[i] < 1.0 {
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

		at.split[s] = scaled[s]
		at.table[s] = int32(l)

		scaled[l] = (scaled[l] + scaled[s]) - 1.0
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	for _, l := range large {
		at.split[l] = 1.0
		at.table[l] = int32(l)
	}
	for _, s := range small {
		// Accumulated floating-point error can strand an entry here; treat
		// it as certain to keep its own slot rather than leaving split at 0.
		at.split[s] = 1.0
		at.table[s] = int32(s)
	}

	return at
}

// Len returns the number of entries in the table.
func (at *AliasTable) Len() int {
	return len(at.prob)
}

// Probability returns the overall selection probability of entry i.
func (at *AliasTable) Probability(i int) float64 {
	return at.prob[i]
}

// Sample selects an index using two independent uniforms in [0,1); u0
// chooses the bucket, u1 resolves the split within it.
func (at *AliasTable) Sample(u0, u1 float64) int {
	n := len(at.prob)
	if n == 0 {
		return -1
	}
	index := int(u0 * float64(n))
	if index >= n {
		index = n - 1
	}
	if u1 < at.split[index] {
		return index
	}
	return int(at.table[index])
}
