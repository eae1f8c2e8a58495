package tfidf

import (
	"math"
	"sort"
)

// Entry is a single column-weight pair in a sparse vector.
type Entry struct {
	Column int
	Weight float64
}

// Vector is a sparse vector over the model vocabulary, sorted by Column.
// The zero-length vector is the zero vector.
type Vector []Entry

// newVector builds a sorted Vector from a column-weight map, dropping zeros.
func newVector(weights map[int]float64) Vector {
	if len(weights) == 0 {
		return nil
	}
	v := make(Vector, 0, len(weights))
	for col, w := range weights {
		if w != 0 {
			v = append(v, Entry{Column: col, Weight: w})
		}
	}
	sort.Slice(v, func(i, j int) bool { return v[i].Column < v[j].Column })
	return v
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Normalize scales v to unit length in place. The zero vector is left as is.
func (v Vector) Normalize() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	for i := range v {
		v[i].Weight /= n
	}
	return v
}

// Dot computes the dot product of two sorted sparse vectors by merge-join.
// For unit vectors this is their cosine similarity.
func Dot(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Column == b[j].Column:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Column < b[j].Column:
			i++
		default:
			j++
		}
	}
	return dot
}
