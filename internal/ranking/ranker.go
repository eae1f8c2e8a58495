// Package ranking orders matrix rows by similarity to a query vector.
package ranking

import (
	"sort"

	"github.com/kailas-cloud/saunarec/internal/tfidf"
)

// DefaultTopK is the number of recommendations returned per request.
const DefaultTopK = 5

// Hit is a ranked row with its similarity score.
type Hit struct {
	ID    int
	Score float64
}

// Rank scores every row of x against q and returns the top min(k, rows) hits
// by descending score. Both sides are expected to be unit vectors, so the dot
// product is the cosine similarity. Equal scores keep row order, so a zero
// query returns the first k rows.
func Rank(q tfidf.Vector, x tfidf.Matrix, k int) []Hit {
	n := x.Rows()
	if k <= 0 || n == 0 {
		return []Hit{}
	}

	hits := make([]Hit, n)
	for i := 0; i < n; i++ {
		hits[i] = Hit{ID: i, Score: tfidf.Dot(q, x.Row(i))}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > n {
		k = n
	}
	return hits[:k]
}
