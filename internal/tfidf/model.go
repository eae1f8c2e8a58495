// Package tfidf builds a fixed vocabulary with smoothed IDF weights and maps
// text onto L2-normalized TF-IDF vectors over it.
package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/saunarec/internal/domain"
	"github.com/kailas-cloud/saunarec/internal/text"
)

// DefaultStopwords are dropped from both corpus and query terms.
var DefaultStopwords = []string{"て", "に", "を", "は", "が", "です", "ます"}

// Model is a vocabulary with per-term IDF weights. Immutable after Build;
// safe for concurrent Transform calls.
type Model struct {
	vocab map[string]int
	terms []string
	idf   []float64
	stop  text.Stopwords
}

// Build indexes texts. Columns are assigned in sorted term order.
// IDF(t) = ln((1+N)/(1+df(t))) + 1.
func Build(texts []string, stopwords []string) (*Model, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no documents to index", domain.ErrEmptyCorpus)
	}

	stop := text.StopSet(stopwords)
	df := make(map[string]int)
	for _, t := range texts {
		for term := range text.Terms(t, stop) {
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("%w: no terms to index", domain.ErrEmptyCorpus)
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(texts))
	m := &Model{
		vocab: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
		stop:  stop,
	}
	for col, term := range terms {
		m.vocab[term] = col
		m.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return m, nil
}

// Transform maps text onto a unit TF-IDF vector. Terms outside the
// vocabulary are ignored; text without known terms yields the zero vector.
func (m *Model) Transform(s string) Vector {
	counts := text.Terms(s, m.stop)
	weights := make(map[int]float64, len(counts))
	for term, tf := range counts {
		col, ok := m.vocab[term]
		if !ok {
			continue
		}
		weights[col] = float64(tf) * m.idf[col]
	}
	return newVector(weights).Normalize()
}

// Size returns the vocabulary size.
func (m *Model) Size() int { return len(m.terms) }

// Column returns the column index of term.
func (m *Model) Column(term string) (int, bool) {
	col, ok := m.vocab[term]
	return col, ok
}

// IDF returns the weight of a column.
func (m *Model) IDF(col int) float64 { return m.idf[col] }

// Term returns the term at a column.
func (m *Model) Term(col int) string { return m.terms[col] }
