// Package engine bundles the corpus with its vector-space model and document
// matrix. An Engine is built once at startup and never mutated.
package engine

import (
	"fmt"

	"github.com/kailas-cloud/saunarec/internal/domain"
	"github.com/kailas-cloud/saunarec/internal/domain/catalog"
	"github.com/kailas-cloud/saunarec/internal/ranking"
	"github.com/kailas-cloud/saunarec/internal/tfidf"
)

// Engine is the immutable ranking state. Safe for concurrent use.
type Engine struct {
	corpus []catalog.Document
	model  *tfidf.Model
	matrix tfidf.Matrix
}

// New indexes the corpus feature texts. Document ids must equal their
// position in corpus.
func New(corpus []catalog.Document, stopwords []string) (*Engine, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: catalog has no complete records", domain.ErrEmptyCorpus)
	}

	texts := make([]string, len(corpus))
	for i := range corpus {
		if corpus[i].ID() != i {
			return nil, fmt.Errorf("document at position %d has id %d", i, corpus[i].ID())
		}
		texts[i] = corpus[i].FeatureText()
	}

	model, err := tfidf.Build(texts, stopwords)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	docs := make([]catalog.Document, len(corpus))
	copy(docs, corpus)

	return &Engine{
		corpus: docs,
		model:  model,
		matrix: tfidf.FitMatrix(model, texts),
	}, nil
}

// Search ranks the corpus against text and returns the top k hits.
func (e *Engine) Search(text string, k int) []ranking.Hit {
	return ranking.Rank(e.model.Transform(text), e.matrix, k)
}

// Document returns the document with the given id.
func (e *Engine) Document(id int) (*catalog.Document, bool) {
	if id < 0 || id >= len(e.corpus) {
		return nil, false
	}
	return &e.corpus[id], true
}

// Size returns the number of indexed documents.
func (e *Engine) Size() int { return len(e.corpus) }

// VocabularySize returns the number of indexed terms.
func (e *Engine) VocabularySize() int { return e.model.Size() }
