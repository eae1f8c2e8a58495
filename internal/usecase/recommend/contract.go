package recommend

import (
	"github.com/kailas-cloud/saunarec/internal/domain/catalog"
	"github.com/kailas-cloud/saunarec/internal/ranking"
)

// Index is the immutable ranking state built at startup.
type Index interface {
	Search(text string, k int) []ranking.Hit
	Document(id int) (*catalog.Document, bool)
	Size() int
	VocabularySize() int
}
