package recommendation

import "github.com/kailas-cloud/saunarec/internal/domain/catalog"

// Recommendation is one ranked facility projected to its display fields.
type Recommendation struct {
	name        string
	location    string
	priceText   string
	price       *int64
	beginnerTip string
	score       float64
}

// FromDocument projects a catalog document with its similarity score.
func FromDocument(d *catalog.Document, score float64) Recommendation {
	r := Recommendation{
		name:        d.Name(),
		location:    d.Location(),
		priceText:   d.PriceText(),
		beginnerTip: d.BeginnerTip(),
		score:       score,
	}
	if v, ok := d.Price(); ok {
		r.price = &v
	}
	return r
}

// Name returns the facility name.
func (r *Recommendation) Name() string { return r.name }

// Location returns the facility location.
func (r *Recommendation) Location() string { return r.location }

// PriceText returns the raw price cell.
func (r *Recommendation) PriceText() string { return r.priceText }

// Price returns the parsed price, nil when unknown.
func (r *Recommendation) Price() *int64 { return r.price }

// BeginnerTip returns the beginner recommendation text.
func (r *Recommendation) BeginnerTip() string { return r.beginnerTip }

// Score returns the cosine similarity to the query.
func (r *Recommendation) Score() float64 { return r.score }
