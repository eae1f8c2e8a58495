package catalog

import "strings"

// Document is one catalog entry (immutable value object).
type Document struct {
	id          int
	name        string
	location    string
	priceText   string
	price       *int64
	beginnerTip string
	refreshType string
	saunaTemp   string
	waterTemp   string
	featureText string
}

// Attributes carries the raw text fields of a catalog record.
type Attributes struct {
	Name        string
	Location    string
	Price       string
	BeginnerTip string
	RefreshType string
	SaunaTemp   string
	WaterTemp   string
}

// Complete reports whether all ranking attributes are present.
func (a Attributes) Complete() bool {
	for _, v := range []string{a.BeginnerTip, a.RefreshType, a.SaunaTemp, a.WaterTemp} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// New creates a Document at corpus position id. The caller guarantees Complete().
func New(id int, a Attributes) Document {
	d := Document{
		id:          id,
		name:        a.Name,
		location:    a.Location,
		priceText:   a.Price,
		beginnerTip: a.BeginnerTip,
		refreshType: a.RefreshType,
		saunaTemp:   a.SaunaTemp,
		waterTemp:   a.WaterTemp,
	}
	if v, ok := ParsePrice(a.Price); ok {
		d.price = &v
	}
	d.featureText = strings.Join([]string{a.BeginnerTip, a.RefreshType, a.SaunaTemp, a.WaterTemp}, " ")
	return d
}

// ID returns the corpus position, which is also the matrix row.
func (d *Document) ID() int { return d.id }

// Name returns the facility name.
func (d *Document) Name() string { return d.name }

// Location returns the facility location.
func (d *Document) Location() string { return d.location }

// PriceText returns the raw price cell.
func (d *Document) PriceText() string { return d.priceText }

// Price returns the parsed price, or false when unknown.
func (d *Document) Price() (int64, bool) {
	if d.price == nil {
		return 0, false
	}
	return *d.price, true
}

// BeginnerTip returns the beginner recommendation text.
func (d *Document) BeginnerTip() string { return d.beginnerTip }

// RefreshType returns the refresh type text.
func (d *Document) RefreshType() string { return d.refreshType }

// SaunaTemp returns the sauna temperature text.
func (d *Document) SaunaTemp() string { return d.saunaTemp }

// WaterTemp returns the cold bath temperature text.
func (d *Document) WaterTemp() string { return d.waterTemp }

// FeatureText returns the ranking text derived at load time.
func (d *Document) FeatureText() string { return d.featureText }
