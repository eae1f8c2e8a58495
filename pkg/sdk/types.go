package saunarec

import "time"

// Preferences are the three questionnaire answers. Blank answers are allowed.
type Preferences struct {
	RefreshType string
	SaunaTemp   string
	WaterTemp   string
}

// Recommendation is one ranked facility.
type Recommendation struct {
	Name        string
	Location    string
	Price       string // raw catalog text, may be empty
	PriceValue  *int64 // parsed yen amount, nil when unknown
	BeginnerTip string
	Score       float64
}

// Facility is one catalog row for WithFacilities.
type Facility struct {
	Name        string
	Location    string
	Price       string
	BeginnerTip string
	RefreshType string
	SaunaTemp   string
	WaterTemp   string
}

// Columns maps catalog attributes to file header names.
type Columns struct {
	Name        string
	Location    string
	Price       string
	BeginnerTip string
	RefreshType string
	SaunaTemp   string
	WaterTemp   string
}

// Post is a board entry.
type Post struct {
	ID        string
	Name      string
	Content   string
	Date      string
	CreatedAt time.Time
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component → "ok"/"error"
}
