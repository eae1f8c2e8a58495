package health

import "context"

// CatalogChecker reports whether the ranking index is installed.
type CatalogChecker interface {
	Ready() bool
}

// StorePinger checks post store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}
