package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogChecker
	posts   StorePinger
}

// New creates a Service. posts can be nil.
func New(catalog CatalogChecker, posts StorePinger) *Service {
	return &Service{catalog: catalog, posts: posts}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"catalog": CheckOK}
	if !s.catalog.Ready() {
		checks["catalog"] = CheckError
	}

	if s.posts != nil {
		checks["posts"] = CheckOK
		if err := s.posts.Ping(ctx); err != nil {
			checks["posts"] = CheckError
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks}
}
