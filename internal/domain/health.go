package domain

// HealthStatus indicates doctor check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks.
type HealthReport struct {
	Checks []HealthCheck
}

// Overall returns the worst status across all checks.
func (r HealthReport) Overall() HealthStatus {
	overall := HealthOK
	for _, c := range r.Checks {
		switch c.Status {
		case HealthError:
			return HealthError
		case HealthWarn:
			overall = HealthWarn
		}
	}
	return overall
}

// AuditFinding flags an unsafe plugin or completion directory entry.
type AuditFinding struct {
	Path   string
	Reason string
}
