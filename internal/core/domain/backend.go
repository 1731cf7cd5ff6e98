package domain

import (
	"strings"
	"time"
)

// HealthStatus is the backend's answer to a health probe.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Healthy reports whether the backend declared itself usable.
func (h HealthStatus) Healthy() bool {
	switch strings.ToLower(h.Status) {
	case "ok", "healthy":
		return true
	}
	return false
}

// ReportFormat selects the shape of a claims report.
type ReportFormat string

const (
	ReportJSON ReportFormat = "json"
	ReportPDF  ReportFormat = "pdf"
)

// ParseReportFormat validates a report format name.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ReportJSON, ReportPDF:
		return f, nil
	}
	return "", &ValidationError{Field: "format", Message: "format must be json or pdf"}
}

// ReportRow is one stored query in a JSON report.
type ReportRow struct {
	Query            string    `json:"query"`
	Decision         Decision  `json:"decision"`
	Amount           *float64  `json:"amount,omitempty"`
	Justification    string    `json:"justification"`
	ReferenceClauses []string  `json:"reference_clauses"`
	Timestamp        time.Time `json:"timestamp"`
}

// Report is a claims report. Rows is set for JSON reports, PDF for PDF ones.
type Report struct {
	Format ReportFormat `json:"format"`
	Rows   []ReportRow  `json:"rows,omitempty"`
	PDF    []byte       `json:"-"`
}
