package domain

import (
	"strings"
	"time"
)

// Decision is the verdict the backend reached for a claim question.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"

	// The backend also answers with these when it cannot reach a verdict.
	DecisionNoData  Decision = "no_data"
	DecisionNoMatch Decision = "no_match"
	DecisionError   Decision = "error"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionNoData, DecisionNoMatch, DecisionError:
		return true
	}
	return false
}

// IsVerdict reports whether the backend actually approved or rejected.
func (d Decision) IsVerdict() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// ParseDecision normalises a decision string from the backend.
func ParseDecision(s string) (Decision, bool) {
	d := Decision(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

// ReferenceDetail is a labelled excerpt of the policy backing a decision.
type ReferenceDetail struct {
	Label   string `json:"label"`
	Snippet string `json:"snippet"`
}

// QueryResult is a decision about a claim question. Results that were
// never persisted have an empty ID and a zero CreatedAt.
type QueryResult struct {
	ID               string            `json:"id,omitempty"`
	DocumentID       string            `json:"document_id"`
	QueryText        string            `json:"query_text"`
	Decision         Decision          `json:"decision"`
	ClaimAmount      *float64          `json:"claim_amount,omitempty"`
	Justification    string            `json:"justification"`
	PolicyClauses    []string          `json:"policy_clauses"`
	ReferenceDetails []ReferenceDetail `json:"reference_details,omitempty"`
	CreatedAt        time.Time         `json:"created_at,omitzero"`
}

// Persisted reports whether the result was saved to history.
func (q QueryResult) Persisted() bool {
	return q.ID != ""
}

// QueryOutcome is the result of a submitted question. Result is always
// set; Saved is set when the background save succeeded, SaveErr when it
// failed.
type QueryOutcome struct {
	Result  QueryResult
	Saved   *QueryResult
	SaveErr error
}

// PartialSuccess reports whether the answer was shown but not saved.
func (o QueryOutcome) PartialSuccess() bool {
	return o.SaveErr != nil
}

// Analytics aggregates every stored query.
type Analytics struct {
	TotalClaims    int     `json:"total_claims"`
	ApprovedClaims int     `json:"approved_claims"`
	RejectedClaims int     `json:"rejected_claims"`
	TotalAmount    float64 `json:"total_amount"`
}

// ApprovalRate returns the share of approved claims, or 0 with no claims.
func (a Analytics) ApprovalRate() float64 {
	if a.TotalClaims == 0 {
		return 0
	}
	return float64(a.ApprovedClaims) / float64(a.TotalClaims)
}
