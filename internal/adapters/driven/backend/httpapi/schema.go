package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// flexID accepts the integer IDs the backend emits as well as strings.
// JSON null decodes to the empty string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id must be a number or string, got %s", b)
		}
		*f = flexID(n.String())
	}
	return nil
}

// flexAmount accepts amounts as numbers or as strings such as "1000.00",
// "$1,000" or "Rs. 50,000". Any other text decodes as absent.
type flexAmount struct {
	value *float64
}

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	a.value = nil
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		a.value = parseAmount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("amount must be a number or string, got %s", b)
	}
	a.value = &f
	return nil
}

// amountToken matches one number with optional thousands separators,
// including Indian grouping such as 1,00,000.
var amountToken = regexp.MustCompile(`\d(?:[\d,]*\d)?(?:\.\d+)?`)

// currencyWords may surround the number, e.g. "INR 500" or "500 USD".
var currencyWords = map[string]bool{
	"rs": true, "inr": true, "usd": true, "eur": true, "gbp": true,
}

// parseAmount reads a plain number, or exactly one number surrounded only
// by currency markers. Anything else is absent.
func parseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}

	locs := amountToken.FindAllStringIndex(s, -1)
	if len(locs) != 1 {
		return nil
	}
	start, end := locs[0][0], locs[0][1]
	if !currencyMarker(s[:start]) || !currencyMarker(strings.TrimSuffix(s[end:], "/-")) {
		return nil
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(s[start:end], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}

// currencyMarker reports whether s holds nothing but currency symbols,
// spaces and at most one currency word such as "Rs." or "INR".
func currencyMarker(s string) bool {
	word := strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '$', '₹', '€', '£':
			return ' '
		}
		return r
	}, s))
	if word == "" {
		return true
	}
	if strings.HasSuffix(word, ".") {
		// A bare "." would turn ".5" into a valid amount.
		word = strings.TrimSuffix(word, ".")
		if word == "" {
			return false
		}
	}
	return currencyWords[strings.ToLower(word)]
}

// Timestamps come from Python isoformat(), which omits the zone for naive
// datetimes. Those are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// decodeJSON reads a response body into v. Unknown fields are ignored;
// malformed JSON and wrong types fail with a DecodeError.
func decodeJSON(operation string, r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return &domain.DecodeError{Operation: operation, Field: field, Reason: err.Error()}
	}
	return nil
}

type documentPayload struct {
	ID          flexID  `json:"id"`
	Name        string  `json:"name"`
	FileSize    *int64  `json:"file_size"`
	Status      string  `json:"status"`
	Summary     *string `json:"summary"`
	UploadedAt  string  `json:"uploaded_at"`
	ProcessedAt *string `json:"processed_at"`
}

func (p documentPayload) record(operation, prefix string) (driven.DocumentRecord, error) {
	fail := func(field, reason string) (driven.DocumentRecord, error) {
		return driven.DocumentRecord{}, &domain.DecodeError{Operation: operation, Field: prefix + field, Reason: reason}
	}
	if p.ID == "" {
		return fail("id", "missing")
	}
	if p.Name == "" {
		return fail("name", "missing")
	}
	status := domain.DocumentStatus(p.Status)
	if !status.Valid() {
		return fail("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	uploaded, err := parseTimestamp(p.UploadedAt)
	if err != nil {
		return fail("uploaded_at", err.Error())
	}
	rec := driven.DocumentRecord{
		ID:         string(p.ID),
		Name:       p.Name,
		FileSize:   p.FileSize,
		Status:     status,
		UploadedAt: uploaded,
	}
	if p.Summary != nil {
		rec.Summary = *p.Summary
	}
	if p.ProcessedAt != nil && *p.ProcessedAt != "" {
		processed, err := parseTimestamp(*p.ProcessedAt)
		if err != nil {
			return fail("processed_at", err.Error())
		}
		rec.ProcessedAt = &processed
	}
	return rec, nil
}

type uploadPayload struct {
	Message  string           `json:"message"`
	Document *documentPayload `json:"document"`
}

func (p uploadPayload) receipt() (*driven.UploadReceipt, error) {
	receipt := &driven.UploadReceipt{Message: p.Message}
	if p.Document == nil {
		return receipt, nil
	}
	rec, err := p.Document.record("upload", "document.")
	if err != nil {
		return nil, err
	}
	receipt.Document = &rec
	return receipt, nil
}

type referenceDetailPayload struct {
	Label   string `json:"label"`
	Snippet string `json:"snippet"`
}

type queryPayload struct {
	Decision         string                   `json:"decision"`
	Amount           flexAmount               `json:"amount"`
	Justification    string                   `json:"justification"`
	ReferenceClauses []string                 `json:"reference_clauses"`
	ReferenceDetails []referenceDetailPayload `json:"reference_details"`
}

func (p queryPayload) answer(raw []byte) (*driven.QueryAnswer, error) {
	decision, ok := domain.ParseDecision(p.Decision)
	if !ok {
		return nil, &domain.DecodeError{Operation: "query", Field: "decision", Reason: fmt.Sprintf("unknown decision %q", p.Decision)}
	}
	answer := &driven.QueryAnswer{
		Decision:         decision,
		Amount:           p.Amount.value,
		Justification:    p.Justification,
		ReferenceClauses: p.ReferenceClauses,
		Raw:              json.RawMessage(raw),
	}
	for _, d := range p.ReferenceDetails {
		answer.ReferenceDetails = append(answer.ReferenceDetails, domain.ReferenceDetail(d))
	}
	return answer, nil
}

type queryRecordPayload struct {
	ID               flexID     `json:"id"`
	DocumentID       flexID     `json:"document_id"`
	QueryText        string     `json:"query_text"`
	Decision         string     `json:"decision"`
	Amount           flexAmount `json:"amount"`
	Justification    string     `json:"justification"`
	ReferenceClauses []string   `json:"reference_clauses"`
	Timestamp        string     `json:"timestamp"`
}

func (p queryRecordPayload) record(operation, prefix string) (driven.QueryRecord, error) {
	fail := func(field, reason string) (driven.QueryRecord, error) {
		return driven.QueryRecord{}, &domain.DecodeError{Operation: operation, Field: prefix + field, Reason: reason}
	}
	if p.ID == "" {
		return fail("id", "missing")
	}
	decision, ok := domain.ParseDecision(p.Decision)
	if !ok {
		return fail("decision", fmt.Sprintf("unknown decision %q", p.Decision))
	}
	ts, err := parseTimestamp(p.Timestamp)
	if err != nil {
		return fail("timestamp", err.Error())
	}
	return driven.QueryRecord{
		ID:               string(p.ID),
		DocumentID:       string(p.DocumentID),
		QueryText:        p.QueryText,
		Decision:         decision,
		Amount:           p.Amount.value,
		Justification:    p.Justification,
		ReferenceClauses: p.ReferenceClauses,
		Timestamp:        ts,
	}, nil
}

func queryRecords(operation string, payloads []queryRecordPayload) ([]driven.QueryRecord, error) {
	recs := make([]driven.QueryRecord, 0, len(payloads))
	for i, p := range payloads {
		rec, err := p.record(operation, fmt.Sprintf("[%d].", i))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

type reportRowPayload struct {
	Query            string     `json:"query"`
	Decision         string     `json:"decision"`
	Amount           flexAmount `json:"amount"`
	Justification    string     `json:"justification"`
	ReferenceClauses []string   `json:"reference_clauses"`
	Timestamp        string     `json:"timestamp"`
}

func (p reportRowPayload) row(index int) (domain.ReportRow, error) {
	prefix := fmt.Sprintf("[%d].", index)
	decision, ok := domain.ParseDecision(p.Decision)
	if !ok {
		return domain.ReportRow{}, &domain.DecodeError{Operation: "report", Field: prefix + "decision", Reason: fmt.Sprintf("unknown decision %q", p.Decision)}
	}
	ts, err := parseTimestamp(p.Timestamp)
	if err != nil {
		return domain.ReportRow{}, &domain.DecodeError{Operation: "report", Field: prefix + "timestamp", Reason: err.Error()}
	}
	clauses := p.ReferenceClauses
	if clauses == nil {
		clauses = []string{}
	}
	return domain.ReportRow{
		Query:            p.Query,
		Decision:         decision,
		Amount:           p.Amount.value,
		Justification:    p.Justification,
		ReferenceClauses: clauses,
		Timestamp:        ts,
	}, nil
}

type healthPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// errorPayload is any error body the backend may send. FastAPI uses
// "detail", which is a string or a list of validation problems.
type errorPayload struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Detail  json.RawMessage `json:"detail"`
}

func (p errorPayload) text() string {
	for _, raw := range []json.RawMessage{p.Message, p.Error, p.Detail} {
		if s := rawString(raw); s != "" {
			return s
		}
	}
	var problems []struct {
		Msg string `json:"msg"`
	}
	if len(p.Detail) > 0 && json.Unmarshal(p.Detail, &problems) == nil {
		msgs := make([]string, 0, len(problems))
		for _, problem := range problems {
			if problem.Msg != "" {
				msgs = append(msgs, problem.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
