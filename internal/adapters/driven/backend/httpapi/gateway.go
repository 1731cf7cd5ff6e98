package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.ClaimsBackend = (*Gateway)(nil)

// maxResponseBody bounds successful responses, PDF reports included.
const maxResponseBody = 64 << 20

// Gateway maps the claims backend REST API onto driven.ClaimsBackend.
type Gateway struct {
	client *Client
}

// NewGateway creates a gateway over client.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// UploadFile sends a PDF as multipart form data to /api/process-pdf.
func (g *Gateway) UploadFile(
	ctx context.Context,
	file domain.UploadFile,
	onProgress driven.ProgressFunc,
) (*driven.UploadReceipt, error) {
	body, contentType, err := multipartBody(file)
	if err != nil {
		return nil, err
	}
	size := int64(body.Len())

	req, err := g.client.NewRequest(ctx, http.MethodPost, "/api/process-pdf", nil,
		newProgressReader(body, size, onProgress))
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	raw, err := g.send("upload", req)
	if err != nil {
		return nil, err
	}
	var payload uploadPayload
	if err := decodeJSON("upload", bytes.NewReader(raw), &payload); err != nil {
		return nil, err
	}
	return payload.receipt()
}

// QueryDocument asks GET /api/query?query=<text>.
func (g *Gateway) QueryDocument(ctx context.Context, query string) (*driven.QueryAnswer, error) {
	raw, err := g.get(ctx, "query", "/api/query", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}
	var payload queryPayload
	if err := decodeJSON("query", bytes.NewReader(raw), &payload); err != nil {
		return nil, err
	}
	return payload.answer(raw)
}

// ListDocuments returns GET /api/documents.
func (g *Gateway) ListDocuments(ctx context.Context) ([]driven.DocumentRecord, error) {
	raw, err := g.get(ctx, "list_documents", "/api/documents", nil)
	if err != nil {
		return nil, err
	}
	var payloads []documentPayload
	if err := decodeJSON("list_documents", bytes.NewReader(raw), &payloads); err != nil {
		return nil, err
	}
	recs := make([]driven.DocumentRecord, 0, len(payloads))
	for i, p := range payloads {
		rec, err := p.record("list_documents", fmt.Sprintf("[%d].", i))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// GetDocument returns GET /api/documents/{id}.
func (g *Gateway) GetDocument(ctx context.Context, id string) (*driven.DocumentRecord, error) {
	raw, err := g.get(ctx, "get_document", documentPath(id), nil)
	if err != nil {
		return nil, err
	}
	var payload documentPayload
	if err := decodeJSON("get_document", bytes.NewReader(raw), &payload); err != nil {
		return nil, err
	}
	rec, err := payload.record("get_document", "")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateDocument sends PUT /api/documents/{id}. The response is discarded.
func (g *Gateway) UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) error {
	_, err := g.sendJSON(ctx, "update_document", http.MethodPut, documentPath(id), patch)
	return err
}

// DeleteDocument sends DELETE /api/documents/{id}.
func (g *Gateway) DeleteDocument(ctx context.Context, id string) error {
	req, err := g.client.NewRequest(ctx, http.MethodDelete, documentPath(id), nil, http.NoBody)
	if err != nil {
		return err
	}
	_, err = g.send("delete_document", req)
	return err
}

type createQueryRequest struct {
	DocumentID string          `json:"document_id"`
	QueryText  string          `json:"query_text"`
	Response   json.RawMessage `json:"response"`
}

// CreateQuery sends POST /api/queries with the raw answer.
func (g *Gateway) CreateQuery(ctx context.Context, query driven.NewQueryRecord) (*driven.QueryRecord, error) {
	response := query.Response
	if len(response) == 0 {
		response = json.RawMessage("{}")
	}
	raw, err := g.sendJSON(ctx, "create_query", http.MethodPost, "/api/queries", createQueryRequest{
		DocumentID: query.DocumentID,
		QueryText:  query.QueryText,
		Response:   response,
	})
	if err != nil {
		return nil, err
	}
	var payload queryRecordPayload
	if err := decodeJSON("create_query", bytes.NewReader(raw), &payload); err != nil {
		return nil, err
	}
	rec, err := payload.record("create_query", "")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDocumentQueries returns GET /api/documents/{id}/queries.
func (g *Gateway) ListDocumentQueries(ctx context.Context, documentID string) ([]driven.QueryRecord, error) {
	raw, err := g.get(ctx, "list_document_queries", documentPath(documentID)+"/queries", nil)
	if err != nil {
		return nil, err
	}
	var payloads []queryRecordPayload
	if err := decodeJSON("list_document_queries", bytes.NewReader(raw), &payloads); err != nil {
		return nil, err
	}
	return queryRecords("list_document_queries", payloads)
}

// ListQueries returns GET /api/queries.
func (g *Gateway) ListQueries(ctx context.Context) ([]driven.QueryRecord, error) {
	raw, err := g.get(ctx, "list_queries", "/api/queries", nil)
	if err != nil {
		return nil, err
	}
	var payloads []queryRecordPayload
	if err := decodeJSON("list_queries", bytes.NewReader(raw), &payloads); err != nil {
		return nil, err
	}
	return queryRecords("list_queries", payloads)
}

// Report returns GET /api/report?format=json|pdf.
func (g *Gateway) Report(ctx context.Context, format domain.ReportFormat) (*domain.Report, error) {
	raw, err := g.get(ctx, "report", "/api/report", url.Values{"format": {string(format)}})
	if err != nil {
		return nil, err
	}

	report := &domain.Report{Format: format}
	if format == domain.ReportPDF {
		if !bytes.HasPrefix(raw, []byte("%PDF-")) {
			return nil, &domain.DecodeError{Operation: "report", Reason: "response is not a PDF document"}
		}
		report.PDF = raw
		return report, nil
	}

	var payloads []reportRowPayload
	if err := decodeJSON("report", bytes.NewReader(raw), &payloads); err != nil {
		return nil, err
	}
	report.Rows = make([]domain.ReportRow, 0, len(payloads))
	for i, p := range payloads {
		row, err := p.row(i)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Health returns GET /api/health.
func (g *Gateway) Health(ctx context.Context) (*domain.HealthStatus, error) {
	raw, err := g.get(ctx, "health", "/api/health", nil)
	if err != nil {
		return nil, err
	}
	var payload healthPayload
	if err := decodeJSON("health", bytes.NewReader(raw), &payload); err != nil {
		return nil, err
	}
	if payload.Status == "" {
		return nil, &domain.DecodeError{Operation: "health", Field: "status", Reason: "missing"}
	}
	return &domain.HealthStatus{Status: payload.Status, Message: payload.Message}, nil
}

func (g *Gateway) get(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	req, err := g.client.NewRequest(ctx, http.MethodGet, path, query, http.NoBody)
	if err != nil {
		return nil, err
	}
	return g.send(operation, req)
}

func (g *Gateway) sendJSON(ctx context.Context, operation, method, path string, in any) ([]byte, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := g.client.NewRequest(ctx, method, path, nil, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return g.send(operation, req)
}

// send performs the request and reads the whole body.
func (g *Gateway) send(operation string, req *http.Request) ([]byte, error) {
	resp, err := g.client.Do(operation, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, normalizeTransport(req.Context(), err)
	}
	return raw, nil
}

func documentPath(id string) string {
	return "/api/documents/" + url.PathEscape(strings.TrimSpace(id))
}
