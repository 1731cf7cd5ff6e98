package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// QueryInput is the input schema for the query_policy tool.
type QueryInput struct {
	Question   string `json:"question" jsonschema:"the claim question, e.g. 46M, knee surgery, Pune, 3-month policy"`
	DocumentID string `json:"document_id" jsonschema:"ID of the uploaded policy document to ask about"`
}

// QueryOutput is the output schema for the query_policy tool.
type QueryOutput struct {
	Decision      domain.Decision `json:"decision"`
	ClaimAmount   *float64        `json:"claim_amount,omitempty"`
	Justification string          `json:"justification"`
	PolicyClauses []string        `json:"policy_clauses"`
	SavedID       string          `json:"saved_id,omitempty"`
	SaveError     string          `json:"save_error,omitempty"`
}

// UploadInput is the input schema for the upload_document tool.
type UploadInput struct {
	Path string `json:"path" jsonschema:"local path of the policy PDF to upload"`
}

// DocumentOutput describes one document.
type DocumentOutput struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Status   domain.DocumentStatus `json:"status"`
	FileSize int64                 `json:"file_size"`
	Summary  string                `json:"summary,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"only return documents whose name contains this text"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// StatsInput is the (empty) input schema for the claim_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the claim_stats tool.
type StatsOutput struct {
	TotalClaims    int     `json:"total_claims"`
	ApprovedClaims int     `json:"approved_claims"`
	RejectedClaims int     `json:"rejected_claims"`
	TotalAmount    float64 `json:"total_amount"`
	ApprovalRate   float64 `json:"approval_rate"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_policy",
		Description: "Ask whether a claim is covered by an uploaded insurance policy",
	}, s.handleQuery)

	if s.ports.Upload != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload_document",
			Description: "Upload a local policy PDF so questions can be asked about it",
		}, s.handleUpload)
	}

	if s.ports.Document != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List uploaded policy documents",
		}, s.handleListDocuments)
	}

	if s.ports.Insights != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "claim_stats",
			Description: "Aggregate statistics over every answered claim question",
		}, s.handleStats)
	}
}

// handleQuery handles the query_policy tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	outcome, err := s.ports.Query.Submit(ctx, input.Question, input.DocumentID, nil)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	r := outcome.Result
	output := QueryOutput{
		Decision:      r.Decision,
		ClaimAmount:   r.ClaimAmount,
		Justification: r.Justification,
		PolicyClauses: r.PolicyClauses,
	}
	if output.PolicyClauses == nil {
		output.PolicyClauses = []string{}
	}
	if outcome.Saved != nil {
		output.SavedID = outcome.Saved.ID
	}
	if outcome.SaveErr != nil {
		output.SaveError = outcome.SaveErr.Error()
	}
	return nil, output, nil
}

// handleUpload handles the upload_document tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	file, err := s.ports.Upload.Select(input.Path)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	doc, err := s.ports.Upload.Upload(ctx, *file, nil)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	if doc == nil {
		return nil, DocumentOutput{}, errors.New("upload returned no document")
	}
	return nil, toDocumentOutput(*doc), nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if _, err := s.ports.Document.Refresh(ctx); err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	docs := s.ports.Document.Filter(input.Filter)
	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(docs[i])
	}
	return nil, output, nil
}

// handleStats handles the claim_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	a, err := s.ports.Insights.Analytics(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{
		TotalClaims:    a.TotalClaims,
		ApprovedClaims: a.ApprovedClaims,
		RejectedClaims: a.RejectedClaims,
		TotalAmount:    a.TotalAmount,
		ApprovalRate:   a.ApprovalRate(),
	}, nil
}

func toDocumentOutput(d domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:       d.ID,
		Name:     d.Name,
		Status:   d.Status,
		FileSize: d.FileSize,
		Summary:  d.Summary,
	}
}
