package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidResponse indicates the backend answered with a body that
	// does not match the expected schema.
	ErrInvalidResponse = errors.New("invalid backend response")

	// ErrNoDocumentData indicates an upload succeeded at the HTTP level
	// but the backend did not describe the stored document.
	ErrNoDocumentData = errors.New("no document data received from backend")
)

// Validation errors are raised before any network call is made.
var (
	ErrEmptyQuery         = &ValidationError{Field: "query_text", Message: "Please enter a question"}
	ErrNoDocumentSelected = &ValidationError{Field: "document_id", Message: "No document selected. Please upload a document first."}
	ErrNotPDF             = &ValidationError{Field: "file", Message: "Please upload a PDF file"}
	ErrFileTooLarge       = &ValidationError{Field: "file", Message: "File is larger than the upload limit"}
)

// ValidationError is a client-side input failure. It matches ErrInvalidInput
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ErrorKind classifies a normalised HTTP client failure.
type ErrorKind string

const (
	// KindServerMessage means the backend answered with an error status.
	KindServerMessage ErrorKind = "server_message"
	// KindTimeout means the client-side deadline elapsed.
	KindTimeout ErrorKind = "timeout"
	// KindNoResponse means the request was sent but nothing came back.
	KindNoResponse ErrorKind = "no_response"
	// KindUnexpected covers every other failure.
	KindUnexpected ErrorKind = "unexpected"
)

// User-facing messages for the fixed error kinds.
const (
	MessageGenericServer = "An error occurred"
	MessageTimeout       = "Request timed out. The server may still be processing the document. Please try again in a moment."
	MessageNoResponse    = "No response from server. Please check your connection."
	MessageUnexpected    = "An unexpected error occurred"
)

// ClientError is the single normalised error shape produced by the HTTP
// client. Message is always human readable.
type ClientError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is lets a 404 from the backend match ErrNotFound.
func (e *ClientError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindServerMessage && e.StatusCode == 404
}

// IsKind reports whether err is a ClientError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == kind
}

// DecodeError reports a backend payload that violates its schema.
type DecodeError struct {
	Operation string
	Field     string
	Reason    string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s response: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("decode %s response: field %q: %s", e.Operation, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidResponse.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidResponse
}
