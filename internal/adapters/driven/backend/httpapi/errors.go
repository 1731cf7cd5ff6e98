package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// normalizeTransport classifies a failure to get any response.
func normalizeTransport(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &domain.ClientError{Kind: domain.KindTimeout, Message: domain.MessageTimeout, Err: err}
	}
	if isNoResponse(err) {
		return &domain.ClientError{Kind: domain.KindNoResponse, Message: domain.MessageNoResponse, Err: err}
	}
	return unexpected(err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNoResponse(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET)
}

// normalizeStatus turns an error response into a server_message error.
func normalizeStatus(status int, body []byte) *domain.ClientError {
	message := ""
	var payload errorPayload
	if json.Unmarshal(body, &payload) == nil {
		message = payload.text()
	}
	if message == "" {
		message = domain.MessageGenericServer
	}
	return &domain.ClientError{Kind: domain.KindServerMessage, StatusCode: status, Message: message}
}

func unexpected(err error) *domain.ClientError {
	message := err.Error()
	if message == "" {
		message = domain.MessageUnexpected
	}
	return &domain.ClientError{Kind: domain.KindUnexpected, Message: message, Err: err}
}

// outcomeOf labels a request result for metrics.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var ce *domain.ClientError
	if errors.As(err, &ce) {
		return string(ce.Kind)
	}
	var de *domain.DecodeError
	if errors.As(err, &de) {
		return "decode_error"
	}
	return string(domain.KindUnexpected)
}
