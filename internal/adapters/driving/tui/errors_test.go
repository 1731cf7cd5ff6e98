package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingUploadService,
		ErrMissingQueryService,
		ErrMissingDocumentService,
	}

	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingUploadService.Error(), "upload service")
	assert.Contains(t, ErrMissingQueryService.Error(), "query service")
	assert.Contains(t, ErrMissingDocumentService.Error(), "document service")
}
