package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

func TestProgressPrinter_LinePerStatus(t *testing.T) {
	buf := new(bytes.Buffer)
	p := newProgressPrinter(buf)

	p.observe(domain.UploadProgress{Status: domain.UploadUploading, Progress: 10})
	p.observe(domain.UploadProgress{Status: domain.UploadUploading, Progress: 60})
	p.observe(domain.UploadProgress{Status: domain.UploadProcessing, Progress: 90, Message: domain.MessageProcessing})
	p.observe(domain.UploadProgress{Status: domain.UploadSuccess, Progress: 100, Message: domain.MessageUploadComplete})
	p.finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"uploading (10%)",
		domain.MessageProcessing + " (90%)",
		domain.MessageUploadComplete + " (100%)",
	}, lines)
}

func TestProgressPrinter_NotTerminal(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "["+strings.Repeat(" ", progressBarWidth)+"]", progressBar(-5))
	assert.Equal(t, "["+strings.Repeat("=", 15)+strings.Repeat(" ", 15)+"]", progressBar(50))
	assert.Equal(t, "["+strings.Repeat("=", progressBarWidth)+"]", progressBar(140))
}
