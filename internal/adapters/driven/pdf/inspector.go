// Package pdf validates local files before they are uploaded: the file
// must be a readable PDF no larger than the configured limit.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	pdfreader "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.FileInspector = (*Inspector)(nil)

const pdfMIME = "application/pdf"

// Inspector checks files by content, not by extension.
type Inspector struct {
	maxBytes int64
}

// NewInspector creates an inspector. A non-positive limit uses the default.
func NewInspector(maxBytes int64) *Inspector {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxUploadBytes
	}
	return &Inspector{maxBytes: maxBytes}
}

// MaxBytes returns the upload limit.
func (i *Inspector) MaxBytes() int64 {
	return i.maxBytes
}

// Inspect validates the file at path and describes it for upload.
func (i *Inspector) Inspect(path string) (*domain.UploadFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, domain.ErrNotPDF
	}
	if info.Size() > i.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	mime, err := mimetype.DetectFile(abs)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !mime.Is(pdfMIME) {
		return nil, domain.ErrNotPDF
	}

	pages, err := countPages(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotPDF, err)
	}

	return &domain.UploadFile{
		Name:        filepath.Base(abs),
		Path:        abs,
		Size:        info.Size(),
		ContentType: pdfMIME,
		Pages:       pages,
	}, nil
}

// countPages parses the document structure. The parser panics on some
// malformed inputs, so panics are turned into errors.
func countPages(path string) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unreadable PDF: %v", r)
		}
	}()

	f, r, err := pdfreader.Open(path)
	if err != nil {
		return 0, fmt.Errorf("unreadable PDF: %w", err)
	}
	defer f.Close()

	pages = r.NumPage()
	if pages == 0 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return pages, nil
}
