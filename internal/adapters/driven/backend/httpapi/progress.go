package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// progressReader reports how much of a body of known size was read.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  int
	fn    driven.ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn driven.ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, last: -1, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil && p.total > 0 {
		p.read += int64(n)
		percent := int((p.read*100 + p.total/2) / p.total)
		percent = min(percent, 100)
		if percent != p.last {
			p.last = percent
			p.fn(percent)
		}
	}
	return n, err
}

// multipartBody encodes file as the "file" field of a multipart form.
// Files are capped by the drop-zone limit, so the body is built in memory
// and its length is known up front.
func multipartBody(file domain.UploadFile) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer src.Close()

	body := &bytes.Buffer{}
	if file.Size > 0 {
		body.Grow(int(file.Size) + 512)
	}
	w := multipart.NewWriter(body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
