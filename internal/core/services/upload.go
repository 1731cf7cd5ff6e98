package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claims-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

var uploadLog = logger.For("upload")

// UploadService uploads policy documents and tracks the progress of the
// current attempt.
type UploadService struct {
	backend          driven.ClaimsBackend
	store            driven.SessionStore
	inspector        driven.FileInspector
	progressInterval time.Duration

	mu       sync.RWMutex
	progress domain.UploadProgress
}

// NewUploadService creates a new upload service.
func NewUploadService(
	backend driven.ClaimsBackend,
	store driven.SessionStore,
	inspector driven.FileInspector,
) *UploadService {
	return &UploadService{
		backend:          backend,
		store:            store,
		inspector:        inspector,
		progressInterval: domain.DefaultProgressInterval,
		progress:         domain.IdleProgress(),
	}
}

// WithProgressInterval sets the minimum gap between observer
// notifications while bytes are being sent. Zero notifies on every change.
func (s *UploadService) WithProgressInterval(d time.Duration) *UploadService {
	s.progressInterval = d
	return s
}

// Select inspects a local file and starts a fresh attempt.
func (s *UploadService) Select(path string) (*domain.UploadFile, error) {
	s.Reset()
	if s.inspector == nil {
		return nil, domain.ErrNotImplemented
	}
	file, err := s.inspector.Inspect(path)
	if err != nil {
		return nil, err
	}
	uploadLog.Debug("selected %s (%d bytes, %d pages)", file.Name, file.Size, file.Pages)
	return file, nil
}

// Upload sends the file, adds the resulting document to the session and
// makes it the current document.
func (s *UploadService) Upload(
	ctx context.Context,
	file domain.UploadFile,
	observe driving.ProgressObserver,
) (*domain.Document, error) {
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}

	s.start(observe)

	throttle := &rate.Sometimes{Interval: s.progressInterval}
	receipt, err := s.backend.UploadFile(ctx, file, func(percent int) {
		p, changed := s.transfer(percent)
		if !changed || observe == nil {
			return
		}
		if s.progressInterval <= 0 || percent >= 100 {
			observe(p)
			return
		}
		throttle.Do(func() { observe(p) })
	})
	if err != nil {
		return nil, s.fail(err, observe)
	}

	s.advance(domain.UploadProgress{
		Progress: 100,
		Status:   domain.UploadProcessing,
		Message:  domain.MessageProcessing,
	}, observe)

	if receipt.Document == nil {
		return nil, s.fail(domain.ErrNoDocumentData, observe)
	}
	doc := toDocument(*receipt.Document)

	if err := ctx.Err(); err != nil {
		return nil, s.fail(err, observe)
	}
	if s.store != nil {
		s.store.AddDocument(doc)
		s.store.SetCurrentDocument(&doc)
	}

	message := receipt.Message
	if message == "" {
		message = domain.MessageUploadComplete
	}
	s.advance(domain.UploadProgress{Progress: 100, Status: domain.UploadSuccess, Message: message}, observe)
	uploadLog.Info("uploaded %s as document %s", file.Name, doc.ID)
	return &doc, nil
}

// Progress returns the state of the current attempt.
func (s *UploadService) Progress() domain.UploadProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// Reset returns progress to idle.
func (s *UploadService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = domain.IdleProgress()
}

func (s *UploadService) start(observe driving.ProgressObserver) {
	p := domain.UploadProgress{Status: domain.UploadUploading}
	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
	if observe != nil {
		observe(p)
	}
}

// transfer records a transfer percentage. It reports false when the
// value did not move forward.
func (s *UploadService) transfer(percent int) (domain.UploadProgress, bool) {
	percent = min(max(percent, 0), 100)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress.Status != domain.UploadUploading || percent <= s.progress.Progress {
		return s.progress, false
	}
	s.progress.Progress = percent
	return s.progress, true
}

func (s *UploadService) advance(next domain.UploadProgress, observe driving.ProgressObserver) {
	s.mu.Lock()
	if !s.progress.Status.CanAdvanceTo(next.Status) {
		s.mu.Unlock()
		return
	}
	s.progress = next
	s.mu.Unlock()
	if observe != nil {
		observe(next)
	}
}

func (s *UploadService) fail(err error, observe driving.ProgressObserver) error {
	message := err.Error()
	if message == "" {
		message = domain.MessageUploadFailed
	}
	s.advance(domain.UploadProgress{Status: domain.UploadError, Message: message}, observe)
	uploadLog.Warn("upload failed: %v", err)
	return err
}
