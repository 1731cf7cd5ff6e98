package domain

// UploadStatus is the phase of a single upload attempt.
type UploadStatus string

const (
	UploadIdle       UploadStatus = "idle"
	UploadUploading  UploadStatus = "uploading"
	UploadProcessing UploadStatus = "processing"
	UploadSuccess    UploadStatus = "success"
	UploadError      UploadStatus = "error"
)

// Messages attached to upload phases.
const (
	MessageProcessing     = "Processing document..."
	MessageUploadComplete = "Upload complete!"
	MessageUploadFailed   = "Upload failed"
)

func (s UploadStatus) rank() int {
	switch s {
	case UploadUploading:
		return 1
	case UploadProcessing:
		return 2
	case UploadSuccess, UploadError:
		return 3
	}
	return 0
}

// Terminal reports whether the attempt has finished.
func (s UploadStatus) Terminal() bool {
	return s == UploadSuccess || s == UploadError
}

// CanAdvanceTo reports whether moving from s to next keeps the attempt
// monotonic. Staying in the same phase is allowed so percentages can grow.
func (s UploadStatus) CanAdvanceTo(next UploadStatus) bool {
	if s.Terminal() {
		return false
	}
	return next.rank() >= s.rank()
}

// UploadProgress is the observable state of an upload attempt.
type UploadProgress struct {
	Progress int          `json:"progress"`
	Status   UploadStatus `json:"status"`
	Message  string       `json:"message,omitempty"`
}

// IdleProgress is the state before any file is uploaded.
func IdleProgress() UploadProgress {
	return UploadProgress{Status: UploadIdle}
}
