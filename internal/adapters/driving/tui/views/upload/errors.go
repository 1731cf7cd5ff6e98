package upload

import "errors"

// ErrNoUploadService is returned when the upload service is not available.
var ErrNoUploadService = errors.New("upload service not available")
