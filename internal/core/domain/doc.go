// Package domain defines the core business entities of the claims client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a policy document uploaded to the claims backend
//   - QueryResult: the verdict the backend returned for a question
//   - UploadProgress: the state of a single upload attempt
//   - ClientError / DecodeError: the normalised failure shapes
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
