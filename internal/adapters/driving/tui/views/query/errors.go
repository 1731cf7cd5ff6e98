package query

import "errors"

// ErrNoQueryService is returned when the query service is not available.
var ErrNoQueryService = errors.New("query service not available")
