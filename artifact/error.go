package artifact

import "errors"

// Error definitions for the artifact package.
var (
	ErrModelNotFound = errors.New("model not found")
)
