package predictor

import "errors"

// Error definitions for the predictor package.
var (
	ErrLoadFailed = errors.New("model load failed")
)
