package document

import "errors"

// Parse failures. Both abort the conversion before any output is written.
var (
	ErrUnterminatedFence = errors.New("unterminated code fence")
	ErrInvalidEncoding   = errors.New("invalid utf-8 encoding")
)
