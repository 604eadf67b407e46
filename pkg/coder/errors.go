package coder

import (
	"errors"
	"fmt"
)

var (
	ErrKeyRequired = errors.New("encryption key is required")
	ErrNoFile      = errors.New("no file selected")
	ErrNotText     = errors.New("decoded data is not valid UTF-8 text")
)

// Operation names used in OperationError.
const (
	OpEncoding  = "encoding"
	OpDecoding  = "decoding"
	OpFileRead  = "file read"
	OpFileWrite = "file write"
)

// OperationError reports which user-facing operation failed and why.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string { return fmt.Sprintf("%s failed: %v", e.Op, e.Err) }
func (e *OperationError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}
