package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrFileAccess         = errors.New("file access")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrUnrecognizedGender = errors.New("unrecognized gender code")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrSealed             = errors.New("index already populated")
)

// RecordError ties a failure to the input line that caused it.
type RecordError struct {
	Source string
	Line   int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
