package internalerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecordErrorMessage(t *testing.T) {
	err := &RecordError{
		Source: "reviews.csv",
		Line:   7,
		Err:    fmt.Errorf("%w: rating %q is not a number", ErrMalformedRecord, "abc"),
	}

	want := `reviews.csv:7: malformed record: rating "abc" is not a number`
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestRecordErrorWithoutSource(t *testing.T) {
	err := &RecordError{Line: 3, Err: ErrMalformedRecord}
	if err.Error() != "line 3: malformed record" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestRecordErrorUnwrap(t *testing.T) {
	var err error = &RecordError{Line: 2, Err: fmt.Errorf("wrap: %w", ErrUnrecognizedGender)}
	wrapped := fmt.Errorf("ingest: %w", err)

	if !errors.Is(wrapped, ErrUnrecognizedGender) {
		t.Error("Wrapped record error should match its sentinel")
	}

	var recErr *RecordError
	if !errors.As(wrapped, &recErr) {
		t.Fatal("errors.As should find the RecordError")
	}
	if recErr.Line != 2 {
		t.Errorf("Expected line 2, got %d", recErr.Line)
	}
}
