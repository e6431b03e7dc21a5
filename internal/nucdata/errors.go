package nucdata

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow indicates a mass table row with missing or non-numeric fields.
	ErrMalformedRow = errors.New("nucdata: malformed mass table row")

	// ErrEmptyTable indicates a mass table source with no data rows.
	ErrEmptyTable = errors.New("nucdata: mass table has no entries")
)

// LineError wraps a load error with the offending source line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
