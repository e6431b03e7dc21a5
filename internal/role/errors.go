package role

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTarget indicates a chain handed to the writer without a target.
	ErrNoTarget = errors.New("role: chain has no target")

	// ErrOutputPath indicates an output path that is empty or not a single
	// whitespace-free token, which the simulator cannot read back.
	ErrOutputPath = errors.New("role: output path must be one non-empty token")

	// ErrSyntax indicates a role file that does not follow the block grammar.
	ErrSyntax = errors.New("role: syntax error")

	// ErrUnknownDetector indicates a detector name missing from the registry.
	ErrUnknownDetector = errors.New("role: unknown detector")

	// ErrParameterBounds indicates a detector parameter outside its valid range.
	ErrParameterBounds = errors.New("role: detector parameter out of bounds")
)

// ParseError locates a syntax error in a role file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
