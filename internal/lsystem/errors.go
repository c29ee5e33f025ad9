package lsystem

import (
	"errors"
	"fmt"
)

// Domain errors for grammar and interpretation operations.
var (
	// ErrInvalidSymbol indicates a malformed symbol or function definition.
	ErrInvalidSymbol = errors.New("lsystem: invalid symbol definition")

	// ErrUnknownSymbol indicates a reference to a symbol outside the alphabet.
	ErrUnknownSymbol = errors.New("lsystem: unknown symbol")

	// ErrSequenceTooLarge indicates the rewritten sequence grew past its cap.
	ErrSequenceTooLarge = errors.New("lsystem: sequence too large")

	// ErrStackUnderflow indicates a pop with an empty pose stack.
	ErrStackUnderflow = errors.New("lsystem: pose stack underflow")

	// ErrAborted indicates a render was canceled before it finished.
	ErrAborted = errors.New("lsystem: render aborted")
)

// SymbolError wraps a grammar error with the symbol it concerns.
type SymbolError struct {
	Symbol Symbol
	Where  string
	Err    error
}

func (e *SymbolError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("%v: %q", e.Err, string(e.Symbol))
	}
	return fmt.Sprintf("%v: %q in %s", e.Err, string(e.Symbol), e.Where)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}

// SequenceTooLargeError reports the cap that was exceeded and the rewriting
// round that exceeded it.
type SequenceTooLargeError struct {
	Limit     int
	Iteration int
}

func (e *SequenceTooLargeError) Error() string {
	return fmt.Sprintf("%v: exceeded maximum of %d symbols during iteration %d",
		ErrSequenceTooLarge, e.Limit, e.Iteration)
}

func (e *SequenceTooLargeError) Unwrap() error {
	return ErrSequenceTooLarge
}

// InterpretError wraps a failure at a position of a sequence during the
// simulate or render pass.
type InterpretError struct {
	Pass   string
	Index  int
	Symbol Symbol
	Err    error
	Cause  error
}

func (e *InterpretError) Error() string {
	msg := fmt.Sprintf("%s: symbol %d (%q): %v", e.Pass, e.Index, string(e.Symbol), e.Err)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InterpretError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
