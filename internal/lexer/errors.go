package lexer

import (
	"errors"
	"fmt"

	"calclex/internal/source"
)

// ErrInputTooLarge is returned when the input does not fit 32-bit spans.
var ErrInputTooLarge = errors.New("input too large")

// ErrorKind classifies a lexing failure.
type ErrorKind uint8

const (
	// InvalidChar: a byte no token starts with, or a byte that differs from
	// the one a sub-lexer expected. ErrorValue.Char holds it.
	InvalidChar ErrorKind = iota
	// EOF: input ended while a sub-lexer expected one more byte.
	EOF
	// NumberOverflow: a digit run whose value does not fit uint64.
	NumberOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidChar:
		return "InvalidChar"
	case EOF:
		return "Eof"
	case NumberOverflow:
		return "NumberOverflow"
	default:
		return "ErrorKind(?)"
	}
}

// ErrorValue is the payload of a lexing error.
type ErrorValue struct {
	Kind ErrorKind
	Char byte // only for InvalidChar
}

// Error is a positioned lexing failure.
type Error struct {
	source.Annot[ErrorValue]
}

func newInvalidChar(c byte, sp source.Span) *Error {
	return &Error{source.NewAnnot(ErrorValue{Kind: InvalidChar, Char: c}, sp)}
}

func newEOF(sp source.Span) *Error {
	return &Error{source.NewAnnot(ErrorValue{Kind: EOF}, sp)}
}

func newNumberOverflow(sp source.Span) *Error {
	return &Error{source.NewAnnot(ErrorValue{Kind: NumberOverflow}, sp)}
}

// Message describes the failure without its position.
func (e *Error) Message() string {
	switch e.Value.Kind {
	case InvalidChar:
		return "invalid character " + quoteByte(e.Value.Char)
	case EOF:
		return "unexpected end of input"
	case NumberOverflow:
		return "integer literal out of range for uint64"
	default:
		return "lexing failed"
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message(), e.Span)
}

func quoteByte(c byte) string {
	if c < 0x80 {
		return fmt.Sprintf("%q", rune(c))
	}
	return fmt.Sprintf(`'\x%02x'`, c)
}
