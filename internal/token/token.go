package token

import (
	"strconv"

	"calclex/internal/source"
)

// Value is the payload of a token: its kind and, for Number, the parsed value.
type Value struct {
	Kind Kind
	Num  uint64
}

func (v Value) String() string {
	if v.Kind == Number {
		return "Number(" + strconv.FormatUint(v.Num, 10) + ")"
	}
	return v.Kind.String()
}

// Token is a Value annotated with its source span.
type Token = source.Annot[Value]

// New creates a token of a payload-free kind.
func New(k Kind, sp source.Span) Token {
	return source.NewAnnot(Value{Kind: k}, sp)
}

// NewNumber creates a Number token.
func NewNumber(n uint64, sp source.Span) Token {
	return source.NewAnnot(Value{Kind: Number, Num: n}, sp)
}

// Text returns the source text a token was lexed from.
func Text(tok Token, content []byte) string {
	return string(content[tok.Span.Start:tok.Span.End])
}
