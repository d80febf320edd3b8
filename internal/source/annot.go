package source

// Annot pairs a payload with the span it was recognized at.
// Tokens and lexing errors are both annotations; values are built once and
// never mutated.
type Annot[T any] struct {
	Value T
	Span  Span
}

// NewAnnot creates an annotation of value at span.
func NewAnnot[T any](value T, span Span) Annot[T] {
	return Annot[T]{Value: value, Span: span}
}
