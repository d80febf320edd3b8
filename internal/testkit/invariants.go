package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"calclex/internal/token"
)

// CheckTokenSpans runs the span invariants of a successful lex:
// 1) every span is non-empty and within input bounds
// 2) spans are strictly increasing and never overlap
// 3) the bytes between and around spans are whitespace only
// 4) operator and parenthesis spans are exactly one byte
func CheckTokenSpans(input []byte, tokens []token.Token) error {
	lenInput, err := safecast.Conv[uint32](len(input))
	if err != nil {
		return fmt.Errorf("len input overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%v): empty span %v", i, tok.Value, sp)
		}
		if sp.End > lenInput {
			return fmt.Errorf("token %d (%v): span %v beyond input of %d bytes", i, tok.Value, sp, lenInput)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%v): span %v overlaps previous token ending at %d", i, tok.Value, sp, prevEnd)
		}
		if err := checkGap(input, prevEnd, sp.Start); err != nil {
			return fmt.Errorf("before token %d: %w", i, err)
		}
		if tok.Value.Kind != token.Number && sp.Len() != 1 {
			return fmt.Errorf("token %d (%v): single-byte kind spans %d bytes", i, tok.Value, sp.Len())
		}
		prevEnd = sp.End
	}
	if err := checkGap(input, prevEnd, lenInput); err != nil {
		return fmt.Errorf("after last token: %w", err)
	}
	return nil
}

func checkGap(input []byte, from, to uint32) error {
	for off := from; off < to; off++ {
		switch input[off] {
		case ' ', '\n', '\t':
		default:
			return fmt.Errorf("uncovered non-whitespace byte %q at %d", input[off], off)
		}
	}
	return nil
}
