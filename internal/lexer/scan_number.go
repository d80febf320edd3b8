package lexer

import (
	"errors"
	"strconv"

	"calclex/internal/token"
)

// lexNumber consumes a maximal run of ASCII digits: no sign, no base prefix,
// leading zeros allowed. A run above math.MaxUint64 is a NumberOverflow error
// over the whole run; the value never wraps or saturates.
func lexNumber(input []byte, pos uint32) (token.Token, uint32, error) {
	c := cursorAt(input, pos)
	start := c.Mark()
	if c.EOF() {
		return token.Token{}, pos, newEOF(c.SpanFrom(start))
	}
	if !isDec(c.Peek()) {
		got := c.Bump()
		return token.Token{}, pos, newInvalidChar(got, c.SpanFrom(start))
	}

	for isDec(c.Peek()) {
		c.Bump()
	}

	sp := c.SpanFrom(start)
	n, err := strconv.ParseUint(string(input[sp.Start:sp.End]), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return token.Token{}, pos, newNumberOverflow(sp)
		}
		// только цифры, сюда не попадаем
		return token.Token{}, pos, newInvalidChar(input[sp.Start], sp)
	}
	return token.NewNumber(n, sp), c.Off, nil
}
