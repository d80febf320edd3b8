package lexer

import (
	"fmt"

	"calclex/internal/token"
)

// subLexer consumes one token starting at pos and returns it with the offset
// right after it.
type subLexer func(input []byte, pos uint32) (token.Token, uint32, error)

var (
	lexPlus     = singleByte(token.Plus)
	lexMinus    = singleByte(token.Minus)
	lexAsterisk = singleByte(token.Asterisk)
	lexSlash    = singleByte(token.Slash)
	lexLParen   = singleByte(token.LParen)
	lexRParen   = singleByte(token.RParen)
)

// singleByte builds the sub-lexer of a kind spelled with one fixed byte.
func singleByte(k token.Kind) subLexer {
	want, ok := k.Lexeme()
	if !ok {
		panic(fmt.Sprintf("lexer: %v has no fixed lexeme", k))
	}
	return func(input []byte, pos uint32) (token.Token, uint32, error) {
		return expectByte(input, pos, want, k)
	}
}

// expectByte consumes exactly the byte want at pos.
//   - past the end: EOF with the empty span [pos, pos)
//   - another byte: InvalidChar with that byte and [pos, pos+1)
func expectByte(input []byte, pos uint32, want byte, k token.Kind) (token.Token, uint32, error) {
	c := cursorAt(input, pos)
	start := c.Mark()
	if c.EOF() {
		return token.Token{}, pos, newEOF(c.SpanFrom(start))
	}
	if !c.Eat(want) {
		got := c.Bump()
		return token.Token{}, pos, newInvalidChar(got, c.SpanFrom(start))
	}
	return token.New(k, c.SpanFrom(start)), c.Off, nil
}
