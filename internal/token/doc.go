// Package token defines the lexical token kinds of arithmetic expressions.
// Invariants:
//   - A token is exactly one Kind; there are no composite tokens.
//   - Value.Num is meaningful only for Number and is zero otherwise.
//   - Token.Span covers exactly the bytes of the lexeme: one byte for
//     operators and parentheses, the whole digit run for numbers.
//   - A leading '-' is never part of a number; "-10" is Minus, Number(10).
package token
