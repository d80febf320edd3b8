package lexer

// skipSpaces consumes a maximal, possibly empty run of ' ', '\n' and '\t'
// and returns the offset after it. It never fails and produces no token.
func skipSpaces(input []byte, pos uint32) uint32 {
	c := cursorAt(input, pos)
	for isSpace(c.Peek()) {
		c.Bump()
	}
	return c.Off
}
