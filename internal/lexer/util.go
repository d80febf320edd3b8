package lexer

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// isSpace matches the whitespace the lexer skips: ' ', '\n', '\t'.
// '\r' is not whitespace; FileSet.Load folds CRLF before lexing.
func isSpace(b byte) bool { return b == ' ' || b == '\n' || b == '\t' }
