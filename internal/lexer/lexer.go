package lexer

import (
	"fmt"
	"log/slog"
	"time"

	"fortio.org/safecast"

	"calclex/internal/source"
	"calclex/internal/token"
)

// Lex splits input into tokens in source order.
//
// The scan is all-or-nothing: the first invalid byte, premature end of input
// or out of range literal aborts it and Lex returns a nil slice with a
// *Error. Empty and whitespace-only input yield no tokens and no error.
// Inputs that do not fit 32-bit offsets fail with ErrInputTooLarge.
//
// Lex keeps no state between calls and is safe for concurrent use.
func Lex(input []byte) ([]token.Token, error) {
	if _, err := safecast.Conv[uint32](len(input)); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrInputTooLarge, len(input), err)
	}
	return scan(input)
}

// LexString is Lex for string input.
func LexString(input string) ([]token.Token, error) {
	return Lex([]byte(input))
}

func scan(input []byte) ([]token.Token, error) {
	var tokens []token.Token
	end := uint32(len(input)) // #nosec G115 -- checked by Lex
	pos := uint32(0)

	for pos < end {
		var lex subLexer
		switch b := input[pos]; b {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			lex = lexNumber
		case '+':
			lex = lexPlus
		case '-':
			lex = lexMinus
		case '*':
			lex = lexAsterisk
		case '/':
			lex = lexSlash
		case '(':
			lex = lexLParen
		case ')':
			lex = lexRParen
		case ' ', '\n', '\t':
			pos = skipSpaces(input, pos)
			continue
		default:
			return nil, newInvalidChar(b, source.Span{Start: pos, End: pos + 1})
		}

		tok, next, err := lex(input, pos)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		pos = next
	}
	return tokens, nil
}

// Lexer lexes one source file and reports its failure as a diagnostic.
type Lexer struct {
	file *source.File
	opts Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts,
	}
}

// Tokenize lexes the whole file. On failure the error is also forwarded to
// Options.Reporter.
func (lx *Lexer) Tokenize() ([]token.Token, error) {
	log := lx.opts.logger().With(slog.String("file", lx.file.Path))
	started := time.Now()

	tokens, err := Lex(lx.file.Content)
	if err != nil {
		log.Debug("lex failed",
			slog.Int("bytes", len(lx.file.Content)),
			slog.String("error", err.Error()),
		)
		Report(lx.opts.Reporter, lx.file.ID, err)
		return nil, err
	}

	log.Debug("lexed",
		slog.Int("bytes", len(lx.file.Content)),
		slog.Int("tokens", len(tokens)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return tokens, nil
}
