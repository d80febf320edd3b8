package lexer

import (
	"errors"
	"math"
	"strconv"

	"calclex/internal/diag"
	"calclex/internal/source"
)

const invalidCharHint = "expected a digit, + - * / ( ) or whitespace"

// Report converts a Lex failure into a diagnostic for file and sends it to r.
func Report(r diag.Reporter, file source.FileID, err error) {
	if r == nil || err == nil {
		return
	}
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		diag.ReportError(r, diag.LexInputTooLarge, file, source.Span{}, err.Error())
		return
	}
	diag.ReportError(r, codeFor(lexErr.Value.Kind), file, lexErr.Span, lexErr.Message(), notesFor(lexErr)...)
}

func codeFor(k ErrorKind) diag.Code {
	switch k {
	case InvalidChar:
		return diag.LexUnknownChar
	case EOF:
		return diag.LexUnexpectedEOF
	case NumberOverflow:
		return diag.LexNumberOverflow
	default:
		return diag.UnknownCode
	}
}

func notesFor(e *Error) []diag.Note {
	switch e.Value.Kind {
	case InvalidChar:
		return []diag.Note{{Span: e.Span, Msg: invalidCharHint}}
	case NumberOverflow:
		return []diag.Note{{Span: e.Span, Msg: "maximum is " + strconv.FormatUint(math.MaxUint64, 10)}}
	default:
		return nil
	}
}
