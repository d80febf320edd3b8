package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"calclex/internal/diag"
	"calclex/internal/lexer"
	"calclex/internal/source"
)

func newBag(t *testing.T, ds ...diag.Diagnostic) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(10)
	for _, d := range ds {
		if !bag.Add(d) {
			t.Fatalf("bag rejected %+v", d)
		}
	}
	return bag
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("<expr>", []byte("1 & 2"))
	bag := newBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "invalid character '&'",
		File:     fileID,
		Primary:  source.Span{Start: 2, End: 3},
	})

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "<expr>:1:3: ERROR LEX1001: invalid character '&'\n" +
		" 1 | 1 & 2\n" +
		"   |   ^\n"
	if buf.String() != want {
		t.Errorf("Pretty output mismatch\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestPrettyWideSpanAndContext(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("big.calc", []byte("1 +\n2 +\n\t99999999999999999999"))
	bag := newBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexNumberOverflow,
		Message:  "integer literal out of range for uint64",
		File:     fileID,
		Primary:  source.Span{Start: 9, End: 29},
	})

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "big.calc:3:2: ERROR LEX1004: integer literal out of range for uint64\n" +
		" 2 | 2 +\n" +
		" 3 | \t99999999999999999999\n" +
		"   | \t^" + strings.Repeat("~", 19) + "\n"
	if buf.String() != want {
		t.Errorf("Pretty output mismatch\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestPrettyEmptySpanAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("<stdin>", []byte("(1 +"))
	bag := newBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnexpectedEOF,
		Message:  "unexpected end of input",
		File:     fileID,
		Primary:  source.Span{Start: 4, End: 4},
		Notes:    []diag.Note{{Span: source.Span{Start: 0, End: 1}, Msg: "group opened here"}},
	})

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "<stdin>:1:5: ERROR LEX1006: unexpected end of input\n" +
		" 1 | (1 +\n" +
		"   |     ^\n" +
		"  note: <stdin>:1:1: group opened here\n" +
		" 1 | (1 +\n" +
		"   | ^\n"
	if buf.String() != want {
		t.Errorf("Pretty output mismatch\n got: %q\nwant: %q", buf.String(), want)
	}

	buf.Reset()
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes must be hidden without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyLexerNotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "(1 + x)",
			want: "<expr>:1:6: ERROR LEX1001: invalid character 'x'\n" +
				" 1 | (1 + x)\n" +
				"   |      ^\n" +
				"  note: <expr>:1:6: expected a digit, + - * / ( ) or whitespace\n" +
				" 1 | (1 + x)\n" +
				"   |      ^\n",
		},
		{
			input: "1 + 18446744073709551616",
			want: "<expr>:1:5: ERROR LEX1004: integer literal out of range for uint64\n" +
				" 1 | 1 + 18446744073709551616\n" +
				"   |     ^" + strings.Repeat("~", 19) + "\n" +
				"  note: <expr>:1:5: maximum is 18446744073709551615\n" +
				" 1 | 1 + 18446744073709551616\n" +
				"   |     ^" + strings.Repeat("~", 19) + "\n",
		},
	}
	for _, tt := range tests {
		fs := source.NewFileSet()
		fileID := fs.AddVirtual("<expr>", []byte(tt.input))
		_, err := lexer.Lex(fs.Get(fileID).Content)
		if err == nil {
			t.Fatalf("Lex(%q) succeeded", tt.input)
		}
		bag := diag.NewBag(1)
		lexer.Report(diag.BagReporter{Bag: bag}, fileID, err)

		var buf bytes.Buffer
		if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
			t.Fatalf("Pretty: %v", err)
		}
		if buf.String() != tt.want {
			t.Errorf("Pretty(%q) mismatch\n got: %q\nwant: %q", tt.input, buf.String(), tt.want)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("<expr>", []byte("@"))
	bag := newBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "invalid character '@'",
		File:     fileID,
		Primary:  source.Span{Start: 0, End: 1},
	})

	var colored, plain bytes.Buffer
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if err := Pretty(&plain, bag, fs, PrettyOpts{Color: false}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in colored output: %q", colored.String())
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes in plain output: %q", plain.String())
	}
}

func TestPrettySkipsUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := newBag(t, diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, File: 3})

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
