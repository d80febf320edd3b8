package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"calclex/internal/diag"
	"calclex/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("1 +\n2 $ 3"))

	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "invalid character '$'",
		File:     fileID,
		Primary:  source.Span{Start: 6, End: 7},
		Notes:    []diag.Note{{Span: source.Span{Start: 0, End: 1}, Msg: "expression starts here"}},
	}
	bag := newBag(t, d, d)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 1}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Max must truncate output, got %+v", output)
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" || got.Code != "LEX1001" {
		t.Errorf("unexpected header %+v", got)
	}
	loc := got.Location
	if loc.File != "test.calc" || loc.StartByte != 6 || loc.StartLine != 2 || loc.StartCol != 3 || loc.EndCol != 4 {
		t.Errorf("unexpected location %+v", loc)
	}
	if len(got.Notes) != 1 || got.Notes[0].Location.StartCol != 1 {
		t.Errorf("unexpected notes %+v", got.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("x.calc", []byte("#"))
	bag := newBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		File:     fileID,
		Primary:  source.Span{Start: 0, End: 1},
		Notes:    []diag.Note{{Msg: "hidden"}},
	})

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	loc := output.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.EndByte != 1 {
		t.Errorf("positions must be omitted, got %+v", loc)
	}
	if output.Diagnostics[0].Notes != nil {
		t.Errorf("notes must be omitted")
	}
}
