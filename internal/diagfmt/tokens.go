package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"calclex/internal/source"
	"calclex/internal/token"
)

// TokenOutput is the serialized form of one token shared by the JSON and
// msgpack outputs.
type TokenOutput struct {
	Kind  string  `json:"kind" msgpack:"kind"`
	Value *uint64 `json:"value,omitempty" msgpack:"value,omitempty"`
	Text  string  `json:"text" msgpack:"text"`
	Start uint32  `json:"start" msgpack:"start"`
	End   uint32  `json:"end" msgpack:"end"`
	Line  uint32  `json:"line" msgpack:"line"`
	Col   uint32  `json:"col" msgpack:"col"`
}

// BuildTokenOutput converts tokens of fileID into their serialized form.
func BuildTokenOutput(tokens []token.Token, fs *source.FileSet, fileID source.FileID) []TokenOutput {
	content := fs.Get(fileID).Content
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fs.Resolve(fileID, tok.Span)
		item := TokenOutput{
			Kind:  tok.Value.Kind.String(),
			Text:  token.Text(tok, content),
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  start.Line,
			Col:   start.Col,
		}
		if tok.Value.Kind == token.Number {
			n := tok.Value.Num
			item.Value = &n
		}
		out = append(out, item)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, fileID source.FileID) error {
	content := fs.Get(fileID).Content
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(fileID, tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s %-8q at %d:%d-%d:%d\n",
			i+1, tok.Value.String(), token.Text(tok, content),
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col,
		); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet, fileID source.FileID) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokenOutput(tokens, fs, fileID))
}

// FormatTokensMsgpack пишет токены одним msgpack-массивом.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, fs *source.FileSet, fileID source.FileID) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildTokenOutput(tokens, fs, fileID))
}

// FileTokensOutput groups the tokens of one file in directory mode.
type FileTokensOutput struct {
	File   string        `json:"file" msgpack:"file"`
	Tokens []TokenOutput `json:"tokens" msgpack:"tokens"`
}

// FormatFilesJSON выводит токены нескольких файлов одним JSON-массивом.
func FormatFilesJSON(w io.Writer, files []FileTokensOutput) error {
	if files == nil {
		files = []FileTokensOutput{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

// FormatFilesMsgpack is FormatFilesJSON for msgpack.
func FormatFilesMsgpack(w io.Writer, files []FileTokensOutput) error {
	if files == nil {
		files = []FileTokensOutput{}
	}
	return msgpack.NewEncoder(w).Encode(files)
}
