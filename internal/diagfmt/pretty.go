package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"calclex/internal/diag"
	"calclex/internal/source"
)

type palette struct {
	err, note    *color.Color
	gutter, code *color.Color
	caret        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		code:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.note, p.gutter, p.caret, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.note
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil || fs == nil {
		return nil
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if int(d.File) >= fs.Len() {
			continue
		}
		if err := prettyOne(w, &d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	file := fs.Get(d.File)
	path := file.DisplayPath(fs.BaseDir())
	start, _ := fs.Resolve(d.File, d.Primary)

	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	); err != nil {
		return err
	}
	if err := snippet(w, file, fs, d.Primary, opts.Context, p); err != nil {
		return err
	}

	if !opts.ShowNotes {
		return nil
	}
	for _, note := range d.Notes {
		nstart, _ := fs.Resolve(d.File, note.Span)
		if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			p.note.Sprint("note:"), path, nstart.Line, nstart.Col, note.Msg); err != nil {
			return err
		}
		if err := snippet(w, file, fs, note.Span, 0, p); err != nil {
			return err
		}
	}
	return nil
}

// snippet печатает строки исходника со спаном и подчёркивание под первой строкой спана.
func snippet(w io.Writer, file *source.File, fs *source.FileSet, sp source.Span, context int, p palette) error {
	start, end := fs.Resolve(file.ID, sp)
	first := start.Line
	if context > 0 {
		first = start.Line - min(start.Line-1, uint32(context)) // #nosec G115 -- context > 0
	}
	width := len(fmt.Sprint(start.Line))
	pad := strings.Repeat(" ", width)

	for ln := first; ln <= start.Line; ln++ {
		if _, err := fmt.Fprintf(w, " %s %s\n",
			p.gutter.Sprintf("%*d |", width, ln), file.GetLine(ln)); err != nil {
			return err
		}
	}

	line := file.GetLine(start.Line)
	lineLen := uint32(len(line)) // #nosec G115 -- line is a slice of uint32-bounded content
	from := min(start.Col-1, lineLen)
	// многострочный спан подчёркиваем до конца первой строки
	to := lineLen
	if end.Line == start.Line {
		to = max(from, min(end.Col-1, lineLen))
	}

	_, err := fmt.Fprintf(w, " %s %s%s\n",
		p.gutter.Sprint(pad+" |"),
		underlinePrefix(line[:from]),
		p.caret.Sprint(underline(line[from:to])),
	)
	return err
}

// underlinePrefix заменяет текст до спана пробелами той же ширины; табы сохраняются.
func underlinePrefix(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(s string) string {
	w := runewidth.StringWidth(s)
	if w <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", w-1)
}
