package diag

import "calclex/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(code Code, sev Severity, file source.FileID, primary source.Span, msg string, notes []Note)
}

// ReportError forwards an error-level diagnostic to r; a nil r is ignored.
func ReportError(r Reporter, code Code, file source.FileID, primary source.Span, msg string, notes ...Note) {
	if r == nil {
		return
	}
	r.Report(code, SevError, file, primary, msg, notes)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, file source.FileID, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		File: file, Primary: primary, Notes: notes,
	})
}
