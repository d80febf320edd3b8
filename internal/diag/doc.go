// Package diag defines the diagnostic model shared by the lexer, the driver
// and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1001.
//   - Message – human oriented text; keep it short and actionable.
//   - File and Primary span – where the problem is.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Producers report through a Reporter so they stay decoupled from storage.
// BagReporter collects into a bounded Bag, which supports sorting and merging.
//
// # Scope
//
// Package diag does not perform formatting or IO beyond the stable one-line
// form in golden.go. Rendering with source context lives in internal/diagfmt.
package diag
