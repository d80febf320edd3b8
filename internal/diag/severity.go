package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

// A failed lex is the only thing calclex diagnoses, so errors are the only level.
const SevError Severity = iota + 1

func (s Severity) String() string {
	if s == SevError {
		return "ERROR"
	}
	return "UNKNOWN"
}
