package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Number represents an unsigned integer literal: [0-9][0-9]*.
	Number Kind = iota
	// Plus represents the '+' operator token.
	Plus // +
	// Minus represents the '-' operator token.
	Minus // -
	// Asterisk represents the '*' operator token.
	Asterisk // *
	// Slash represents the '/' operator token.
	Slash // /
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
)

var kindNames = [...]string{
	Number:   "Number",
	Plus:     "Plus",
	Minus:    "Minus",
	Asterisk: "Asterisk",
	Slash:    "Slash",
	LParen:   "LParen",
	RParen:   "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Lexeme returns the fixed source byte of single-byte kinds.
// ok is false for Number, whose text varies.
func (k Kind) Lexeme() (b byte, ok bool) {
	switch k {
	case Plus:
		return '+', true
	case Minus:
		return '-', true
	case Asterisk:
		return '*', true
	case Slash:
		return '/', true
	case LParen:
		return '(', true
	case RParen:
		return ')', true
	default:
		return 0, false
	}
}

// IsOperator reports whether the kind is one of the four arithmetic operators.
func (k Kind) IsOperator() bool {
	switch k {
	case Plus, Minus, Asterisk, Slash:
		return true
	default:
		return false
	}
}

// IsParen reports whether the kind is a parenthesis.
func (k Kind) IsParen() bool { return k == LParen || k == RParen }
