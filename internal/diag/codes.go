package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexUnknownChar    Code = 1001
	LexNumberOverflow Code = 1004
	LexUnexpectedEOF  Code = 1006
	LexInputTooLarge  Code = 1007

	// Ввод/вывод
	IOLoadFileError Code = 4001
)

// ID returns the stable short identifier of the code, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}
