package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"calclex/internal/source"
)

// Cursor представляет собой позицию в буфере ввода
type Cursor struct {
	Src []byte
	Off uint32
	// Limit is the exclusive upper bound for Off, len(Src).
	Limit uint32
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src []byte) Cursor {
	return cursorAt(src, 0)
}

func cursorAt(src []byte, off uint32) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len input overflow: %w", err))
	}
	return Cursor{
		Src:   src,
		Off:   off,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец ввода
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Start: uint32(m),
		End:   c.Off,
	}
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
