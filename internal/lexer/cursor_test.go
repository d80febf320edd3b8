package lexer

import (
	"testing"

	"calclex/internal/source"
)

// TestSequentialReading проверяет последовательное чтение: "1\n2" → 1, \n, 2, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor([]byte("1\n2"))

	for _, want := range []byte("1\n2") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if cursor.Peek() != want {
			t.Errorf("Expected peek %q, got %q", want, cursor.Peek())
		}
		if b := cursor.Bump(); b != want {
			t.Errorf("Expected bump %q, got %q", want, b)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 {
		t.Errorf("Expected peek 0 at EOF, got %q", cursor.Peek())
	}
	if b := cursor.Bump(); b != 0 {
		t.Errorf("Expected bump 0 at EOF, got %q", b)
	}
	if cursor.Off != 3 {
		t.Errorf("Bump at EOF must not advance, Off = %d", cursor.Off)
	}
}

func TestSpanFrom(t *testing.T) {
	cursor := NewCursor([]byte("123+"))
	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	cursor.Bump()

	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 3 {
		t.Errorf("Expected span (0,3), got (%d,%d)", span.Start, span.End)
	}

	mark2 := cursor.Mark()
	span2 := cursor.SpanFrom(mark2)
	if !span2.Empty() || span2.Start != 3 {
		t.Errorf("Expected empty span at 3, got %v", span2)
	}
}

// TestEat проверяет поведение Eat
func TestEat(t *testing.T) {
	cursor := NewCursor([]byte("(1"))

	if cursor.Eat(')') {
		t.Error("Expected Eat(')') to fail when current byte is '('")
	}
	if cursor.Off != 0 {
		t.Errorf("failed Eat must not move the cursor, Off = %d", cursor.Off)
	}
	if !cursor.Eat('(') {
		t.Error("Expected Eat('(') to succeed")
	}
	if !cursor.Eat('1') {
		t.Error("Expected Eat('1') to succeed")
	}
	if cursor.Eat('1') {
		t.Error("Expected Eat at EOF to fail")
	}
}

// TestMarkSpanFrom проверяет, что SpanFrom покрывает всё прочитанное после метки
func TestMarkSpanFrom(t *testing.T) {
	cursor := NewCursor([]byte("abc"))
	cursor.Bump()
	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()

	if got := cursor.SpanFrom(mark); got != (source.Span{Start: 1, End: 3}) {
		t.Errorf("SpanFrom(mark) = %v, want 1..3", got)
	}
	if got := cursor.SpanFrom(cursor.Mark()); got.Len() != 0 {
		t.Errorf("SpanFrom at the current mark must be empty, got %v", got)
	}
}

func TestCursorAtOffset(t *testing.T) {
	c := cursorAt([]byte("1 + 2"), 4)
	if c.Peek() != '2' || c.Limit != 5 {
		t.Fatalf("cursorAt: peek %q, limit %d", c.Peek(), c.Limit)
	}
	past := cursorAt([]byte("1"), 5)
	if !past.EOF() || past.Peek() != 0 {
		t.Fatalf("cursor past the end must report EOF")
	}
}
