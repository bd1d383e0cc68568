package buffer

import "testing"

func TestNewEmpty(t *testing.T) {
	b := New()

	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", b.LineCount())
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		offset int
		insert string
		want   string
	}{
		{"into empty", "", 0, "abc", "abc"},
		{"at start", "world", 0, "hello ", "hello world"},
		{"at end", "hello", 5, "!", "hello!"},
		{"middle", "herld", 2, "llo wo", "hello world"},
		{"empty string", "abc", 1, "", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.start)
			if err := b.Insert(tt.offset, tt.insert); err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := NewFromString("ab")

	if err := b.Insert(-1, "x"); err != ErrOffsetOutOfRange {
		t.Errorf("Insert(-1) error = %v, want ErrOffsetOutOfRange", err)
	}
	if err := b.Insert(3, "x"); err != ErrOffsetOutOfRange {
		t.Errorf("Insert(3) error = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		text string
		r    Range
		want string
	}{
		{"middle", "hello world", Range{5, 11}, "hello"},
		{"start", "hello", Range{0, 2}, "llo"},
		{"all", "hello", Range{0, 5}, ""},
		{"empty range", "hello", Range{2, 2}, "hello"},
		{"across newline", "ab\ncd", Range{1, 4}, "ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.text)
			if err := b.Delete(tt.r); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	b := NewFromString("ab")

	if err := b.Delete(Range{-1, 1}); err != ErrOffsetOutOfRange {
		t.Errorf("Delete() error = %v, want ErrOffsetOutOfRange", err)
	}
	if err := b.Delete(Range{0, 3}); err != ErrOffsetOutOfRange {
		t.Errorf("Delete() error = %v, want ErrOffsetOutOfRange", err)
	}
	if err := b.Delete(Range{2, 1}); err != ErrOffsetOutOfRange {
		t.Errorf("Delete() error = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDeleteClearsMark(t *testing.T) {
	b := NewFromString("hello")
	b.SetMark(Range{0, 5})

	if err := b.Delete(Range{1, 2}); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Mark(); ok {
		t.Error("Delete should clear the mark")
	}
}

func TestInsertClearsMark(t *testing.T) {
	b := NewFromString("hello")
	b.SetMark(Range{0, 5})

	if err := b.Insert(2, "xx"); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Mark(); ok {
		t.Error("Insert should clear the mark")
	}
}

func TestLines(t *testing.T) {
	b := NewFromString("one\ntwo\nthree")

	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}

	want := []string{"one", "two", "three"}
	for i, w := range want {
		got, err := b.Line(i + 1)
		if err != nil {
			t.Fatalf("Line(%d) error = %v", i+1, err)
		}
		if got != w {
			t.Errorf("Line(%d) = %q, want %q", i+1, got, w)
		}
	}

	if _, err := b.Line(0); err != ErrLineOutOfRange {
		t.Errorf("Line(0) error = %v, want ErrLineOutOfRange", err)
	}
	if _, err := b.Line(4); err != ErrLineOutOfRange {
		t.Errorf("Line(4) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestLineStart(t *testing.T) {
	b := NewFromString("ab\ncd\n")

	tests := []struct {
		line int
		want int
	}{
		{1, 0},
		{2, 3},
		{3, 6}, // trailing newline opens an empty final line
	}
	for _, tt := range tests {
		got, err := b.LineStart(tt.line)
		if err != nil {
			t.Fatalf("LineStart(%d) error = %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	b := NewFromString("ab\ncd\nef")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 0}},
		{2, Position{1, 2}},
		{3, Position{2, 0}},
		{5, Position{2, 2}},
		{6, Position{3, 0}},
		{8, Position{3, 2}},
	}

	for _, tt := range tests {
		got := b.OffsetToPosition(tt.offset)
		if got != tt.want {
			t.Errorf("OffsetToPosition(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
		back := b.PositionToOffset(got)
		if back != tt.offset {
			t.Errorf("PositionToOffset(%+v) = %d, want %d", got, back, tt.offset)
		}
	}
}

func TestOffsetToPositionClamps(t *testing.T) {
	b := NewFromString("ab")

	if got := b.OffsetToPosition(-5); got != (Position{1, 0}) {
		t.Errorf("OffsetToPosition(-5) = %+v", got)
	}
	if got := b.OffsetToPosition(99); got != (Position{1, 2}) {
		t.Errorf("OffsetToPosition(99) = %+v", got)
	}
}

func TestSetTextClearsMark(t *testing.T) {
	b := NewFromString("hello")
	b.SetMark(Range{0, 5})

	if _, ok := b.Mark(); !ok {
		t.Fatal("mark should be set")
	}

	b.SetText("bye")
	if _, ok := b.Mark(); ok {
		t.Error("SetText should clear the mark")
	}
}

func TestMarkReplaces(t *testing.T) {
	b := NewFromString("hello world")

	b.SetMark(Range{0, 5})
	b.SetMark(Range{6, 11})

	got, ok := b.Mark()
	if !ok {
		t.Fatal("mark should be set")
	}
	if got != (Range{6, 11}) {
		t.Errorf("Mark() = %+v, want {6 11}", got)
	}
}

func TestMarkRejectsInvalid(t *testing.T) {
	b := NewFromString("abc")
	b.SetMark(Range{2, 99})

	if _, ok := b.Mark(); ok {
		t.Error("invalid range should not set a mark")
	}
}
