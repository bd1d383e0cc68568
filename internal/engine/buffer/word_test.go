package buffer

import "testing"

func TestWordAt(t *testing.T) {
	//        0123456789012345
	text := "foo bar_baz(qux)"
	b := NewFromString(text)

	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{"start of word", 0, "foo"},
		{"inside word", 1, "foo"},
		{"end of word expands back", 3, "foo"},
		{"underscore word", 6, "bar_baz"},
		{"after paren", 12, "qux"},
		{"on closing paren", 15, "qux"},
		{"between words", 4, "bar_baz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.WordAt(tt.offset); got != tt.want {
				t.Errorf("WordAt(%d) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}

func TestWordAtEmpty(t *testing.T) {
	b := NewFromString("a (  ) b")

	if got := b.WordAt(4); got != "" {
		t.Errorf("WordAt(4) = %q, want empty", got)
	}
}

func TestPrefixAt(t *testing.T) {
	b := NewFromString("print(fo")

	tests := []struct {
		offset int
		want   string
	}{
		{8, "fo"},
		{7, "f"},
		{6, ""},
		{5, "print"},
		{0, ""},
	}

	for _, tt := range tests {
		if got := b.PrefixAt(tt.offset); got != tt.want {
			t.Errorf("PrefixAt(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestContextBefore(t *testing.T) {
	b := NewFromString("abcdefghij")

	if got := b.ContextBefore(10, 4); got != "ghij" {
		t.Errorf("ContextBefore(10, 4) = %q, want %q", got, "ghij")
	}
	if got := b.ContextBefore(10, 100); got != "abcdefghij" {
		t.Errorf("ContextBefore(10, 100) = %q, want full text", got)
	}
	if got := b.ContextBefore(0, 4); got != "" {
		t.Errorf("ContextBefore(0, 4) = %q, want empty", got)
	}
	if got := b.ContextBefore(3, 2); got != "bc" {
		t.Errorf("ContextBefore(3, 2) = %q, want %q", got, "bc")
	}
}

func TestIsWordByte(t *testing.T) {
	for _, c := range []byte("azAZ09_") {
		if !IsWordByte(c) {
			t.Errorf("IsWordByte(%q) = false, want true", c)
		}
	}
	for _, c := range []byte(" .(-+\n\t") {
		if IsWordByte(c) {
			t.Errorf("IsWordByte(%q) = true, want false", c)
		}
	}
}
