package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrLineOutOfRange   = errors.New("line out of range")
)

// Buffer is a thread-safe text buffer for a single open document.
// It is the editor's source of truth for text; all coordinates are byte
// offsets unless a method says otherwise. Lines are 1-based.
type Buffer struct {
	mu   sync.RWMutex
	text string

	// lineStarts[i] is the byte offset of the start of line i+1.
	// Rebuilt on mutation; reads are far more common than writes here.
	lineStarts []int

	mark *Range
}

// Range is a half-open [Start, End) byte range in the buffer.
type Range struct {
	Start int
	End   int
}

// New creates an empty buffer.
func New() *Buffer {
	b := &Buffer{}
	b.reindex()
	return b
}

// NewFromString creates a buffer holding the given text.
func NewFromString(text string) *Buffer {
	b := &Buffer{text: text}
	b.reindex()
	return b
}

// reindex rebuilds the line start table. Callers must hold mu.
func (b *Buffer) reindex() {
	starts := []int{0}
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.lineStarts = starts
}

// Text returns the full buffer text.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// Lines returns the buffer split into lines without terminators.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Split(b.text, "\n")
}

// Line returns the text of the given 1-based line without its terminator.
func (b *Buffer) Line(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 1 || line > len(b.lineStarts) {
		return "", ErrLineOutOfRange
	}

	start := b.lineStarts[line-1]
	end := len(b.text)
	if line < len(b.lineStarts) {
		end = b.lineStarts[line] - 1 // drop the \n
	}
	return b.text[start:end], nil
}

// LineStart returns the byte offset of the start of the given 1-based line.
func (b *Buffer) LineStart(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 1 || line > len(b.lineStarts) {
		return 0, ErrLineOutOfRange
	}
	return b.lineStarts[line-1], nil
}

// SetText replaces the entire buffer content. The mark is cleared.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	b.mark = nil
	b.reindex()
}

// Insert inserts s at the given byte offset. The mark is cleared: any
// edit shifts the bytes the mark was pointing at.
func (b *Buffer) Insert(offset int, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > len(b.text) {
		return ErrOffsetOutOfRange
	}
	if s == "" {
		return nil
	}

	b.text = b.text[:offset] + s + b.text[offset:]
	b.mark = nil
	b.reindex()
	return nil
}

// Delete removes the half-open byte range r.
func (b *Buffer) Delete(r Range) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Start < 0 || r.End > len(b.text) || r.Start > r.End {
		return ErrOffsetOutOfRange
	}
	if r.Start == r.End {
		return nil
	}

	b.text = b.text[:r.Start] + b.text[r.End:]
	b.mark = nil
	b.reindex()
	return nil
}

// SetMark highlights the given range, replacing any previous mark.
func (b *Buffer) SetMark(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Start < 0 || r.End > len(b.text) || r.Start > r.End {
		return
	}
	b.mark = &r
}

// ClearMark removes the highlight.
func (b *Buffer) ClearMark() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mark = nil
}

// Mark returns the highlighted range, if any.
func (b *Buffer) Mark() (Range, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.mark == nil {
		return Range{}, false
	}
	return *b.mark, true
}
