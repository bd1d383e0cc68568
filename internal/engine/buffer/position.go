package buffer

import "sort"

// Position is a 1-based line and 0-based column (byte within the line).
type Position struct {
	Line int
	Col  int
}

// OffsetToPosition converts a byte offset to a line/column position.
// Offsets past the end clamp to the final position.
func (b *Buffer) OffsetToPosition(offset int) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}

	// First line whose start is past the offset; the offset lives on the
	// line before it.
	idx := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	line := idx // lineStarts is 0-indexed, lines are 1-based

	return Position{Line: line, Col: offset - b.lineStarts[line-1]}
}

// PositionToOffset converts a line/column position to a byte offset.
// Out-of-range positions clamp to the nearest valid offset.
func (b *Buffer) PositionToOffset(pos Position) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if pos.Line < 1 {
		return 0
	}
	if pos.Line > len(b.lineStarts) {
		return len(b.text)
	}

	start := b.lineStarts[pos.Line-1]
	end := len(b.text)
	if pos.Line < len(b.lineStarts) {
		end = b.lineStarts[pos.Line] - 1
	}

	offset := start + pos.Col
	if offset < start {
		return start
	}
	if offset > end {
		return end
	}
	return offset
}
