package buffer

// IsWordByte reports whether c belongs to an identifier-style word.
func IsWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// WordAt returns the maximal word-character run containing or immediately
// preceding the given offset, expanding left and right from the offset.
// Returns "" when the offset touches no word characters.
func (b *Buffer) WordAt(offset int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end := b.wordBounds(offset)
	return b.text[start:end]
}

// PrefixAt returns the partial word ending at the given offset: the
// maximal word-character run expanding left only. This is the completion
// trigger prefix.
func (b *Buffer) PrefixAt(offset int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = b.clamp(offset)
	start := offset
	for start > 0 && IsWordByte(b.text[start-1]) {
		start--
	}
	return b.text[start:offset]
}

// ContextBefore returns up to max bytes of text preceding the offset.
func (b *Buffer) ContextBefore(offset, max int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = b.clamp(offset)
	start := offset - max
	if start < 0 {
		start = 0
	}
	return b.text[start:offset]
}

// wordBounds computes the word range around offset. Callers must hold mu.
func (b *Buffer) wordBounds(offset int) (int, int) {
	offset = b.clamp(offset)

	start := offset
	for start > 0 && IsWordByte(b.text[start-1]) {
		start--
	}
	end := offset
	for end < len(b.text) && IsWordByte(b.text[end]) {
		end++
	}
	return start, end
}

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}
