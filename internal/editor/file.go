package editor

import (
	"fmt"
	"os"
	"strings"

	"codesmith/internal/engine/buffer"
	"codesmith/internal/logger"
)

// OpenFile loads the file at path into the buffer, replacing the
// current document. The cursor resets to the start.
func (s *Session) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	s.DismissOverlay()
	s.buf.SetText(string(data))
	s.cursor = 0
	s.filePath = path
	s.dirty = false
	logger.Info("file opened", "path", path, "bytes", len(data))
	return nil
}

// NewFile replaces the document with an empty unnamed buffer.
func (s *Session) NewFile() {
	s.DismissOverlay()
	s.buf.SetText("")
	s.cursor = 0
	s.filePath = ""
	s.dirty = false
}

// FilePath returns the path backing the document, empty for an unnamed
// buffer.
func (s *Session) FilePath() string { return s.filePath }

// SetFilePath binds the document to path without touching the disk,
// used when editing a file that does not exist yet.
func (s *Session) SetFilePath(path string) { s.filePath = path }

// Save writes the buffer to its backing file.
func (s *Session) Save() error {
	if s.filePath == "" {
		return ErrNoFilePath
	}
	return s.SaveAs(s.filePath)
}

// SaveAs writes the buffer to path and makes it the backing file.
func (s *Session) SaveAs(path string) error {
	if err := os.WriteFile(path, []byte(s.buf.Text()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.filePath = path
	s.dirty = false
	s.Notify(fmt.Sprintf("Saved %s", path))
	return nil
}

// Find moves the cursor to the first occurrence of query in the buffer
// and marks it. A miss leaves the session untouched apart from a
// notice.
func (s *Session) Find(query string) bool {
	if query == "" {
		return false
	}

	idx := strings.Index(s.buf.Text(), query)
	if idx < 0 {
		s.Notify(fmt.Sprintf("'%s' not found", query))
		return false
	}

	s.SetCursor(idx)
	s.buf.SetMark(buffer.Range{Start: idx, End: idx + len(query)})
	return true
}

// ReplaceAll replaces every occurrence of query with replacement and
// returns the count. The cursor is clamped to the new text.
func (s *Session) ReplaceAll(query, replacement string) int {
	if query == "" {
		return 0
	}

	text := s.buf.Text()
	n := strings.Count(text, query)
	if n == 0 {
		s.Notify(fmt.Sprintf("'%s' not found", query))
		return 0
	}

	s.DismissOverlay()
	s.buf.SetText(strings.Replace(text, query, replacement, -1))
	s.SetCursor(s.cursor)
	s.dirty = true
	s.Notify(fmt.Sprintf("Replaced %d occurrence(s)", n))
	return n
}

// WordCount returns the whitespace-separated word count of the buffer.
func (s *Session) WordCount() int {
	return len(strings.Fields(s.buf.Text()))
}
