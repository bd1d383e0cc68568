package editor

import (
	"context"
	"fmt"
	"sync"

	"codesmith/internal/complete"
	"codesmith/internal/engine/buffer"
	"codesmith/internal/logger"
	"codesmith/internal/navigate"

	"github.com/google/uuid"
)

// Session is one open document plus everything the UI needs to act on
// it: cursor, completion engine, navigator, command registry, and the
// completion overlay. All methods except the completion goroutine run
// on the UI goroutine; the buffer itself is safe for the background
// snapshot reads.
type Session struct {
	buf    *buffer.Buffer
	cursor int

	filePath string
	dirty    bool

	engine       *complete.Engine
	nav          *navigate.Navigator
	notifier     Notifier
	contextLimit int

	commands commandRegistry

	// overlayMu guards the overlay pointer; it is read outside the UI
	// goroutine by observers of session state.
	overlayMu sync.Mutex
	overlay   *Overlay

	// resultMu guards latestID and serializes sends on results, so a
	// publisher that drained the one-slot channel can refill it without
	// blocking.
	resultMu sync.Mutex
	latestID uuid.UUID

	results chan complete.Result
}

// Option configures a Session.
type Option func(*Session)

// WithEngine sets the completion engine.
func WithEngine(e *complete.Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithNavigator sets the definition navigator.
func WithNavigator(n *navigate.Navigator) Option {
	return func(s *Session) { s.nav = n }
}

// WithNotifier sets the notice sink.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithContextLimit caps the preceding-text window sent with completion
// requests.
func WithContextLimit(limit int) Option {
	return func(s *Session) {
		if limit > 0 {
			s.contextLimit = limit
		}
	}
}

// New creates an empty session. Without options the session completes
// from the local vocabulary only and discards notices.
func New(opts ...Option) *Session {
	s := &Session{
		buf:          buffer.New(),
		notifier:     NopNotifier{},
		contextLimit: complete.DefaultContextLimit,
		results:      make(chan complete.Result, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = complete.New(nil)
	}
	if s.nav == nil {
		s.nav = navigate.New(nil)
	}
	return s
}

// Buffer returns the session's document buffer.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// Cursor returns the cursor byte offset.
func (s *Session) Cursor() int { return s.cursor }

// SetCursor moves the cursor, clamping to the buffer bounds.
func (s *Session) SetCursor(offset int) {
	if offset < 0 {
		offset = 0
	}
	if n := s.buf.Len(); offset > n {
		offset = n
	}
	s.cursor = offset
}

// InsertAtCursor inserts text at the cursor and advances past it. Any
// live overlay is dismissed: its candidates were built for a prefix
// that no longer exists.
func (s *Session) InsertAtCursor(text string) {
	if text == "" {
		return
	}
	if err := s.buf.Insert(s.cursor, text); err != nil {
		logger.Error("insert failed", "offset", s.cursor, "error", err)
		return
	}
	s.cursor += len(text)
	s.dirty = true
	s.DismissOverlay()
}

// DeleteBeforeCursor removes the byte before the cursor, the backspace
// operation. It dismisses any live overlay for the same reason typing
// does.
func (s *Session) DeleteBeforeCursor() {
	if s.cursor == 0 {
		return
	}
	if err := s.buf.Delete(buffer.Range{Start: s.cursor - 1, End: s.cursor}); err != nil {
		logger.Error("delete failed", "offset", s.cursor, "error", err)
		return
	}
	s.cursor--
	s.dirty = true
	s.DismissOverlay()
}

// MoveCursorHorizontal shifts the cursor by delta bytes, clamped.
func (s *Session) MoveCursorHorizontal(delta int) {
	s.SetCursor(s.cursor + delta)
}

// MoveCursorVertical moves the cursor delta lines up or down, keeping
// the column where the target line allows.
func (s *Session) MoveCursorVertical(delta int) {
	pos := s.buf.OffsetToPosition(s.cursor)
	pos.Line += delta
	if pos.Line < 1 {
		pos.Line = 1
	}
	if n := s.buf.LineCount(); pos.Line > n {
		pos.Line = n
	}
	s.cursor = s.buf.PositionToOffset(pos)
}

// Modified reports whether the buffer has unsaved changes.
func (s *Session) Modified() bool { return s.dirty }

// SetNotifier swaps the notice sink. The UI installs itself here once
// it exists; session and UI are constructed in that order.
func (s *Session) SetNotifier(n Notifier) {
	if n != nil {
		s.notifier = n
	}
}

// Notify forwards a notice to the configured sink.
func (s *Session) Notify(msg string) { s.notifier.Notice(msg) }

// RegisterCommand adds a labeled command to the Extensions menu. This
// is the single capability the extension host exposes to extensions.
func (s *Session) RegisterCommand(label string, run func()) {
	s.commands.add(label, run)
	logger.Debug("command registered", "label", label)
}

// Commands returns the registered commands in registration order.
func (s *Session) Commands() []Command { return s.commands.list() }

// RunCommand executes the command with the given label. Returns false
// when no such command is registered.
func (s *Session) RunCommand(label string) bool {
	cmd, ok := s.commands.find(label)
	if !ok {
		return false
	}
	cmd.Run()
	return true
}

// Results delivers asynchronous completion results. The UI loop reads
// from it and calls Apply.
func (s *Session) Results() <-chan complete.Result { return s.results }

// Autocomplete triggers completion for the prefix under the cursor.
// The engine runs in a background goroutine; the result arrives on
// Results. An empty prefix is a silent no-op and ok is false. A new
// trigger supersedes any request still in flight: the old request's
// result will be dropped, never the new one.
func (s *Session) Autocomplete(ctx context.Context) (complete.Request, bool) {
	prefix := s.buf.PrefixAt(s.cursor)
	if prefix == "" {
		return complete.Request{}, false
	}

	req := complete.NewRequest(prefix, s.buf.ContextBefore(s.cursor, s.contextLimit), s.contextLimit)
	text := s.buf.Text()

	s.resultMu.Lock()
	s.latestID = req.ID
	s.resultMu.Unlock()

	go func() {
		s.publish(s.engine.Candidates(ctx, req, text))
	}()
	return req, true
}

// publish delivers a result to the Results channel unless a newer
// request has been issued since. Delivery replaces any superseded
// result still queued; all publishers hold resultMu, so after the
// drain the buffered send cannot block.
func (s *Session) publish(res complete.Result) {
	s.resultMu.Lock()
	defer s.resultMu.Unlock()

	if res.Request.ID != s.latestID {
		logger.Debug("superseded completion dropped", "prefix", res.Request.Prefix)
		return
	}

	select {
	case <-s.results:
	default:
	}
	s.results <- res
}

// isLatest reports whether id belongs to the most recent request. A
// session that has issued no request accepts any result; staleness is
// then decided by the prefix check alone.
func (s *Session) isLatest(id uuid.UUID) bool {
	s.resultMu.Lock()
	defer s.resultMu.Unlock()
	return s.latestID == uuid.Nil || id == s.latestID
}

// Apply consumes a completion result. A result is discarded when a
// newer request has been issued since it was triggered, or when its
// prefix no longer matches the cursor prefix because the user kept
// typing (or moved) while the request was in flight. Zero candidates
// do nothing, one is inserted directly, several open the overlay.
func (s *Session) Apply(res complete.Result) {
	if !s.isLatest(res.Request.ID) {
		logger.Debug("superseded completion discarded", "prefix", res.Request.Prefix)
		return
	}
	if res.Request.Prefix != s.buf.PrefixAt(s.cursor) {
		logger.Debug("stale completion discarded", "prefix", res.Request.Prefix)
		return
	}

	switch len(res.Candidates) {
	case 0:
	case 1:
		s.insertCompletion(res.Request.Prefix, res.Candidates[0])
	default:
		s.openOverlay(res.Request.Prefix, res.Candidates)
	}
}

// Overlay returns the live overlay, or nil when none is open.
func (s *Session) Overlay() *Overlay {
	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()
	return s.overlay
}

// AcceptOverlay inserts the selected candidate's suffix and closes the
// overlay.
func (s *Session) AcceptOverlay() {
	o := s.Overlay()
	if o == nil {
		return
	}
	s.DismissOverlay()
	s.insertCompletion(o.prefix, o.candidates[o.selected])
}

// DismissOverlay closes the live overlay, if any.
func (s *Session) DismissOverlay() {
	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()

	if s.overlay == nil {
		return
	}
	s.overlay.close()
	s.overlay = nil
}

// MoveOverlaySelection shifts the overlay selection by delta.
func (s *Session) MoveOverlaySelection(delta int) {
	if o := s.Overlay(); o != nil {
		o.Move(delta)
	}
}

func (s *Session) openOverlay(prefix string, candidates []string) {
	s.DismissOverlay()

	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()
	s.overlay = newOverlay(prefix, candidates)
}

// insertCompletion inserts the part of candidate beyond prefix at the
// cursor. The candidate set is already filtered to strict extensions,
// so the suffix is never empty.
func (s *Session) insertCompletion(prefix, candidate string) {
	if len(candidate) <= len(prefix) {
		return
	}
	s.InsertAtCursor(candidate[len(prefix):])
}

// JumpToDefinition moves the cursor to the first definition of the
// word under the cursor and marks its line. Misses surface as notices,
// never as buffer changes.
func (s *Session) JumpToDefinition() {
	word := s.buf.WordAt(s.cursor)
	if word == "" {
		s.Notify("No symbol selected")
		return
	}

	line, ok := s.nav.Definition(s.buf.Text(), word)
	if !ok {
		s.Notify(fmt.Sprintf("Definition for '%s' not found", word))
		return
	}

	start, err := s.buf.LineStart(line)
	if err != nil {
		logger.Error("definition line vanished", "line", line, "error", err)
		return
	}
	lineText, _ := s.buf.Line(line)

	s.SetCursor(start)
	s.buf.SetMark(buffer.Range{Start: start, End: start + len(lineText)})
	logger.Debug("jumped to definition", "word", word, "line", line)
}
