package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"codesmith/internal/editor"
	"codesmith/internal/logger"
)

// maxOverlayRows caps the completion popup height.
const maxOverlayRows = 6

// UI renders a session to the terminal and feeds input back into it.
// Everything except the tcell poll goroutine runs on the Run loop's
// goroutine, so no locking is needed on the struct.
type UI struct {
	screen  tcell.Screen
	session *editor.Session

	ctx      context.Context
	scroll   int // first visible line, 0-based
	tabWidth int
	message  string
	prompt   *prompt
	quitArm  bool

	// popup is the screen rectangle of the drawn completion popup,
	// valid only while an overlay is live. firstRow is the candidate
	// index of the popup's top row.
	popup struct {
		left, top, width, rows, firstRow int
	}
}

// prompt is a one-line status bar input: find, open, save-as, command.
type prompt struct {
	label  string
	input  string
	submit func(string)
}

// Option configures the UI.
type Option func(*UI)

// WithTabWidth sets how many spaces the Tab key inserts.
func WithTabWidth(n int) Option {
	return func(u *UI) {
		if n > 0 {
			u.tabWidth = n
		}
	}
}

// WithScreen substitutes the tcell screen, used by tests with a
// simulation screen.
func WithScreen(s tcell.Screen) Option {
	return func(u *UI) { u.screen = s }
}

// New creates a UI over the session.
func New(session *editor.Session, opts ...Option) (*UI, error) {
	u := &UI{
		session:  session,
		tabWidth: 4,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		u.screen = screen
	}
	return u, nil
}

// Notice implements editor.Notifier; notices land in the status line.
func (u *UI) Notice(msg string) {
	u.message = msg
}

// Run owns the terminal until the user quits or ctx is canceled.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer u.screen.Fini()
	u.screen.EnablePaste()
	u.screen.EnableMouse()

	u.ctx = ctx

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-u.session.Results():
			u.session.Apply(res)
			u.draw()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if u.handleEvent(ev) {
				return nil
			}
			u.draw()
		}
	}
}

// handleEvent processes one terminal event; true means quit.
func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	}
	return false
}

// handleMouse accepts the completion candidate under a click; clicks
// outside a live popup dismiss it.
func (u *UI) handleMouse(ev *tcell.EventMouse) {
	if u.session.Overlay() == nil || ev.Buttons()&tcell.Button1 == 0 {
		return
	}

	x, y := ev.Position()
	p := u.popup
	if x < p.left || x >= p.left+p.width || y < p.top || y >= p.top+p.rows {
		u.session.DismissOverlay()
		return
	}

	idx := p.firstRow + (y - p.top)
	if o := u.session.Overlay(); o != nil {
		u.session.MoveOverlaySelection(idx - o.Selected())
		u.session.AcceptOverlay()
	}
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	u.message = ""

	if u.prompt != nil {
		u.handlePromptKey(ev)
		return false
	}
	if u.session.Overlay() != nil && u.handleOverlayKey(ev) {
		return false
	}

	if ev.Key() != tcell.KeyCtrlQ {
		u.quitArm = false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		if u.session.Modified() && !u.quitArm {
			u.quitArm = true
			u.message = "Unsaved changes; Ctrl+Q again to quit"
			return false
		}
		return true
	case tcell.KeyCtrlS:
		u.save()
	case tcell.KeyCtrlO:
		u.openPrompt("Open: ", func(path string) {
			if err := u.session.OpenFile(path); err != nil {
				u.message = err.Error()
			}
		})
	case tcell.KeyCtrlN:
		u.session.NewFile()
	case tcell.KeyCtrlF:
		u.openPrompt("Find: ", func(query string) {
			u.session.Find(query)
		})
	case tcell.KeyCtrlR:
		u.openPrompt("Replace (old -> new): ", u.replaceAll)
	case tcell.KeyCtrlK:
		u.openPrompt("Command: ", func(label string) {
			if !u.session.RunCommand(label) {
				u.message = fmt.Sprintf("No command '%s'", label)
			}
		})
	case tcell.KeyCtrlSpace:
		u.session.Autocomplete(u.ctx)
	case tcell.KeyF12:
		u.session.JumpToDefinition()
	case tcell.KeyUp:
		u.session.MoveCursorVertical(-1)
	case tcell.KeyDown:
		u.session.MoveCursorVertical(1)
	case tcell.KeyLeft:
		u.session.MoveCursorHorizontal(-1)
	case tcell.KeyRight:
		u.session.MoveCursorHorizontal(1)
	case tcell.KeyEnter:
		u.session.InsertAtCursor("\n")
	case tcell.KeyTab:
		u.session.InsertAtCursor(strings.Repeat(" ", u.tabWidth))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		u.session.DeleteBeforeCursor()
	case tcell.KeyEscape:
		u.session.Buffer().ClearMark()
	case tcell.KeyRune:
		u.session.InsertAtCursor(string(ev.Rune()))
	}
	return false
}

// handleOverlayKey handles keys owned by the completion popup; false
// lets the key fall through to normal editing, which dismisses the
// popup as a side effect.
func (u *UI) handleOverlayKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		u.session.MoveOverlaySelection(-1)
	case tcell.KeyDown:
		u.session.MoveOverlaySelection(1)
	case tcell.KeyEnter, tcell.KeyTab:
		u.session.AcceptOverlay()
	case tcell.KeyEscape:
		u.session.DismissOverlay()
	default:
		return false
	}
	return true
}

func (u *UI) handlePromptKey(ev *tcell.EventKey) {
	p := u.prompt
	switch ev.Key() {
	case tcell.KeyEscape:
		u.prompt = nil
	case tcell.KeyEnter:
		u.prompt = nil
		p.submit(p.input)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.input != "" {
			p.input = p.input[:len(p.input)-1]
		}
	case tcell.KeyRune:
		p.input += string(ev.Rune())
	}
}

func (u *UI) openPrompt(label string, submit func(string)) {
	u.prompt = &prompt{label: label, submit: submit}
}

func (u *UI) save() {
	err := u.session.Save()
	if errors.Is(err, editor.ErrNoFilePath) {
		u.openPrompt("Save as: ", func(path string) {
			if err := u.session.SaveAs(path); err != nil {
				u.message = err.Error()
			}
		})
		return
	}
	if err != nil {
		logger.Error("save failed", "error", err)
		u.message = err.Error()
	}
}

func (u *UI) replaceAll(arg string) {
	parts := strings.SplitN(arg, " -> ", 2)
	if len(parts) != 2 || parts[0] == "" {
		u.message = "Usage: old -> new"
		return
	}
	u.session.ReplaceAll(parts[0], parts[1])
}
