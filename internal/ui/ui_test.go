package ui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"codesmith/internal/editor"
)

func runUI(t *testing.T) (*editor.Session, tcell.SimulationScreen, chan error) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	session := editor.New()

	u, err := New(session, WithScreen(screen))
	if err != nil {
		t.Fatal(err)
	}
	session.SetNotifier(u)

	done := make(chan error, 1)
	go func() {
		done <- u.Run(context.Background())
	}()

	// Wait for the screen to come up before injecting keys.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if w, _ := screen.Size(); w > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("screen never initialized")
		}
		time.Sleep(time.Millisecond)
	}
	return session, screen, done
}

func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", desc)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTypingAndQuit(t *testing.T) {
	session, screen, done := runUI(t)

	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)
	waitFor(t, "typed text", func() bool { return session.Buffer().Text() == "hi" })

	// The buffer is modified; the first Ctrl+Q only warns.
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	select {
	case err := <-done:
		t.Fatalf("UI quit on first Ctrl+Q with unsaved changes (err %v)", err)
	case <-time.After(100 * time.Millisecond):
	}

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("UI did not quit on second Ctrl+Q")
	}
}

func TestBackspaceAndNewline(t *testing.T) {
	session, screen, done := runUI(t)

	for _, r := range "abc" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)

	waitFor(t, "edited text", func() bool { return session.Buffer().Text() == "ab\nd" })

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	<-done
}

func TestOverlayKeys(t *testing.T) {
	session, screen, done := runUI(t)

	// Seed a buffer whose vocabulary yields two candidates, then trigger
	// completion with the local-only engine.
	for _, r := range "food foobar fo" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyCtrlSpace, 0, tcell.ModNone)
	waitFor(t, "overlay", func() bool { return session.Overlay() != nil })

	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	waitFor(t, "accepted candidate", func() bool {
		return session.Buffer().Text() == "food foobar food"
	})
	if session.Overlay() != nil {
		t.Error("accepting should close the overlay")
	}

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	<-done
}

func TestOverlayMouseAccept(t *testing.T) {
	session, screen, done := runUI(t)

	for _, r := range "food foobar fo" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyCtrlSpace, 0, tcell.ModNone)
	waitFor(t, "overlay", func() bool { return session.Overlay() != nil })

	// The popup opens one row below the cursor line, left-aligned with
	// the cursor column (14). Click its first row: "foobar".
	screen.InjectMouse(14, 1, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(14, 1, tcell.ButtonNone, tcell.ModNone)

	waitFor(t, "clicked candidate", func() bool {
		return session.Buffer().Text() == "food foobar foobar"
	})

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	<-done
}

func TestOverlayEscape(t *testing.T) {
	session, screen, done := runUI(t)

	for _, r := range "food foobar fo" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyCtrlSpace, 0, tcell.ModNone)
	waitFor(t, "overlay", func() bool { return session.Overlay() != nil })

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	waitFor(t, "overlay dismissed", func() bool { return session.Overlay() == nil })

	if got := session.Buffer().Text(); got != "food foobar fo" {
		t.Errorf("buffer = %q, dismissal must not mutate text", got)
	}

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	<-done
}

func TestRuneColumn(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		byteCol int
		want    int
	}{
		{"ascii", "hello", 3, 3},
		{"end of ascii", "hello", 5, 5},
		{"after multibyte rune", "héllo", 3, 2},
		{"all multibyte", "日本語", 6, 2},
		{"end of multibyte line", "日本語", 9, 3},
		{"clamped past end", "héllo", 20, 5},
		{"start", "日本語", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runeColumn(tt.line, tt.byteCol); got != tt.want {
				t.Errorf("runeColumn(%q, %d) = %d, want %d", tt.line, tt.byteCol, got, tt.want)
			}
		})
	}
}
