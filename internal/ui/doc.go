// Package ui is the tcell terminal frontend: it paints the session's
// buffer, status line, and completion popup, and translates key events
// into session operations.
package ui
