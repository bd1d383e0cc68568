// Package editor ties the document buffer, completion engine, symbol
// navigator, and extension command registry into a single interactive
// session consumed by the terminal UI.
package editor
