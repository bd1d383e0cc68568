// Package buffer provides the thread-safe text buffer backing the open
// document. It owns the text, a line index, word-boundary expansion used
// by completion and navigation, and the single highlight mark used by
// go-to-definition and find.
//
// The buffer stores plain UTF-8 text in a string; the editor works on a
// single document at a time, so a flat store with a rebuilt line index is
// simpler than a structural one and fast enough at editor-file sizes.
package buffer
