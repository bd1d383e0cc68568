package editor

// Notifier receives user-visible informational notices: navigation
// misses, find results, extension command output. Notices are never
// errors; the UI shows them in the status line.
type Notifier interface {
	Notice(msg string)
}

// NopNotifier discards notices.
type NopNotifier struct{}

// Notice implements Notifier.
func (NopNotifier) Notice(string) {}
