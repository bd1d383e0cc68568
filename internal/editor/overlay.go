package editor

// Overlay is the completion popup state: an ordered candidate list with
// one selected entry. At most one overlay is live per session; opening a
// new one closes the previous. The overlay holds the prefix it was built
// for so acceptance can insert only the suffix.
type Overlay struct {
	prefix     string
	candidates []string
	selected   int
	closed     bool
}

func newOverlay(prefix string, candidates []string) *Overlay {
	return &Overlay{
		prefix:     prefix,
		candidates: append([]string(nil), candidates...),
	}
}

// Prefix returns the cursor prefix the candidates extend.
func (o *Overlay) Prefix() string { return o.prefix }

// Candidates returns the candidate list in display order.
func (o *Overlay) Candidates() []string {
	return append([]string(nil), o.candidates...)
}

// Selected returns the index of the highlighted candidate.
func (o *Overlay) Selected() int { return o.selected }

// Closed reports whether the overlay has been torn down. A closed
// overlay is inert; session operations ignore it.
func (o *Overlay) Closed() bool { return o.closed }

// Move shifts the selection by delta, clamping at the list edges.
func (o *Overlay) Move(delta int) {
	o.selected += delta
	if o.selected < 0 {
		o.selected = 0
	}
	if o.selected >= len(o.candidates) {
		o.selected = len(o.candidates) - 1
	}
}

func (o *Overlay) close() { o.closed = true }
