// Package navigate resolves go-to-definition within the open buffer.
//
// Resolution is a textual heuristic, deliberately not a parser: a
// definition is any line that starts (after leading whitespace) with one
// of a fixed set of definition-introducing keywords followed by the target
// identifier. The scan is top-to-bottom and first-match-wins, with no
// scope awareness; shadowed or duplicate definitions resolve to the first
// occurrence in reading order.
package navigate

import (
	"fmt"
	"regexp"
	"strings"
)

// Navigator scans buffer text for symbol definitions. It holds only the
// keyword set; every lookup is an independent scan of the current text,
// nothing is cached between calls.
type Navigator struct {
	keywords []string
	alt      string
}

// DefaultKeywords are the definition-introducing keywords used when none
// are configured.
var DefaultKeywords = []string{"func", "type", "var", "const", "def", "class"}

// New creates a Navigator with the given definition keywords, falling
// back to DefaultKeywords when none are given.
func New(keywords []string) *Navigator {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return &Navigator{
		keywords: keywords,
		alt:      strings.Join(quoted, "|"),
	}
}

// Keywords returns the configured keyword set.
func (n *Navigator) Keywords() []string {
	return append([]string(nil), n.keywords...)
}

// Definition returns the 1-based line number of the first line defining
// word, scanning text top to bottom. ok is false when no line matches or
// word is empty.
func (n *Navigator) Definition(text, word string) (line int, ok bool) {
	if word == "" {
		return 0, false
	}

	pattern := fmt.Sprintf(`^\s*(?:%s)\s+%s\b`, n.alt, regexp.QuoteMeta(word))
	re := regexp.MustCompile(pattern)

	for i, l := range strings.Split(text, "\n") {
		if re.MatchString(l) {
			return i + 1, true
		}
	}
	return 0, false
}
