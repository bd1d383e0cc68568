package complete

import (
	"regexp"
	"sort"
)

var wordToken = regexp.MustCompile(`[A-Za-z0-9_]+`)

// Vocabulary computes the local candidate set for a prefix: the union of
// the reserved words and every word token in the buffer text, filtered to
// strict extensions of the prefix, deduplicated, and sorted ascending by
// code point.
func Vocabulary(text, prefix string, reserved []string) []string {
	if prefix == "" {
		return nil
	}

	seen := make(map[string]struct{})
	for _, w := range reserved {
		seen[w] = struct{}{}
	}
	for _, w := range wordToken.FindAllString(text, -1) {
		seen[w] = struct{}{}
	}

	var out []string
	for w := range seen {
		if extendsPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// FilterPrefix keeps candidates that strictly extend the prefix,
// preserving order and dropping duplicates.
func FilterPrefix(candidates []string, prefix string) []string {
	if prefix == "" {
		return nil
	}

	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, c := range candidates {
		if !extendsPrefix(c, prefix) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// extendsPrefix reports whether c starts with prefix and is not prefix
// itself; a candidate equal to the prefix is a no-op completion.
func extendsPrefix(c, prefix string) bool {
	return len(c) > len(prefix) && c[:len(prefix)] == prefix
}
