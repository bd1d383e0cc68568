// Package complete produces ranked completion candidates for the word
// being typed, merging an unreliable remote AI source with an
// always-available local vocabulary.
//
// Both sources are filtered to strict extensions of the trigger prefix.
// The remote source takes full precedence when it produces anything
// usable; otherwise the local set applies, sorted lexicographically. The
// engine never surfaces remote failures: the worst outcome of any failure
// is an empty candidate set.
package complete
