package complete

import (
	"context"
	"strings"
	"time"

	"codesmith/internal/complete/provider"
	"codesmith/internal/logger"
)

// Default engine limits, matching the completion contract.
const (
	DefaultMaxSuggestions = 5
	DefaultTimeout        = 10 * time.Second
)

// Result is the candidate set produced for one request. It carries the
// request so the caller can discard stale results: a result whose prefix
// no longer matches the cursor prefix must not be applied.
type Result struct {
	Request    Request
	Candidates []string
}

// Engine merges the remote completion source with the local vocabulary.
//
// Merge policy: if the remote source yields any candidate that strictly
// extends the prefix, that filtered remote set is the answer and local
// candidates are not appended. Only when the remote set is unusable
// (failure, empty, or nothing matching the prefix) does the engine fall
// back to the local vocabulary, sorted ascending. Remote failures degrade
// silently; the engine never returns an error.
type Engine struct {
	provider       provider.Provider
	reserved       []string
	maxSuggestions int
	timeout        time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxSuggestions sets how many candidates the remote source is asked
// for.
func WithMaxSuggestions(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSuggestions = n
		}
	}
}

// WithTimeout bounds the remote completion call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithReserved sets the reserved words seeding the local vocabulary.
func WithReserved(words []string) Option {
	return func(e *Engine) {
		e.reserved = words
	}
}

// New creates an Engine over the given remote provider. A nil provider is
// allowed and behaves as a source that always fails, leaving local-only
// completion.
func New(p provider.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider:       p,
		maxSuggestions: DefaultMaxSuggestions,
		timeout:        DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Candidates produces the candidate set for the request against the given
// buffer text. An empty prefix returns an empty result immediately,
// without contacting any source.
func (e *Engine) Candidates(ctx context.Context, req Request, bufferText string) Result {
	res := Result{Request: req}
	if req.Prefix == "" {
		return res
	}

	if remote := e.remote(ctx, req); len(remote) > 0 {
		res.Candidates = remote
		return res
	}

	res.Candidates = Vocabulary(bufferText, req.Prefix, e.reserved)
	return res
}

// remote queries the provider and returns the filtered candidate lines.
// Every failure mode collapses to nil.
func (e *Engine) remote(ctx context.Context, req Request) []string {
	if e.provider == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	blob, err := e.provider.Complete(ctx, provider.Prompt{
		Context:        req.Context,
		Prefix:         req.Prefix,
		MaxSuggestions: e.maxSuggestions,
	})
	if err != nil {
		logger.Debug("remote completion failed",
			"provider", e.provider.Name(), "prefix", req.Prefix, "error", err)
		return nil
	}

	return FilterPrefix(splitLines(blob), req.Prefix)
}

// splitLines splits a response blob into trimmed, non-empty lines.
func splitLines(blob string) []string {
	var out []string
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
