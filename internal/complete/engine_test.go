package complete

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"codesmith/internal/complete/provider"
)

// fakeProvider returns a canned blob or error and records the prompt.
type fakeProvider struct {
	blob string
	err  error

	got   provider.Prompt
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, p provider.Prompt) (string, error) {
	f.calls++
	f.got = p
	return f.blob, f.err
}

func TestEmptyPrefixIsNoOp(t *testing.T) {
	fake := &fakeProvider{blob: "foobar"}
	e := New(fake)

	res := e.Candidates(context.Background(), NewRequest("", "text", 0), "foo food")
	if len(res.Candidates) != 0 {
		t.Errorf("Candidates = %v, want none for empty prefix", res.Candidates)
	}
	if fake.calls != 0 {
		t.Error("empty prefix must not contact the remote source")
	}
}

func TestRemoteTakesPrecedence(t *testing.T) {
	fake := &fakeProvider{blob: "foobar\nfoobaz\nqux\n"}
	e := New(fake)

	// Buffer has local matches that must NOT be appended.
	res := e.Candidates(context.Background(), NewRequest("foo", "", 0), "foo food foolish")

	want := []string{"foobar", "foobaz"}
	if !reflect.DeepEqual(res.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", res.Candidates, want)
	}
}

func TestRemoteFilteringInvariant(t *testing.T) {
	fake := &fakeProvider{blob: "foo\nfoobar\n  foobaz  \n\nbar\n"}
	e := New(fake)

	res := e.Candidates(context.Background(), NewRequest("foo", "", 0), "")

	for _, c := range res.Candidates {
		if len(c) <= len("foo") || c[:3] != "foo" {
			t.Errorf("candidate %q violates prefix invariant", c)
		}
	}
	want := []string{"foobar", "foobaz"}
	if !reflect.DeepEqual(res.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", res.Candidates, want)
	}
}

func TestFallbackToLocalOnError(t *testing.T) {
	fake := &fakeProvider{err: errors.New("network down")}
	e := New(fake)

	res := e.Candidates(context.Background(), NewRequest("foo", "", 0), "foo food foobar")

	// Lexicographic ascending by code point: 'b' < 'd'.
	want := []string{"foobar", "food"}
	if !reflect.DeepEqual(res.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", res.Candidates, want)
	}
}

func TestFallbackWhenRemoteUnusable(t *testing.T) {
	// Remote answered, but nothing extends the prefix.
	fake := &fakeProvider{blob: "qux\nbar\nfoo\n"}
	e := New(fake)

	res := e.Candidates(context.Background(), NewRequest("foo", "", 0), "food")

	want := []string{"food"}
	if !reflect.DeepEqual(res.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", res.Candidates, want)
	}
}

func TestLocalIncludesReservedWords(t *testing.T) {
	fake := &fakeProvider{err: errors.New("down")}
	e := New(fake, WithReserved([]string{"func", "fallthrough", "for"}))

	res := e.Candidates(context.Background(), NewRequest("f", "", 0), "fmt")

	want := []string{"fallthrough", "fmt", "for", "func"}
	if !reflect.DeepEqual(res.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", res.Candidates, want)
	}
}

func TestLocalExcludesExactPrefix(t *testing.T) {
	fake := &fakeProvider{err: errors.New("down")}
	e := New(fake)

	res := e.Candidates(context.Background(), NewRequest("foo", "", 0), "foo foo foo")
	if len(res.Candidates) != 0 {
		t.Errorf("Candidates = %v, want none: a candidate equal to the prefix is a no-op", res.Candidates)
	}
}

func TestNilProviderFallsBackToLocal(t *testing.T) {
	e := New(nil)

	res := e.Candidates(context.Background(), NewRequest("ba", "", 0), "bar baz")
	want := []string{"bar", "baz"}
	if !reflect.DeepEqual(res.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", res.Candidates, want)
	}
}

func TestPromptCarriesRequest(t *testing.T) {
	fake := &fakeProvider{blob: "prefix_more"}
	e := New(fake, WithMaxSuggestions(3))

	req := NewRequest("prefix_", "some preceding text", 0)
	e.Candidates(context.Background(), req, "")

	if fake.got.Prefix != "prefix_" {
		t.Errorf("prompt Prefix = %q", fake.got.Prefix)
	}
	if fake.got.Context != "some preceding text" {
		t.Errorf("prompt Context = %q", fake.got.Context)
	}
	if fake.got.MaxSuggestions != 3 {
		t.Errorf("prompt MaxSuggestions = %d, want 3", fake.got.MaxSuggestions)
	}
}

func TestResultCarriesRequestIdentity(t *testing.T) {
	e := New(nil)
	req := NewRequest("foo", "", 0)

	res := e.Candidates(context.Background(), req, "food")
	if res.Request.ID != req.ID {
		t.Error("Result must carry the originating request for staleness checks")
	}
	if res.Request.Prefix != "foo" {
		t.Errorf("Result prefix = %q", res.Request.Prefix)
	}
}

func TestWithTimeout(t *testing.T) {
	e := New(nil, WithTimeout(2*time.Second))
	if e.timeout != 2*time.Second {
		t.Errorf("timeout = %s, want 2s", e.timeout)
	}

	// Non-positive values keep the default.
	e = New(nil, WithTimeout(0))
	if e.timeout != DefaultTimeout {
		t.Errorf("timeout = %s, want default", e.timeout)
	}
}
