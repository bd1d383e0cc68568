// Package provider implements the remote completion source contract.
//
// A provider takes a system instruction, a bounded context window, and a
// prefix, and returns a multi-line text blob with one candidate per line,
// or fails. Callers treat every failure mode as "zero candidates";
// providers just return honest errors.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider errors.
var (
	// ErrUnknownProvider is returned for an unrecognized provider name.
	ErrUnknownProvider = errors.New("unknown completion provider")

	// ErrNotConfigured is returned when a provider is selected but has no
	// API key.
	ErrNotConfigured = errors.New("completion provider not configured")

	// ErrEmptyResponse is returned when the model replies with no text.
	ErrEmptyResponse = errors.New("empty completion response")
)

// SystemInstruction is the fixed instruction sent with every completion
// request.
const SystemInstruction = "You are a coding assistant providing code completions."

// Prompt describes one completion request to a provider.
type Prompt struct {
	// Context is the bounded window of text preceding the cursor.
	Context string

	// Prefix is the partial identifier being completed.
	Prefix string

	// MaxSuggestions is the number of candidates to ask for.
	MaxSuggestions int
}

// UserMessage renders the prompt the way the completion contract expects:
// context, then an instruction to return one suggestion per line.
func (p Prompt) UserMessage() string {
	return fmt.Sprintf(
		"Code context:\n%s\n\n"+
			"Provide up to %d code completion suggestions that continue the prefix '%s'.\n"+
			"Return each suggestion on its own line without additional text.",
		p.Context, p.MaxSuggestions, p.Prefix)
}

// Provider is a remote completion source.
type Provider interface {
	// Name identifies the provider (openai, anthropic, gemini).
	Name() string

	// Complete returns the raw multi-line completion blob.
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string

	OpenAIKey    string
	AnthropicKey string
	GeminiKey    string
}

// New returns the provider named in the config. Clients initialize lazily;
// a missing API key surfaces on the first Complete call, not here.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAI(cfg.OpenAIKey, cfg.Model), nil
	case "anthropic":
		return NewAnthropic(cfg.AnthropicKey, cfg.Model), nil
	case "gemini":
		return NewGemini(cfg.GeminiKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
