// Package config loads and watches the CodeSmith configuration.
//
// Configuration is read from a TOML file, overlaid with CODESMITH_*
// environment variables. A missing config file is not an error; defaults
// apply. A Watcher can reload the file on change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the full editor configuration.
type Config struct {
	Editor     EditorConfig     `toml:"editor"`
	AI         AIConfig         `toml:"ai"`
	Extensions ExtensionsConfig `toml:"extensions"`
	Logging    LoggingConfig    `toml:"logging"`
	Language   LanguageConfig   `toml:"language"`
}

// EditorConfig holds core editor settings.
type EditorConfig struct {
	TabWidth int `toml:"tab_width"`
}

// AIConfig holds completion provider settings.
type AIConfig struct {
	// Provider selects the completion backend: openai, anthropic, gemini.
	Provider string `toml:"provider"`
	Model    string `toml:"model"`

	// MaxSuggestions is the maximum number of completion candidates
	// requested from the provider.
	MaxSuggestions int `toml:"max_suggestions"`

	// ContextLimit bounds the preceding-text window sent with a request,
	// in characters.
	ContextLimit int `toml:"context_limit"`

	// TimeoutSeconds bounds the remote completion call.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// API keys come from the environment, never from the file.
	OpenAIKey    string `toml:"-"`
	AnthropicKey string `toml:"-"`
	GeminiKey    string `toml:"-"`
}

// ExtensionsConfig holds extension host settings.
type ExtensionsConfig struct {
	// Dir is the directory scanned for *.lua extensions.
	Dir string `toml:"dir"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LanguageConfig holds the lexical sets used by completion and navigation.
type LanguageConfig struct {
	// Reserved words seed the local completion vocabulary.
	Reserved []string `toml:"reserved"`

	// Definitions are the keywords that introduce a symbol definition.
	Definitions []string `toml:"definitions"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth: 4,
		},
		AI: AIConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			MaxSuggestions: 5,
			ContextLimit:   400,
			TimeoutSeconds: 10,
		},
		Extensions: ExtensionsConfig{
			Dir: defaultExtensionsDir(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Language: LanguageConfig{
			Reserved:    DefaultReserved(),
			Definitions: DefaultDefinitions(),
		},
	}
}

// DefaultReserved returns the default reserved-word set for the local
// completion vocabulary. It covers Go and Python since those are the
// languages the editor is most often pointed at.
func DefaultReserved() []string {
	return []string{
		// Go
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var",
		// Python
		"and", "as", "assert", "async", "await", "class", "def", "del",
		"elif", "except", "finally", "from", "global", "in", "is",
		"lambda", "nonlocal", "not", "or", "pass", "raise", "try",
		"while", "with", "yield",
	}
}

// DefaultDefinitions returns the default definition-introducing keywords
// for go-to-definition.
func DefaultDefinitions() []string {
	return []string{"func", "type", "var", "const", "def", "class"}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "codesmith", "config.toml")
	}
	return ""
}

func defaultExtensionsDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "codesmith", "extensions")
	}
	return "extensions"
}

// Load reads configuration from path, overlays environment variables, and
// returns the merged result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// applyEnv overlays CODESMITH_* environment variables onto the config.
// API keys also honor the conventional provider variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("CODESMITH_PROVIDER"); ok {
		cfg.AI.Provider = v
	}
	if v, ok := os.LookupEnv("CODESMITH_MODEL"); ok {
		cfg.AI.Model = v
	}
	if v, ok := os.LookupEnv("CODESMITH_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv("CODESMITH_LOG_FILE"); ok {
		cfg.Logging.File = v
	}
	if v, ok := os.LookupEnv("CODESMITH_EXTENSIONS_DIR"); ok {
		cfg.Extensions.Dir = v
	}
	if v, ok := os.LookupEnv("CODESMITH_MAX_SUGGESTIONS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AI.MaxSuggestions = n
		}
	}
	if v, ok := os.LookupEnv("CODESMITH_TIMEOUT_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AI.TimeoutSeconds = n
		}
	}

	cfg.AI.OpenAIKey = firstEnv("CODESMITH_OPENAI_KEY", "OPENAI_API_KEY")
	cfg.AI.AnthropicKey = firstEnv("CODESMITH_ANTHROPIC_KEY", "ANTHROPIC_API_KEY")
	cfg.AI.GeminiKey = firstEnv("CODESMITH_GEMINI_KEY", "GEMINI_API_KEY")
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the configuration for values the editor cannot run with.
func (c *Config) Validate() error {
	if c.AI.MaxSuggestions <= 0 {
		return fmt.Errorf("ai.max_suggestions must be positive, got %d", c.AI.MaxSuggestions)
	}
	if c.AI.ContextLimit <= 0 {
		return fmt.Errorf("ai.context_limit must be positive, got %d", c.AI.ContextLimit)
	}
	if c.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai.timeout_seconds must be positive, got %d", c.AI.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the remote completion timeout as a duration.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
