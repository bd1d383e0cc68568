// Package app wires configuration, logging, the completion provider,
// the editor session, extensions, and the terminal UI into a running
// editor.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"codesmith/internal/complete"
	"codesmith/internal/complete/provider"
	"codesmith/internal/config"
	"codesmith/internal/editor"
	"codesmith/internal/extension"
	"codesmith/internal/logger"
	"codesmith/internal/navigate"
	"codesmith/internal/ui"
)

// Options are the command-line level settings.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// FilePath is an optional file to open at startup. A path that does
	// not exist yet opens an empty buffer bound to it.
	FilePath string

	// Screen substitutes the tcell screen, used by tests.
	Screen tcell.Screen
}

// App is the assembled editor.
type App struct {
	cfg        config.Config
	cfgPath    string
	session    *editor.Session
	ui         *ui.UI
	extensions *extension.Manager
	watcher    *config.Watcher
}

// New loads configuration and builds the full editor. No terminal or
// extension code runs yet; that happens in Run.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if err := logger.Configure(level, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	p, err := provider.New(provider.Config{
		Provider:     cfg.AI.Provider,
		Model:        cfg.AI.Model,
		OpenAIKey:    cfg.AI.OpenAIKey,
		AnthropicKey: cfg.AI.AnthropicKey,
		GeminiKey:    cfg.AI.GeminiKey,
	})
	if err != nil {
		return nil, err
	}

	engine := complete.New(p,
		complete.WithMaxSuggestions(cfg.AI.MaxSuggestions),
		complete.WithTimeout(cfg.AI.Timeout()),
		complete.WithReserved(cfg.Language.Reserved),
	)

	session := editor.New(
		editor.WithEngine(engine),
		editor.WithNavigator(navigate.New(cfg.Language.Definitions)),
		editor.WithContextLimit(cfg.AI.ContextLimit),
	)

	uiOpts := []ui.Option{ui.WithTabWidth(cfg.Editor.TabWidth)}
	if opts.Screen != nil {
		uiOpts = append(uiOpts, ui.WithScreen(opts.Screen))
	}
	frontend, err := ui.New(session, uiOpts...)
	if err != nil {
		return nil, err
	}
	session.SetNotifier(frontend)

	a := &App{
		cfg:        cfg,
		cfgPath:    cfgPath,
		session:    session,
		ui:         frontend,
		extensions: extension.NewManager(session),
	}
	a.registerBuiltins()

	if opts.FilePath != "" {
		if err := session.OpenFile(opts.FilePath); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			session.SetFilePath(opts.FilePath)
		}
	}

	return a, nil
}

// Session exposes the editor session, mainly for tests.
func (a *App) Session() *editor.Session { return a.session }

// Run loads extensions, starts the config watcher, and hands the
// terminal to the UI until the user quits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	a.loadExtensions()
	a.startWatcher()
	defer a.Shutdown()

	return a.ui.Run(ctx)
}

// Shutdown releases extension states and the config watcher. Safe to
// call more than once.
func (a *App) Shutdown() {
	a.extensions.Close()
	if a.watcher != nil {
		if err := a.watcher.Close(); !errors.Is(err, config.ErrWatcherClosed) && err != nil {
			logger.Warn("closing config watcher", "error", err)
		}
	}
}

// registerBuiltins adds the commands the editor ships with; they go
// through the same registry extensions use.
func (a *App) registerBuiltins() {
	s := a.session
	s.RegisterCommand("Word Count", func() {
		s.Notify(fmt.Sprintf("%d words", s.WordCount()))
	})
}

func (a *App) loadExtensions() {
	outcomes, err := a.extensions.LoadAll(a.cfg.Extensions.Dir)
	if err != nil {
		logger.Warn("loading extensions", "error", err)
		return
	}

	registered := 0
	for _, o := range outcomes {
		if o.Registered {
			registered++
		}
	}
	logger.Info("extensions loaded",
		"dir", a.cfg.Extensions.Dir, "found", len(outcomes), "registered", registered)
}

// startWatcher hot-reloads logging settings when the config file
// changes. The rest of the config stays fixed for the session.
func (a *App) startWatcher() {
	if a.cfgPath == "" {
		return
	}

	w, err := config.NewWatcher(a.cfgPath)
	if err != nil {
		logger.Debug("config watcher unavailable", "path", a.cfgPath, "error", err)
		return
	}
	w.OnReload(func(cfg config.Config) {
		if err := logger.Configure(cfg.Logging.Level, cfg.Logging.File); err != nil {
			logger.Warn("applying reloaded logging config", "error", err)
		}
	})
	a.watcher = w
}
