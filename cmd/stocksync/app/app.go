// Package app provides the application context and dependency management
// for the stocksync CLI: configuration, logging, the supplier feed and the
// marketplace accounts commands run against.
package app

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"

	internalconfig "github.com/agentstation/stocksync/internal/config"
	_ "github.com/agentstation/stocksync/internal/marketplaces" // register adapters
	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/feed"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// App represents the stocksync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	out io.Writer

	// Lazy-initialized singletons
	mu       sync.Mutex
	settings *config.Config
	feed     feed.Provider
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		out:     os.Stdout,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Out returns the writer command results go to.
func (a *App) Out() io.Writer {
	return a.out
}

// Settings loads the sync configuration once: the YAML file (if any)
// overlaid with the environment.
func (a *App) Settings() (*config.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadSettings()
}

func (a *App) loadSettings() (*config.Config, error) {
	if a.settings != nil {
		return a.settings, nil
	}
	settings, err := internalconfig.Settings(a.config.ConfigFile)
	if err != nil {
		return nil, err
	}
	a.settings = settings
	return settings, nil
}

// Feed returns the supplier feed, creating it lazily. Parsed records are
// cached for the configured TTL.
func (a *App) Feed() (feed.Provider, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.feed != nil {
		return a.feed, nil
	}
	settings, err := a.loadSettings()
	if err != nil {
		return nil, err
	}

	var provider feed.Provider = feed.NewRemote(settings.Feed, &http.Client{Timeout: settings.Feed.Timeout})
	if settings.Feed.CacheTTL > 0 {
		provider = feed.NewCached(provider, settings.Feed.CacheTTL)
	}
	a.feed = provider
	return provider, nil
}

// Marketplaces builds the configured accounts of the given marketplaces.
func (a *App) Marketplaces(ids ...marketplace.ID) ([]marketplace.Marketplace, error) {
	settings, err := a.Settings()
	if err != nil {
		return nil, err
	}
	return marketplace.Build(settings, ids...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSettings sets the sync configuration instead of loading it.
func WithSettings(settings *config.Config) Option {
	return func(a *App) error {
		a.settings = settings
		return nil
	}
}

// WithOutput sets the writer for command results.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
