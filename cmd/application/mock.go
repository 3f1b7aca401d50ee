package application

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/feed"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// Mock is an Application for command tests. Unset funcs return zero values.
type Mock struct {
	SettingsFunc     func() (*config.Config, error)
	FeedFunc         func() (feed.Provider, error)
	MarketplacesFunc func(ids ...marketplace.ID) ([]marketplace.Marketplace, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	Writer           io.Writer
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Settings implements Application.
func (m *Mock) Settings() (*config.Config, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return config.Default(), nil
}

// Feed implements Application.
func (m *Mock) Feed() (feed.Provider, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc()
	}
	return &feed.Static{}, nil
}

// Marketplaces implements Application.
func (m *Mock) Marketplaces(ids ...marketplace.ID) ([]marketplace.Marketplace, error) {
	if m.MarketplacesFunc != nil {
		return m.MarketplacesFunc(ids...)
	}
	return nil, nil
}

// Logger implements Application.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat implements Application.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Out implements Application.
func (m *Mock) Out() io.Writer {
	if m.Writer != nil {
		return m.Writer
	}
	return os.Stdout
}

// Version implements Application.
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit implements Application.
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date implements Application.
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy implements Application.
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

var _ Application = (*Mock)(nil)
