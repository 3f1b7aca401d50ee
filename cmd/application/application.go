// Package application provides the application interface for stocksync commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            provider, err := app.Feed()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use provider
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    FeedFunc: func() (feed.Provider, error) {
//	        return &feed.Static{Records: records}, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/feed"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// Application provides the application interface that commands need.
// The App struct from cmd/stocksync/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Settings returns the loaded (not yet validated) sync configuration.
	Settings() (*config.Config, error)

	// Feed returns the supplier feed provider. The same provider is returned
	// on every call, so its cache survives between runs.
	Feed() (feed.Provider, error)

	// Marketplaces builds the configured accounts of the given marketplaces,
	// or of every marketplace when ids is empty.
	Marketplaces(ids ...marketplace.ID) ([]marketplace.Marketplace, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Out is where command results are written.
	Out() io.Writer

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
