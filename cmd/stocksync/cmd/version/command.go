// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/cmd/application"
)

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for stocksync CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			w := app.Out()
			lines := []string{
				fmt.Sprintf("stocksync version %s", app.Version()),
				fmt.Sprintf("commit: %s", app.Commit()),
				fmt.Sprintf("built: %s", app.Date()),
				fmt.Sprintf("built by: %s", app.BuiltBy()),
				fmt.Sprintf("go version: %s", runtime.Version()),
				fmt.Sprintf("platform: %s/%s", runtime.GOOS, runtime.GOARCH),
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
