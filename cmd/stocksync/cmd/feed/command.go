// Package feed provides the feed command.
package feed

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/cmd/application"
	"github.com/agentstation/stocksync/internal/output"
	"github.com/agentstation/stocksync/pkg/inventory"
)

// NewCommand creates the feed command.
func NewCommand(app application.Application) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "feed",
		GroupID: "inspect",
		Short:   "Download and print the supplier feed",
		Long: `Feed downloads the supplier remnants archive, parses the spreadsheet and
prints every record with its raw quantity code, raw price and the price a
sync would upload.`,
		Example: `  stocksync feed
  stocksync feed --limit 20
  stocksync feed -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most this many records (0 for all)")

	return cmd
}

// Execute fetches the feed and prints up to limit records.
func Execute(ctx context.Context, app application.Application, limit int) error {
	provider, err := app.Feed()
	if err != nil {
		return err
	}
	records, err := provider.Fetch(ctx)
	if err != nil {
		return err
	}
	app.Logger().Info().Str("feed", provider.Name()).Int("records", len(records)).Msg("Feed fetched")

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	if format.IsTable() {
		return formatter.Format(app.Out(), output.RecordsTable(records))
	}
	if records == nil {
		records = []inventory.Record{}
	}
	return formatter.Format(app.Out(), records)
}
