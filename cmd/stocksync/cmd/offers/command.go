// Package offers provides the offers command.
package offers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/cmd/application"
	"github.com/agentstation/stocksync/cmd/stocksync/cmd/syncer"
	"github.com/agentstation/stocksync/internal/output"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// NewCommand creates the offers command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "offers [marketplace...]",
		GroupID: "inspect",
		Short:   "List the offer identifiers of every account",
		Long: `Offers pages through the offer catalog of each configured account and
prints the identifiers a sync would reconcile against. Nothing is uploaded.`,
		Example: `  stocksync offers
  stocksync offers yandex
  stocksync offers ozon -o json`,
		ValidArgs: []string{marketplace.Yandex.String(), marketplace.Ozon.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), app, args)
		},
	}
}

// Execute lists the offers of the accounts of the named marketplaces.
func Execute(ctx context.Context, app application.Application, names []string) error {
	ids, err := syncer.ParseMarketplaces(names)
	if err != nil {
		return err
	}
	markets, err := app.Marketplaces(ids...)
	if err != nil {
		return err
	}

	lists := make([]output.OfferList, 0, len(markets))
	for _, m := range markets {
		accountCtx := logging.WithAccount(logging.WithMarketplace(ctx, m.ID().String()), m.Account())
		offers, err := marketplace.FetchOffers(accountCtx, m)
		if err != nil {
			return err
		}
		logging.FromContext(accountCtx).Info().Int("offers", offers.Len()).Msg("Offers fetched")
		lists = append(lists, output.OfferList{
			Marketplace: m.ID().String(),
			Account:     m.Account(),
			Offers:      offers.IDs(),
		})
	}

	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	if format.IsTable() {
		return formatter.Format(app.Out(), output.OffersTable(lists))
	}
	return formatter.Format(app.Out(), lists)
}
