// Package syncer provides the sync and plan commands.
package syncer

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/cmd/application"
)

// Flags holds the sync command flags.
type Flags struct {
	Marketplaces []string
	DryRun       bool
	FailFast     bool
	Every        time.Duration
	Watch        bool
	Timeout      time.Duration
}

// NewCommand creates the sync command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Push feed stocks and prices to the marketplaces",
		Long: `Sync fetches the supplier feed once and then, for every configured account:

• lists the account's offers
• computes one stock update per offer (offers absent from the feed get 0)
• computes price updates for offers the feed lists with a usable price
• uploads both in batches sized to each endpoint's limit

A failed batch is reported and the next batch is still sent unless
--fail-fast is given. The command exits non-zero when anything failed.`,
		Example: `  stocksync sync                          # Sync every configured account
  stocksync sync --marketplace ozon       # Sync Ozon only
  stocksync sync --dry-run -o json        # Reconcile and batch without uploading
  stocksync sync --every 30m              # Repeat until interrupted`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags)
		},
	}

	addFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "reconcile and batch without submitting")
	cmd.Flags().DurationVar(&flags.Every, "every", 0, "repeat the sync at this interval until interrupted")
	cmd.Flags().BoolVar(&flags.Watch, "watch", false, "repeat the sync at the configured sync.interval")
	cmd.MarkFlagsMutuallyExclusive("every", "watch")

	return cmd
}

// NewPlanCommand creates the plan command: a dry-run sync.
func NewPlanCommand(app application.Application) *cobra.Command {
	flags := &Flags{DryRun: true}

	cmd := &cobra.Command{
		Use:     "plan",
		GroupID: "core",
		Short:   "Show what a sync would upload",
		Long: `Plan fetches the feed and every account's offers and reconciles them exactly
like sync does, then prints the per-account stock and price counts and the
batches that would be sent. Nothing is uploaded.`,
		Example: `  stocksync plan
  stocksync plan --marketplace yandex -o wide`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags)
		},
	}

	addFlags(cmd, flags)

	return cmd
}

func addFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringSliceVarP(&flags.Marketplaces, "marketplace", "m", nil, "marketplaces to sync: yandex, ozon (default all configured)")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "stop an account at its first failed batch")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "timeout for one run (default sync.timeout)")
}
