package syncer

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agentstation/stocksync/cmd/application"
	"github.com/agentstation/stocksync/internal/output"
	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/marketplace"
	stocksync "github.com/agentstation/stocksync/pkg/sync"
)

// ErrFailures is returned when a run recorded any failure.
var ErrFailures = errors.New("sync finished with failures")

// Execute builds a Syncer from the application and runs it once, or
// repeatedly when flags ask for an interval.
func Execute(ctx context.Context, app application.Application, flags *Flags) error {
	s, interval, err := build(app, flags)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if interval > 0 {
		return loop(ctx, s, interval, func(result *stocksync.Result) error {
			return printResult(app.Out(), format, result)
		})
	}

	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if err := printResult(app.Out(), format, result); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%w: %s", ErrFailures, result.Summary())
	}
	return nil
}

// build resolves the accounts and options for flags.
func build(app application.Application, flags *Flags) (*stocksync.Syncer, time.Duration, error) {
	settings, err := app.Settings()
	if err != nil {
		return nil, 0, err
	}

	ids, err := ParseMarketplaces(flags.Marketplaces)
	if err != nil {
		return nil, 0, err
	}
	markets, err := app.Marketplaces(ids...)
	if err != nil {
		return nil, 0, err
	}
	if len(markets) == 0 {
		return nil, 0, errors.NewValidationError("marketplace", flags.Marketplaces, "no accounts configured for the selected marketplaces")
	}

	provider, err := app.Feed()
	if err != nil {
		return nil, 0, err
	}

	s, err := stocksync.New(settings, provider, markets, BuildOptions(flags)...)
	if err != nil {
		return nil, 0, err
	}

	interval := flags.Every
	if flags.Watch {
		interval = settings.Sync.Interval
	}
	if interval != 0 && interval < constants.MinSyncInterval {
		return nil, 0, errors.NewValidationError("every", interval,
			fmt.Sprintf("interval must be at least %s", constants.MinSyncInterval))
	}
	if err := config.CheckCacheTTL(settings.Feed.CacheTTL, interval); err != nil {
		return nil, 0, err
	}

	if interval > 0 {
		s.OnAccount(func(a stocksync.AccountResult) {
			logging.Debug().Str("account", a.Account).Msg(a.Summary())
		})
	}

	return s, interval, nil
}

// BuildOptions creates sync options from flags. Flags left at their zero
// value keep the configured behavior.
func BuildOptions(flags *Flags) []stocksync.Option {
	var opts []stocksync.Option

	if flags.DryRun {
		opts = append(opts, stocksync.WithDryRun(true))
	}
	if flags.FailFast {
		opts = append(opts, stocksync.WithFailFast(true))
	}
	if flags.Timeout > 0 {
		opts = append(opts, stocksync.WithTimeout(flags.Timeout))
	}

	return opts
}

// ParseMarketplaces validates marketplace names against the registered adapters.
func ParseMarketplaces(names []string) ([]marketplace.ID, error) {
	registered := marketplace.Registered()
	ids := make([]marketplace.ID, 0, len(names))
	for _, name := range names {
		id := marketplace.ID(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(registered, id) {
			return nil, errors.NewValidationError("marketplace", name,
				fmt.Sprintf("unknown marketplace, must be one of: %s", join(registered)))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func join(ids []marketplace.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}

// printResult writes the run report in format.
func printResult(w io.Writer, format output.Format, result *stocksync.Result) error {
	report := output.Report(result)
	formatter := output.NewFormatter(format)
	if format.IsTable() {
		return formatter.Format(w, report.Tables(format == output.FormatWide))
	}
	return formatter.Format(w, report)
}
