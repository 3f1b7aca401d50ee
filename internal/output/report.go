package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/sync"
)

// RunReport is the serializable view of a sync run.
type RunReport struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	StartedAt string          `json:"started_at" yaml:"started_at"`
	Duration  string          `json:"duration" yaml:"duration"`
	DryRun    bool            `json:"dry_run" yaml:"dry_run"`
	Feed      string          `json:"feed" yaml:"feed"`
	Records   int             `json:"records" yaml:"records"`
	Summary   string          `json:"summary" yaml:"summary"`
	Accounts  []AccountReport `json:"accounts" yaml:"accounts"`
	Failures  []FailureReport `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// AccountReport is one row per marketplace account.
type AccountReport struct {
	Marketplace   string `json:"marketplace" yaml:"marketplace"`
	Account       string `json:"account" yaml:"account"`
	Warehouse     string `json:"warehouse,omitempty" yaml:"warehouse,omitempty"`
	Offers        int    `json:"offers" yaml:"offers"`
	Stocks        int    `json:"stocks" yaml:"stocks"`
	InStock       int    `json:"in_stock" yaml:"in_stock"`
	Prices        int    `json:"prices" yaml:"prices"`
	Batches       int    `json:"batches" yaml:"batches"`
	FailedBatches int    `json:"failed_batches" yaml:"failed_batches"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FailureReport is one recorded failure.
type FailureReport struct {
	Marketplace string `json:"marketplace" yaml:"marketplace"`
	Account     string `json:"account" yaml:"account"`
	Kind        string `json:"kind" yaml:"kind"`
	Batch       string `json:"batch" yaml:"batch"`
	Error       string `json:"error" yaml:"error"`
}

// Report converts a sync result into its serializable view.
func Report(r *sync.Result) RunReport {
	report := RunReport{
		RunID:     r.RunID,
		StartedAt: r.StartedAt.Format(constants.TimeFormatISO8601),
		Duration:  r.Duration().Round(time.Millisecond).String(),
		DryRun:    r.DryRun,
		Feed:      r.Feed,
		Records:   r.Records,
		Summary:   r.Summary(),
		Accounts:  make([]AccountReport, 0, len(r.Accounts)),
	}

	for _, a := range r.Accounts {
		row := AccountReport{
			Marketplace:   a.Marketplace.String(),
			Account:       a.Account,
			Warehouse:     a.Warehouse,
			Offers:        a.Offers,
			Stocks:        a.Stocks.Records,
			InStock:       a.Stocks.InStock,
			Prices:        a.Prices.Records,
			Batches:       len(a.Stocks.Batches) + len(a.Prices.Batches),
			FailedBatches: a.FailedBatches(),
		}
		if a.Err != nil {
			row.Error = a.Err.Error()
			report.Failures = append(report.Failures, failure(a, "account", "", a.Err))
		}
		report.Accounts = append(report.Accounts, row)

		report.Failures = append(report.Failures, phaseFailures(a, sync.KindStocks, a.Stocks)...)
		report.Failures = append(report.Failures, phaseFailures(a, sync.KindPrices, a.Prices)...)
	}

	return report
}

func phaseFailures(a sync.AccountResult, kind string, p sync.PhaseResult) []FailureReport {
	var out []FailureReport
	if p.Err != nil {
		out = append(out, failure(a, kind, "", p.Err))
	}
	for _, b := range p.Batches {
		if b.Err != nil {
			out = append(out, failure(a, kind, fmt.Sprintf("%d/%d", b.Index+1, len(p.Batches)), b.Err))
		}
	}
	return out
}

func failure(a sync.AccountResult, kind, batch string, err error) FailureReport {
	return FailureReport{
		Marketplace: a.Marketplace.String(),
		Account:     a.Account,
		Kind:        kind,
		Batch:       batch,
		Error:       err.Error(),
	}
}

// Tables renders the report as tables: accounts, then failures if any.
// Wide output adds the run header.
func (r RunReport) Tables(wide bool) []Data {
	var out []Data

	if wide {
		out = append(out, Data{
			Headers: []string{"Property", "Value"},
			Rows: [][]string{
				{"Run ID", r.RunID},
				{"Started", r.StartedAt},
				{"Duration", r.Duration},
				{"Feed", r.Feed},
				{"Records", strconv.Itoa(r.Records)},
				{"Dry Run", strconv.FormatBool(r.DryRun)},
			},
		})
	}

	accounts := Data{
		Headers: []string{"Marketplace", "Account", "Warehouse", "Offers", "Stocks", "In Stock", "Prices", "Batches", "Failed"},
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft,
			AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight,
		},
	}
	for _, a := range r.Accounts {
		accounts.Rows = append(accounts.Rows, []string{
			a.Marketplace, a.Account, a.Warehouse,
			strconv.Itoa(a.Offers),
			strconv.Itoa(a.Stocks),
			strconv.Itoa(a.InStock),
			strconv.Itoa(a.Prices),
			strconv.Itoa(a.Batches),
			strconv.Itoa(a.FailedBatches),
		})
	}
	out = append(out, accounts)

	if len(r.Failures) > 0 {
		out = append(out, Data{
			Headers: []string{"Marketplace", "Account", "Kind", "Batch", "Error"},
			Rows:    failureRows(r.Failures),
		})
	}

	return out
}

func failureRows(failures []FailureReport) [][]string {
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Marketplace, f.Account, f.Kind, f.Batch, f.Error})
	}
	return rows
}

// OfferList is the offers of one account.
type OfferList struct {
	Marketplace string   `json:"marketplace" yaml:"marketplace"`
	Account     string   `json:"account" yaml:"account"`
	Offers      []string `json:"offers" yaml:"offers"`
}

// OffersTable renders offer lists as a two-column table per account.
func OffersTable(lists []OfferList) Data {
	data := Data{Headers: []string{"Marketplace", "Account", "Offer"}}
	for _, l := range lists {
		for _, id := range l.Offers {
			data.Rows = append(data.Rows, []string{l.Marketplace, l.Account, id})
		}
	}
	return data
}

// RecordsTable renders feed records.
func RecordsTable(records []inventory.Record) Data {
	data := Data{
		Headers:         []string{"Code", "Quantity", "Price", "Normalized Price"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
	for _, rec := range records {
		data.Rows = append(data.Rows, []string{rec.Code, rec.Quantity, rec.Price, inventory.NormalizePrice(rec.Price)})
	}
	return data
}
