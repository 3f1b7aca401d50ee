package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/logging"
)

// Remote downloads the feed archive from a URL and parses its spreadsheet.
// file:// URLs read a local archive. The downloaded payload may also be the
// bare spreadsheet instead of an archive.
type Remote struct {
	cfg    config.FeedConfig
	client *http.Client
}

var _ Provider = (*Remote)(nil)

// NewRemote creates a remote feed from configuration.
func NewRemote(cfg config.FeedConfig, client *http.Client) *Remote {
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = constants.FeedDownloadTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Remote{cfg: cfg, client: client}
}

// Name returns the feed URL.
func (r *Remote) Name() string {
	return r.cfg.URL
}

// Fetch downloads, unpacks and parses the feed.
func (r *Remote) Fetch(ctx context.Context) ([]inventory.Record, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	payload, err := r.download(ctx)
	if err != nil {
		return nil, errors.NewFeedError(r.cfg.URL, "download", err)
	}

	sheet, name := payload, r.cfg.URL
	if isZip(payload) {
		sheet, name, err = openEntry(payload, r.cfg.Entry, r.cfg.Format, constants.MaxFeedSize)
		if err != nil {
			return nil, errors.NewFeedError(r.cfg.URL, "archive", err)
		}
	}

	records, err := Parse(sheet, r.cfg)
	if err != nil {
		return nil, errors.NewFeedError(name, "parse", err)
	}

	logger.Info().
		Str("feed", r.cfg.URL).
		Str("entry", name).
		Int("bytes", len(payload)).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched supplier feed")

	return records, nil
}

// Parse reads spreadsheet bytes in the configured format.
func Parse(data []byte, cfg config.FeedConfig) ([]inventory.Record, error) {
	layout := Layout{
		HeaderRow: cfg.HeaderRow,
		Columns: Columns{
			Code:     cfg.CodeColumn,
			Quantity: cfg.QuantityColumn,
			Price:    cfg.PriceColumn,
		},
	}

	switch cfg.Format {
	case "xls", "":
		return ParseXLS(bytes.NewReader(data), cfg.Sheet, layout)
	case "csv":
		return ParseCSV(bytes.NewReader(data), cfg.Encoding, layout)
	default:
		return nil, fmt.Errorf("unsupported feed format %q", cfg.Format)
	}
}

func (r *Remote) download(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(r.cfg.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "file" {
		return os.ReadFile(u.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxFeedSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > constants.MaxFeedSize {
		return nil, fmt.Errorf("feed exceeds %d bytes", constants.MaxFeedSize)
	}
	return data, nil
}
