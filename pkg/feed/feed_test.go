package feed_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/feed"
	"github.com/agentstation/stocksync/pkg/inventory"
)

const sheet = `Остатки на складе;;
Дата;01.03.2024;
Код;Наименование;Количество;Цена
123;Часы A;>10;5'990.00 руб.
456;Часы B;1;1 299.99 руб.
;Итого;;
789.0;Часы C; 3 ;Нет цены
`

func csvConfig(url string) config.FeedConfig {
	cfg := config.Default().Feed
	cfg.URL = url
	cfg.Format = "csv"
	cfg.Entry = "ostatki.csv"
	cfg.Encoding = "windows-1251"
	cfg.HeaderRow = 2
	return cfg
}

func win1251(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func zipped(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

var wantRecords = []inventory.Record{
	{Code: "123", Quantity: ">10", Price: "5'990.00 руб."},
	{Code: "456", Quantity: "1", Price: "1 299.99 руб."},
	{Code: "789", Quantity: "3", Price: "Нет цены"},
}

func TestParseCSV(t *testing.T) {
	records, err := feed.Parse(win1251(t, sheet), csvConfig(""))
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestParseCSVCommaUTF8(t *testing.T) {
	data := "\ufeffКод,Количество,Цена\nA-1,5,100\n"
	cfg := csvConfig("")
	cfg.Encoding = "utf-8"
	cfg.HeaderRow = 0

	records, err := feed.Parse([]byte(data), cfg)
	require.NoError(t, err)
	assert.Equal(t, []inventory.Record{{Code: "A-1", Quantity: "5", Price: "100"}}, records)
}

func TestParseCSVErrors(t *testing.T) {
	cfg := csvConfig("")
	cfg.PriceColumn = "Стоимость"
	_, err := feed.Parse(win1251(t, sheet), cfg)
	assert.ErrorContains(t, err, `column "Стоимость" not found`)

	cfg = csvConfig("")
	cfg.HeaderRow = 50
	_, err = feed.Parse(win1251(t, sheet), cfg)
	assert.ErrorContains(t, err, "header row 50")

	cfg = csvConfig("")
	cfg.Encoding = "ebcdic"
	_, err = feed.Parse(win1251(t, sheet), cfg)
	assert.ErrorContains(t, err, "unsupported encoding")

	cfg = csvConfig("")
	cfg.Format = "pdf"
	_, err = feed.Parse(nil, cfg)
	assert.ErrorContains(t, err, "unsupported feed format")
}

func TestRemoteFetch(t *testing.T) {
	archive := zipped(t, map[string][]byte{
		"readme.txt":         []byte("ignored"),
		"export/OSTATKI.csv": win1251(t, sheet),
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/files/ostatki.zip", r.URL.Path)
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	remote := feed.NewRemote(csvConfig(server.URL+"/upload/files/ostatki.zip"), nil)
	assert.Equal(t, server.URL+"/upload/files/ostatki.zip", remote.Name())

	records, err := remote.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestRemoteFetchFirstEntryByExtension(t *testing.T) {
	archive := zipped(t, map[string][]byte{"remnants.csv": win1251(t, sheet)})
	path := filepath.Join(t.TempDir(), "ostatki.zip")
	require.NoError(t, os.WriteFile(path, archive, constants.FilePermissions))

	cfg := csvConfig("file://" + path)
	cfg.Entry = ""
	records, err := feed.NewRemote(cfg, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRemoteFetchBareSpreadsheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(win1251(t, sheet))
	}))
	defer server.Close()

	records, err := feed.NewRemote(csvConfig(server.URL), nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRemoteFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		stage   string
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			stage:   "download",
		},
		{
			name: "missing entry",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write(zipped(t, map[string][]byte{"other.csv": []byte("x")}))
			},
			stage: "archive",
		},
		{
			name: "bad header",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write(zipped(t, map[string][]byte{"ostatki.csv": []byte("a;b;c\n")}))
			},
			stage: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := feed.NewRemote(csvConfig(server.URL), nil).Fetch(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsFeedUnavailable(err))

			var feedErr *errors.FeedError
			require.ErrorAs(t, err, &feedErr)
			assert.Equal(t, tt.stage, feedErr.Stage)
		})
	}
}

func TestRemoteFetchMissingFile(t *testing.T) {
	_, err := feed.NewRemote(csvConfig("file:///nonexistent/ostatki.zip"), nil).Fetch(context.Background())
	assert.True(t, errors.IsFeedUnavailable(err))
}

type countingProvider struct {
	calls atomic.Int32
	fail  bool
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Fetch(context.Context) ([]inventory.Record, error) {
	p.calls.Add(1)
	if p.fail {
		return nil, errors.NewFeedError("counting", "download", errors.New("offline"))
	}
	return wantRecords, nil
}

func TestCached(t *testing.T) {
	p := &countingProvider{}
	cached := feed.NewCached(p, 0)
	assert.Equal(t, "counting", cached.Name())

	for range 3 {
		records, err := cached.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 3)
	}
	assert.EqualValues(t, 1, p.calls.Load())
	assert.Equal(t, 1, cached.ItemCount())

	cached.Invalidate()
	_, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.calls.Load())
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	p := &countingProvider{fail: true}
	cached := feed.NewCached(p, 0)

	_, err := cached.Fetch(context.Background())
	require.Error(t, err)
	_, err = cached.Fetch(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 2, p.calls.Load())
	assert.Zero(t, cached.ItemCount())
}

func TestStatic(t *testing.T) {
	s := &feed.Static{Records: wantRecords}
	records, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
	assert.Equal(t, "static", s.Name())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, strings.HasPrefix((&feed.Static{Label: "x"}).Name(), "x"))
}
