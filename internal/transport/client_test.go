package transport_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/internal/transport"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
)

type echo struct {
	Value string `json:"value"`
}

func TestClientDoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var in echo
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(echo{Value: strings.ToUpper(in.Value)})
	}))
	defer server.Close()

	c := transport.New("test", server.URL+"/", &transport.BearerAuth{Token: "tok"})

	var out echo
	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/v1/echo", echo{Value: "hi"}, &out))
	assert.Equal(t, "HI", out.Value)
	assert.Equal(t, "test", c.Marketplace())
}

func TestClientDoEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var out echo
	require.NoError(t, transport.New("test", server.URL, nil).Do(context.Background(), http.MethodGet, "/", nil, &out))
}

func TestClientDoStatusErrors(t *testing.T) {
	logging.DisableLoggingForTest(t)

	tests := []struct {
		name        string
		status      int
		body        string
		rateLimited bool
		unavailable bool
	}{
		{"bad request", http.StatusBadRequest, `{"error":"bad sku"}`, false, false},
		{"unauthorized", http.StatusUnauthorized, "", false, false},
		{"rate limited", http.StatusTooManyRequests, "slow down", true, false},
		{"server error", http.StatusBadGateway, "oops", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := transport.New("ozon", server.URL, nil).Do(context.Background(), http.MethodPost, "/x", map[string]int{}, nil)
			require.Error(t, err)
			assert.True(t, errors.IsProtocol(err))
			assert.Equal(t, tt.rateLimited, errors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, errors.Is(err, errors.ErrProviderUnavailable))

			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "ozon", apiErr.Marketplace)
			assert.Equal(t, "POST /x", apiErr.Endpoint)
			if tt.body != "" {
				assert.Equal(t, tt.body, apiErr.Message)
			} else {
				assert.Equal(t, "Unauthorized", apiErr.Message)
			}
		})
	}
}

func TestClientDoMalformedResponse(t *testing.T) {
	logging.DisableLoggingForTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	var out echo
	err := transport.New("yandex", server.URL, nil).Do(context.Background(), http.MethodGet, "/", nil, &out)
	assert.True(t, errors.IsProtocol(err))
}

func TestClientDoTimeout(t *testing.T) {
	logging.DisableLoggingForTest(t)

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := transport.New("yandex", server.URL, nil, transport.WithTimeout(50*time.Millisecond))
	err := c.Do(context.Background(), http.MethodGet, "/slow", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err), "got %v", err)
	assert.False(t, errors.IsProtocol(err))
}

func TestClientDoTransportError(t *testing.T) {
	logging.DisableLoggingForTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	err := transport.New("ozon", url, nil).Do(context.Background(), http.MethodGet, "/", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err), "got %v", err)
}

func TestClientDoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := transport.New("ozon", "http://127.0.0.1:1", nil).Do(ctx, http.MethodGet, "/", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err), "got %v", err)
}

func TestClientRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := transport.New("ozon", server.URL, nil, transport.WithRateLimit(20))
	start := time.Now()
	for range 3 {
		require.NoError(t, c.Do(context.Background(), http.MethodGet, "/", nil, nil))
	}
	assert.EqualValues(t, 3, calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}
