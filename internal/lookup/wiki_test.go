package lookup

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWikiClient_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports existence on exact title", func(t *testing.T) {
		// Given: a search endpoint returning the queried title
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "query", r.URL.Query().Get("action"))
			assert.Equal(t, "search", r.URL.Query().Get("list"))
			assert.Equal(t, "Coca-Cola", r.URL.Query().Get("srsearch"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "5", r.URL.Query().Get("srlimit"))

			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"Coca-Cola"},{"title":"Pepsi"}]}}`))
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, time.Second)

		// When: checking the term
		result, err := client.Exists(ctx, "Coca-Cola")

		// Then: it exists with the canonical title
		require.NoError(t, err)
		assert.True(t, result.Exists)
		assert.Equal(t, "Coca-Cola", result.CanonicalTitle)
	})

	t.Run("Substring titles count as a match", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"Coca-Cola Company"}]}}`))
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, time.Second)

		result, err := client.Exists(ctx, "coca-cola")

		require.NoError(t, err)
		assert.True(t, result.Exists)
		assert.Equal(t, "Coca-Cola Company", result.CanonicalTitle)
	})

	t.Run("Unrelated titles do not count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"List of beverages"}]}}`))
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, time.Second)

		result, err := client.Exists(ctx, "Somebrand")

		require.NoError(t, err)
		assert.False(t, result.Exists)
	})

	t.Run("Empty result set means not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, time.Second)

		result, err := client.Exists(ctx, "Nobody")

		require.NoError(t, err)
		assert.False(t, result.Exists)
	})

	t.Run("Non-2xx response is an error, not a hit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, time.Second)

		result, err := client.Exists(ctx, "Nike")

		require.Error(t, err)
		assert.False(t, result.Exists)
	})

	t.Run("Malformed JSON is an error, not a hit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>nope</html>`))
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, time.Second)

		result, err := client.Exists(ctx, "Nike")

		require.Error(t, err)
		assert.False(t, result.Exists)
	})

	t.Run("Timeout is an error, not a hit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
		}))
		defer server.Close()

		client := NewWikiClient(newTestLogger(), server.URL, 5, 10*time.Millisecond)

		result, err := client.Exists(ctx, "Nike")

		require.Error(t, err)
		assert.False(t, result.Exists)
	})
}

func TestTitleMatches(t *testing.T) {
	assert.True(t, titleMatches("Nike", "nike"))
	assert.True(t, titleMatches("Coca-Cola", "Coca-Cola Company"))
	assert.True(t, titleMatches("Coca-Cola Company", "Coca-Cola"))
	assert.False(t, titleMatches("Nike", "Adidas"))
	assert.False(t, titleMatches("", "Nike"))
}
