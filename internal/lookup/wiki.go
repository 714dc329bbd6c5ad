// Package lookup implements the external encyclopedia fallback: a MediaWiki
// style search used only when the local dictionary has no match for a word.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://en.wikipedia.org/w/api.php"
	DefaultLimit   = 5
)

// Result - outcome of one existence check. A failed request never surfaces
// as Exists=true; callers must treat a returned error the same as not found.
type Result struct {
	Exists         bool
	CanonicalTitle string
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// WikiClient - external fallback lookup over HTTP.
type WikiClient struct {
	logger  *slog.Logger
	baseURL string
	limit   int
	client  *http.Client
}

func NewWikiClient(logger *slog.Logger, baseURL string, limit int, timeout time.Duration) *WikiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &WikiClient{
		logger:  logger.With("component", "lookup"),
		baseURL: baseURL,
		limit:   limit,
		client:  &http.Client{Timeout: timeout},
	}
}

// Exists - searches the encyclopedia for term and reports whether one of the
// returned titles matches it. The round trip is bounded by the client
// timeout and the passed context.
func (that *WikiClient) Exists(ctx context.Context, term string) (Result, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("list", "search")
	query.Set("srsearch", term)
	query.Set("format", "json")
	query.Set("srlimit", strconv.Itoa(that.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{}, fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	for _, hit := range payload.Query.Search {
		if titleMatches(term, hit.Title) {
			that.logger.Debug("external lookup hit", "term", term, "title", hit.Title)

			return Result{Exists: true, CanonicalTitle: hit.Title}, nil
		}
	}

	return Result{}, nil
}

// titleMatches - a returned title counts as the queried brand when it equals
// the query ignoring case, or when one is a substring of the other (covers
// variants like "Coca-Cola" vs "Coca-Cola Company").
func titleMatches(term, title string) bool {
	left := strings.ToLower(strings.TrimSpace(term))
	right := strings.ToLower(strings.TrimSpace(title))

	if left == "" || right == "" {
		return false
	}

	return left == right || strings.Contains(right, left) || strings.Contains(left, right)
}
