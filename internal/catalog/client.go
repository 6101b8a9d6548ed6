// Package catalog provides the HTTP client for the remote genre catalog.
package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
)

// genreDocument is the wire form of a catalog entry.
type genreDocument struct {
	ID    string `json:"id"`
	Genre string `json:"genre"`
}

// Client fetches the genre catalog from the remote service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a catalog client for the given base URL.
// Rate limited to one request per second with a small burst; the sync engine
// calls at most once per reconciliation, so this only guards against
// misconfigured callers hammering the catalog.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:      logger,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// FetchGenres retrieves the full genre catalog ordered by label.
func (c *Client) FetchGenres(ctx context.Context) ([]*domain.Genre, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("orderBy", "genre")
	fetchURL := c.baseURL + "/genres?" + params.Encode()

	c.logger.Debug("fetching genre catalog", "url", fetchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: status %d", resp.StatusCode)
	}

	var docs []genreDocument
	if err := json.UnmarshalRead(resp.Body, &docs); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	genres := make([]*domain.Genre, 0, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			c.logger.Warn("skipping catalog entry with empty id", "label", doc.Genre)
			continue
		}
		genres = append(genres, &domain.Genre{
			RemoteID: doc.ID,
			Label:    doc.Genre,
		})
	}

	c.logger.Debug("genre catalog fetched", "count", len(genres))
	return genres, nil
}
