package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
)

// Item is one feed entry with provider-attached sentiment labels
type Item struct {
	Title            string    `json:"title"`
	PublishedAt      time.Time `json:"published_at"`
	Summary          string    `json:"summary"`
	TitleSentiment   string    `json:"sentiment_title"`
	SummarySentiment string    `json:"sentiment_summary"`
}

type feedResponse struct {
	Items []Item `json:"items"`
}

// Client fetches a sentiment-annotated news feed for a ticker. The feed
// is the provider's native reverse-chronological order; sentiment labels
// are pre-attached by the provider and passed through as-is.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new news feed client
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "newsfeed").Logger(),
	}
}

// Fetch returns up to limit feed items for a symbol
func (c *Client) Fetch(ctx context.Context, symbol string, limit int) ([]Item, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: news feed not configured", domain.ErrDataSourceUnavailable)
	}

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("limit", strconv.Itoa(limit))

	reqURL := c.baseURL + "/feed?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrDataSourceUnavailable, resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrDataSourceUnavailable, err)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse feed: %v", domain.ErrDataSourceUnavailable, err)
	}

	c.log.Debug().
		Str("symbol", symbol).
		Int("count", len(feed.Items)).
		Msg("Fetched news feed")

	return feed.Items, nil
}
