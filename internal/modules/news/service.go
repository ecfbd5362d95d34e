package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/clients/newsfeed"
	"github.com/ramalsaham/dashboard/internal/domain"
)

// DefaultLimit is the dashboard's "top N news" default
const DefaultLimit = 10

// Feed is the provider boundary for sentiment-annotated news
type Feed interface {
	Fetch(ctx context.Context, symbol string, limit int) ([]newsfeed.Item, error)
}

// Service is the news sentiment aggregator
type Service struct {
	feed Feed
	log  zerolog.Logger
}

// NewService creates a new news service
func NewService(feed Feed, log zerolog.Logger) *Service {
	return &Service{
		feed: feed,
		log:  log.With().Str("module", "news").Logger(),
	}
}

// Fetch returns up to limit news items in the provider's
// reverse-chronological order. When the feed holds fewer items than
// requested the digest carries everything available, its Partial flag
// is set, and the returned error wraps domain.ErrNoNewsAvailable so
// callers can surface the shortfall without discarding the items.
func (s *Service) Fetch(ctx context.Context, ticker string, limit int) (domain.NewsDigest, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	items, err := s.feed.Fetch(ctx, ticker, limit)
	if err != nil {
		return domain.NewsDigest{}, fmt.Errorf("news %s: %w", ticker, err)
	}

	if len(items) > limit {
		items = items[:limit]
	}

	digest := domain.NewsDigest{
		Symbol:  ticker,
		Items:   make([]domain.NewsItem, len(items)),
		Partial: len(items) < limit,
	}

	for i, item := range items {
		digest.Items[i] = domain.NewsItem{
			Title:            item.Title,
			PublishedAt:      item.PublishedAt,
			Summary:          item.Summary,
			TitleSentiment:   parseSentiment(item.TitleSentiment),
			SummarySentiment: parseSentiment(item.SummarySentiment),
		}
	}

	if digest.Partial {
		return digest, fmt.Errorf("%w: %d of %d requested items", domain.ErrNoNewsAvailable, len(items), limit)
	}

	return digest, nil
}

// parseSentiment normalizes a provider label; anything unrecognized
// reads as neutral rather than failing the whole digest
func parseSentiment(label string) domain.Sentiment {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive":
		return domain.SentimentPositive
	case "negative":
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
