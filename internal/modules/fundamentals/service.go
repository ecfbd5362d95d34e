package fundamentals

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/clients/alphavantage"
	"github.com/ramalsaham/dashboard/internal/domain"
)

// StatementSource is the vendor boundary for fundamental statements
type StatementSource interface {
	FetchStatement(ctx context.Context, symbol string, kind domain.StatementKind) (*alphavantage.WideTable, error)
}

// Service is the fundamental statement normalizer
type Service struct {
	source StatementSource
	log    zerolog.Logger
}

// NewService creates a new fundamentals service
func NewService(source StatementSource, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		log:    log.With().Str("module", "fundamentals").Logger(),
	}
}

// Fetch retrieves and normalizes one statement kind. Every call is a
// fresh vendor fetch; nothing is cached between calls.
func (s *Service) Fetch(ctx context.Context, ticker string, kind domain.StatementKind) (domain.FundamentalStatement, error) {
	table, err := s.source.FetchStatement(ctx, ticker, kind)
	if err != nil {
		return domain.FundamentalStatement{}, err
	}

	return Normalize(ticker, kind, table)
}

// KindResult pairs one statement kind with its outcome
type KindResult struct {
	Statement domain.FundamentalStatement
	Err       error
}

// FetchAll fetches the three statement kinds concurrently. The kinds are
// independent vendor calls, so one failing never blocks the others; each
// entry carries its own outcome.
func (s *Service) FetchAll(ctx context.Context, ticker string) map[domain.StatementKind]KindResult {
	var mu sync.Mutex
	var wg sync.WaitGroup

	results := make(map[domain.StatementKind]KindResult, len(domain.StatementKinds))

	for _, kind := range domain.StatementKinds {
		wg.Add(1)
		go func(kind domain.StatementKind) {
			defer wg.Done()

			stmt, err := s.Fetch(ctx, ticker, kind)

			mu.Lock()
			results[kind] = KindResult{Statement: stmt, Err: err}
			mu.Unlock()
		}(kind)
	}

	wg.Wait()
	return results
}
