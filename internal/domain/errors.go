package domain

import "errors"

// Failure taxonomy for the analytics pipeline. Each component fails with
// one of these sentinels (wrapped for context) so callers can map every
// failure to a distinct, targeted message. No component retries; retry
// policy belongs to the caller.
var (
	// ErrInvalidRange means the requested start date is after the end date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrTickerNotFound means the market-data provider does not know the
	// symbol. Distinct from an empty series, which means no trading days
	// in the requested range.
	ErrTickerNotFound = errors.New("ticker not found")

	// ErrDataSourceUnavailable covers transport and provider-side failures.
	ErrDataSourceUnavailable = errors.New("data source unavailable")

	// ErrInsufficientData means the series has too few points for the
	// requested computation (metrics and trend fitting need at least two).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrStatementUnavailable means the fundamentals vendor returned zero
	// reporting periods (rate limit, delisted ticker). The fundamentals
	// provider is independent of the market-data provider, so this is
	// deliberately not ErrTickerNotFound.
	ErrStatementUnavailable = errors.New("fundamental statement unavailable")

	// ErrNoNewsAvailable signals that the feed held fewer items than
	// requested. Callers render the items that exist; this is a partial
	// result marker, not a hard failure.
	ErrNoNewsAvailable = errors.New("no news available")
)
