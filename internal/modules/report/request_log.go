package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/database"
)

// RequestLog records composite report requests for operational
// visibility. The analytics entities themselves stay transient; only
// the request outcome is kept, and the nightly prune trims old rows.
type RequestLog struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRequestLog creates a new request log repository
func NewRequestLog(db *database.DB, log zerolog.Logger) *RequestLog {
	return &RequestLog{
		db:  db,
		log: log.With().Str("component", "request_log").Logger(),
	}
}

// Migrate creates the request log table
func (r *RequestLog) Migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS report_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker TEXT NOT NULL,
			range_start TEXT NOT NULL,
			range_end TEXT NOT NULL,
			horizon_days INTEGER NOT NULL,
			failed_sections TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create report_requests table: %w", err)
	}
	return nil
}

// Record stores one report request outcome. Recording failures are
// logged and swallowed: telemetry must never fail a report.
func (r *RequestLog) Record(ticker string, start, end time.Time, horizonDays int, failedSections []string, duration time.Duration) {
	_, err := r.db.Exec(`
		INSERT INTO report_requests (ticker, range_start, range_end, horizon_days, failed_sections, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		ticker,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		horizonDays,
		strings.Join(failedSections, ","),
		duration.Milliseconds(),
	)
	if err != nil {
		r.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to record report request")
	}
}

// Prune deletes request rows older than the retention window and
// returns the number removed
func (r *RequestLog) Prune(retentionDays int) (int64, error) {
	result, err := r.db.Exec(`
		DELETE FROM report_requests
		WHERE created_at < datetime('now', ?)
	`, fmt.Sprintf("-%d days", retentionDays))
	if err != nil {
		return 0, fmt.Errorf("failed to prune report requests: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return deleted, nil
}
