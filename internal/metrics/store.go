package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "foodgram/internal/metrics/metrics_db"
)

// Outcomes that DailySummary does not count as failures.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
)

// ExportMetric records one shopping list export attempt.
type ExportMetric struct {
	UserID      string
	Format      string
	RecipeCount int
	EntryCount  int
	ByteSize    int
	Latency     time.Duration
	Outcome     string
	Timestamp   time.Time
}

// Store handles persistence of export metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	now     func() time.Time
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		now:     time.Now,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ExportMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	outcome := m.Outcome
	if outcome == "" {
		outcome = OutcomeOK
	}

	err := s.queries.InsertExportMetric(ctx, metricsdb.InsertExportMetricParams{
		UserID:      m.UserID,
		Format:      m.Format,
		RecipeCount: int64(m.RecipeCount),
		EntryCount:  int64(m.EntryCount),
		ByteSize:    int64(m.ByteSize),
		LatencyMs:   m.Latency.Milliseconds(),
		Outcome:     outcome,
		Timestamp:   ts.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record export metric: %w", err)
	}
	return nil
}

// DailyExports summarizes the exports of a single day.
type DailyExports struct {
	Date       string
	Exports    int
	TotalBytes int64
	Failures   int
}

// DailySummary retrieves per-day export totals for the last N days, newest first.
func (s *Store) DailySummary(ctx context.Context, days int) ([]DailyExports, error) {
	since := s.now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailyExports(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily exports: %w", err)
	}

	results := make([]DailyExports, 0, len(rows))
	for _, r := range rows {
		d := DailyExports{Exports: int(r.Count)}

		switch day := r.Day.(type) {
		case string:
			d.Date = day
		case []byte:
			d.Date = string(day)
		default:
			d.Date = "Unknown"
		}

		if r.TotalBytes.Valid {
			d.TotalBytes = int64(r.TotalBytes.Float64)
		}
		if r.Failures.Valid {
			d.Failures = int(r.Failures.Float64)
		}

		results = append(results, d)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// reports how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 0 {
		return 0, fmt.Errorf("days must not be negative, got %d", olderThanDays)
	}
	threshold := s.now().UTC().AddDate(0, 0, -olderThanDays)
	n, err := s.queries.CleanupExportMetrics(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up export metrics: %w", err)
	}
	return n, nil
}
