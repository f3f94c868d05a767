package metrics

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE export_metrics (id INTEGER PRIMARY KEY, user_id TEXT, format TEXT, recipe_count INTEGER, entry_count INTEGER, byte_size INTEGER, latency_ms INTEGER, outcome TEXT, timestamp DATETIME);
	`)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStore(db)
	s.now = func() time.Time { return now }
	return s
}

func TestStore_RecordAndSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	records := []ExportMetric{
		{UserID: "u1", Format: "txt", RecipeCount: 2, EntryCount: 5, ByteSize: 100, Latency: 3 * time.Millisecond},
		{UserID: "u1", Format: "pdf", RecipeCount: 2, EntryCount: 5, ByteSize: 900, Outcome: "not_found"},
		{UserID: "u1", Format: "txt", RecipeCount: 1, Outcome: OutcomeEmpty},
		{UserID: "u2", Format: "txt", ByteSize: 50, Timestamp: now.AddDate(0, 0, -1)},
		{UserID: "u3", Format: "txt", ByteSize: 70, Timestamp: now.AddDate(0, 0, -30)},
	}
	for _, m := range records {
		if err := s.Record(ctx, m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	summary, err := s.DailySummary(ctx, 7)
	if err != nil {
		t.Fatalf("DailySummary failed: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("Expected 2 days, got %d: %+v", len(summary), summary)
	}

	today := summary[0]
	if today.Date != "2024-03-10" {
		t.Errorf("Expected newest day first, got '%s'", today.Date)
	}
	if today.Exports != 3 {
		t.Errorf("Expected 3 exports today, got %d", today.Exports)
	}
	if today.TotalBytes != 1000 {
		t.Errorf("Expected 1000 bytes today, got %d", today.TotalBytes)
	}
	if today.Failures != 1 {
		t.Errorf("Expected 1 failure today, an empty list is not one, got %d", today.Failures)
	}
	if summary[1].Date != "2024-03-09" || summary[1].Exports != 1 {
		t.Errorf("Unexpected summary for yesterday: %+v", summary[1])
	}
}

func TestStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	for _, age := range []int{0, 5, 40, 90} {
		if err := s.Record(ctx, ExportMetric{UserID: "u", Format: "txt", Timestamp: now.AddDate(0, 0, -age)}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	removed, err := s.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 rows removed, got %d", removed)
	}

	removed, err = s.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected second cleanup to remove nothing, got %d", removed)
	}

	if _, err := s.Cleanup(ctx, -1); err == nil {
		t.Error("Expected an error for negative days")
	}
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "foodgram.db")
	if err := os.WriteFile(dbPath, make([]byte, 2048), 0644); err != nil {
		t.Fatal(err)
	}
	exports := filepath.Join(dir, "exports")
	if err := os.MkdirAll(exports, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(exports, "u1.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	h := GetSysHealth(dbPath, exports)
	if h.DatabaseSize != "2.0 KB" {
		t.Errorf("Expected database size '2.0 KB', got '%s'", h.DatabaseSize)
	}
	if h.ExportsSize != "5 B" || h.ExportFiles != 1 {
		t.Errorf("Expected one 5 B export, got %s in %d files", h.ExportsSize, h.ExportFiles)
	}
	if h.Goroutines < 1 {
		t.Errorf("Expected at least one goroutine, got %d", h.Goroutines)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1536:            "1.5 KB",
		3 * 1024 * 1024: "3.0 MB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
