package database

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNewDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "foodgram.db")

	db, err := NewDB(dbPath, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"ingredients", "recipes", "recipe_ingredients", "shopping_cart", "export_metrics"} {
		var name string
		err := db.SQL.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist, got %v", table, err)
		}
	}

	t.Run("MigrationsAreIdempotent", func(t *testing.T) {
		if err := RunMigrations(dbPath, zaptest.NewLogger(t)); err != nil {
			t.Fatalf("Expected second migration run to be a no-op, got %v", err)
		}
	})
}
