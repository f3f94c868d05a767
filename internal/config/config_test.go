package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"DATABASE_PATH", "EXPORT_DIR", "LOG_LEVEL", "LOG_DEVELOPMENT", "FETCH_CONCURRENCY", "PORT", "TELEGRAM_ALLOWED_USER_IDS", "ADMIN_TELEGRAM_ID"} {
			t.Setenv(key, "")
		}

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/foodgram.db" {
			t.Errorf("Expected DatabasePath to be 'data/foodgram.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.ExportDir != "data/exports" {
			t.Errorf("Expected ExportDir to be 'data/exports', got '%s'", cfg.ExportDir)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Expected LogLevel to be 'info', got '%s'", cfg.LogLevel)
		}
		if cfg.FetchConcurrency != 8 {
			t.Errorf("Expected FetchConcurrency to be 8, got %d", cfg.FetchConcurrency)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
		}
		if len(cfg.TelegramAllowedUserIDs) != 0 {
			t.Errorf("Expected no allowed users, got %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/x.db")
		t.Setenv("LOG_DEVELOPMENT", "true")
		t.Setenv("FETCH_CONCURRENCY", "3")
		t.Setenv("SHOPPING_LIST_TITLE", "Groceries")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "1, 2,,3")
		t.Setenv("ADMIN_TELEGRAM_ID", "2")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/x.db" {
			t.Errorf("Expected DatabasePath '/tmp/x.db', got '%s'", cfg.DatabasePath)
		}
		if !cfg.LogDevelopment {
			t.Error("Expected LogDevelopment to be true")
		}
		if cfg.FetchConcurrency != 3 {
			t.Errorf("Expected FetchConcurrency 3, got %d", cfg.FetchConcurrency)
		}
		if cfg.ShoppingListTitle != "Groceries" {
			t.Errorf("Expected title 'Groceries', got '%s'", cfg.ShoppingListTitle)
		}
		if diff := cmp.Diff([]int64{1, 2, 3}, cfg.TelegramAllowedUserIDs); diff != "" {
			t.Errorf("Allowed ids mismatch (-want +got):\n%s", diff)
		}
		if cfg.AdminTelegramID != 2 {
			t.Errorf("Expected AdminTelegramID 2, got %d", cfg.AdminTelegramID)
		}
	})

	t.Run("InvalidConcurrency", func(t *testing.T) {
		for _, v := range []string{"0", "-1", "many"} {
			t.Setenv("FETCH_CONCURRENCY", v)
			if _, err := NewFromEnv(); err == nil {
				t.Errorf("Expected an error for FETCH_CONCURRENCY=%q, got nil", v)
			}
		}
	})

	t.Run("InvalidAllowedIDs", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "1,abc")
		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for a malformed user id, got nil")
		}
	})
}

func TestRequireTelegram(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireTelegram()
	if err == nil {
		t.Fatal("Expected an error for missing token, got nil")
	}
	expectedError := "TELEGRAM_BOT_TOKEN environment variable not set"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}

	cfg.TelegramBotToken = "token"
	if err := cfg.RequireTelegram(); err == nil {
		t.Error("Expected an error for missing webhook URL, got nil")
	}

	cfg.TelegramWebhookURL = "https://bot.example.com"
	if err := cfg.RequireTelegram(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
