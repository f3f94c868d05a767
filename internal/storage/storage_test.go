package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodgram/internal/shopping"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestDocumentStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewDocumentStore(filepath.Join(tempDir, "exports"))
	if err != nil {
		t.Fatalf("Failed to create DocumentStore: %v", err)
	}

	userID := "42"
	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(time.Hour)
	doc := &shopping.ExportDocument{
		Format: shopping.FormatText,
		Body:   []byte("Egg (pcs) — 2\n"),
	}
	var firstPath string

	t.Run("Latest-Empty", func(t *testing.T) {
		if _, _, err := store.Latest(userID, shopping.FormatText); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected os.ErrNotExist for user '%s', got %v", userID, err)
		}
	})

	t.Run("Save", func(t *testing.T) {
		path, err := store.Save(userID, doc, first)
		if err != nil {
			t.Fatalf("Failed to save document: %v", err)
		}
		want := filepath.Join(tempDir, "exports", "42_20240102T030405Z.txt")
		if path != want {
			t.Errorf("Expected path '%s', got '%s'", want, path)
		}
		if !fileExists(path) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", path)
		}
		firstPath = path
	})

	t.Run("SaveReplacesOlderVersion", func(t *testing.T) {
		newer := &shopping.ExportDocument{Format: shopping.FormatText, Body: []byte("Milk (ml) — 100.00\n")}
		if _, err := store.Save(userID, newer, second); err != nil {
			t.Fatalf("Failed to save document: %v", err)
		}
		if fileExists(firstPath) {
			t.Error("Expected the older version to be removed")
		}
		_, data, err := store.Latest(userID, shopping.FormatText)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if string(data) != string(newer.Body) {
			t.Errorf("Expected latest body %q, got %q", newer.Body, data)
		}
	})

	t.Run("FormatsAreIndependent", func(t *testing.T) {
		pdf := &shopping.ExportDocument{Format: shopping.FormatPDF, Body: []byte("%PDF-1.3")}
		if _, err := store.Save(userID, pdf, second); err != nil {
			t.Fatalf("Failed to save document: %v", err)
		}
		if _, _, err := store.Latest(userID, shopping.FormatText); err != nil {
			t.Errorf("Saving a pdf must not remove the text export: %v", err)
		}
	})

	t.Run("UserIDStaysInsideStore", func(t *testing.T) {
		path, err := store.Save("../evil", doc, first)
		if err != nil {
			t.Fatalf("Failed to save document: %v", err)
		}
		if filepath.Dir(path) != filepath.Join(tempDir, "exports") {
			t.Errorf("Expected file inside the store, got '%s'", path)
		}
	})
}

func TestDocumentStore_UserIsolation(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	users := []string{"alice_b", "alice-b", "alice", "alice/b", "[x", "*", "", "a%5Fb"}
	for _, u := range users {
		doc := &shopping.ExportDocument{Format: shopping.FormatText, Body: []byte("list of " + u)}
		if _, err := store.Save(u, doc, at); err != nil {
			t.Fatalf("Save(%q) failed: %v", u, err)
		}
	}

	for _, u := range users {
		_, data, err := store.Latest(u, shopping.FormatText)
		if err != nil {
			t.Errorf("Latest(%q) failed: %v", u, err)
			continue
		}
		if string(data) != "list of "+u {
			t.Errorf("Latest(%q) returned %q", u, data)
		}
	}

	t.Run("UnknownUser", func(t *testing.T) {
		if _, _, err := store.Latest("alice-", shopping.FormatText); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("StrayFilesIgnored", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(store.basePath, "alice_notes.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		_, data, err := store.Latest("alice", shopping.FormatText)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if string(data) != "list of alice" {
			t.Errorf("Expected alice's list, got %q", data)
		}
	})
}
