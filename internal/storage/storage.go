package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"foodgram/internal/shopping"
)

const timestampLayout = "20060102T150405Z"

// DocumentStore keeps the latest rendered shopping list of every user and
// format on disk, one file per version.
type DocumentStore struct {
	basePath string
}

// NewDocumentStore creates a new DocumentStore and ensures the base directory exists.
func NewDocumentStore(basePath string) (*DocumentStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &DocumentStore{basePath: basePath}, nil
}

// encodeUserID maps a user id onto a filename part, one to one. The result
// never contains a path separator or an underscore, so the first "_" of a
// filename always ends the user part.
func encodeUserID(userID string) string {
	return strings.ReplaceAll(url.PathEscape(userID), "_", "%5F")
}

// versionedPath returns the full path for a given user, format and version.
func (s *DocumentStore) versionedPath(userID string, format shopping.Format, at time.Time) string {
	filename := fmt.Sprintf("%s_%s.%s", encodeUserID(userID), at.UTC().Format(timestampLayout), format)
	return filepath.Join(s.basePath, filename)
}

// Save writes the document as the user's newest version of that format and
// removes older ones. It returns the written path.
func (s *DocumentStore) Save(userID string, doc *shopping.ExportDocument, at time.Time) (string, error) {
	if err := s.RemoveStaleVersions(userID, doc.Format); err != nil {
		return "", err
	}

	filePath := s.versionedPath(userID, doc.Format, at)
	if err := os.WriteFile(filePath, doc.Body, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return filePath, nil
}

// Latest returns the path and content of the user's newest document of a format.
func (s *DocumentStore) Latest(userID string, format shopping.Format) (string, []byte, error) {
	matches, err := s.versions(userID, format)
	if err != nil {
		return "", nil, err
	}
	if len(matches) == 0 {
		return "", nil, fmt.Errorf("no %s export for user %s: %w", format, userID, os.ErrNotExist)
	}
	// Timestamps sort lexicographically.
	sort.Strings(matches)
	latest := matches[len(matches)-1]

	data, err := os.ReadFile(latest)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read export file: %w", err)
	}
	return latest, data, nil
}

// RemoveStaleVersions removes all documents of one format saved for a user.
func (s *DocumentStore) RemoveStaleVersions(userID string, format shopping.Format) error {
	matches, err := s.versions(userID, format)
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}

func (s *DocumentStore) versions(userID string, format shopping.Format) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list export files: %w", err)
	}

	owner := encodeUserID(userID)
	suffix := "." + string(format)

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		user, rest, ok := strings.Cut(e.Name(), "_")
		if !ok || user != owner || !strings.HasSuffix(rest, suffix) {
			continue
		}
		if _, err := time.Parse(timestampLayout, strings.TrimSuffix(rest, suffix)); err != nil {
			continue
		}
		matches = append(matches, filepath.Join(s.basePath, e.Name()))
	}
	return matches, nil
}
