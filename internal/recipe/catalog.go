package recipe

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CatalogEntry is one row of an ingredient catalog file.
type CatalogEntry struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// LoadResult summarizes a catalog import.
type LoadResult struct {
	Read    int
	Created int
	// Total is the catalog size after the import.
	Total int
}

// ReadCatalogCSV reads "name,measurement_unit" rows. There is no header row.
func ReadCatalogCSV(r io.Reader) ([]CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var entries []CatalogEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		entry := CatalogEntry{
			Name:            strings.TrimSpace(record[0]),
			MeasurementUnit: strings.TrimSpace(record[1]),
		}
		if entry.Name == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadCatalogJSON reads a JSON array of {"name", "measurement_unit"} objects.
func ReadCatalogJSON(r io.Reader) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	kept := entries[:0]
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.MeasurementUnit = strings.TrimSpace(e.MeasurementUnit)
		if e.Name != "" {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// LoadCatalogFile imports an ingredient catalog into the repository. The
// file format is picked by extension: .json, anything else is read as CSV.
// Entries already in the catalog are left untouched.
func LoadCatalogFile(ctx context.Context, repo *Repository, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LoadResult{}, fmt.Errorf("catalog file %s does not exist, put it into the data directory: %w", path, err)
		}
		return LoadResult{}, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	var entries []CatalogEntry
	if strings.EqualFold(filepath.Ext(path), ".json") {
		entries, err = ReadCatalogJSON(f)
	} else {
		entries, err = ReadCatalogCSV(f)
	}
	if err != nil {
		return LoadResult{}, err
	}

	res := LoadResult{Read: len(entries)}
	for _, e := range entries {
		created, err := repo.AddIngredient(ctx, e.Name, e.MeasurementUnit)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		}
	}

	total, err := repo.CountIngredients(ctx)
	if err != nil {
		return res, err
	}
	res.Total = total
	return res, nil
}
