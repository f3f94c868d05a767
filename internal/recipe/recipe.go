package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Recipe is the part of a recipe the shopping list needs: its identity and
// ingredient amounts.
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AuthorID    string       `json:"author"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
}

// Ingredient is one catalog ingredient with the amount a recipe uses.
type Ingredient struct {
	Name            string      `json:"name"`
	MeasurementUnit string      `json:"measurement_unit"`
	Amount          json.Number `json:"amount"`
}

// ReadRecipes decodes a JSON array of recipes.
func ReadRecipes(r io.Reader) ([]Recipe, error) {
	var recipes []Recipe
	if err := json.NewDecoder(r).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	for i, rec := range recipes {
		if rec.ID == "" {
			return nil, fmt.Errorf("recipe at index %d has no id", i)
		}
	}
	return recipes, nil
}

// SeedFile reads recipes from a JSON fixture and saves them in one
// transaction. It returns how many recipes were stored.
func SeedFile(ctx context.Context, repo *Repository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open recipes file: %w", err)
	}
	defer f.Close()

	recipes, err := ReadRecipes(f)
	if err != nil {
		return 0, err
	}
	if err := repo.SaveAll(ctx, recipes); err != nil {
		return 0, err
	}
	return len(recipes), nil
}
