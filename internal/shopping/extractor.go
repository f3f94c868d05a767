package shopping

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultFetchConcurrency bounds parallel ingredient fetches per request.
const DefaultFetchConcurrency = 8

// IngredientSource resolves a recipe id into its ingredient lines.
// Implementations return *NotFoundError for unknown ids.
type IngredientSource interface {
	GetIngredients(ctx context.Context, recipeID string) ([]IngredientLine, error)
}

// Extractor flattens the ingredient lines of a set of recipes.
type Extractor struct {
	source      IngredientSource
	concurrency int
}

// NewExtractor creates an Extractor. A non-positive concurrency falls back
// to DefaultFetchConcurrency.
func NewExtractor(source IngredientSource, concurrency int) *Extractor {
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	return &Extractor{source: source, concurrency: concurrency}
}

// Extract fetches every recipe in parallel and returns all their lines.
// If any fetch fails the remaining ones are cancelled and no lines are
// returned, so a missing recipe can never produce a partial list.
func (e *Extractor) Extract(ctx context.Context, recipeIDs []string) ([]IngredientLine, error) {
	results := make([][]IngredientLine, len(recipeIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, id := range recipeIDs {
		g.Go(func() error {
			lines, err := e.source.GetIngredients(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to get ingredients for recipe %s: %w", id, err)
			}
			results[i] = lines
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	lines := make([]IngredientLine, 0, total)
	for _, r := range results {
		lines = append(lines, r...)
	}
	return lines, nil
}
