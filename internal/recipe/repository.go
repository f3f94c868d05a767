package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	db "foodgram/internal/recipe/recipe_db"
	"foodgram/internal/shopping"
)

// Repository is a database-backed repository for recipes and the
// ingredient catalog. It is the ingredient source of the shopping list.
type Repository struct {
	queries *db.Queries
	db      *sql.DB // Direct database access for transactions
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// GetIngredients returns the ingredient lines of a recipe in insertion order.
func (r *Repository) GetIngredients(ctx context.Context, recipeID string) ([]shopping.IngredientLine, error) {
	count, err := r.queries.RecipeExists(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check recipe: %w", err)
	}
	if count == 0 {
		return nil, &shopping.NotFoundError{RecipeID: recipeID}
	}

	rows, err := r.queries.ListRecipeIngredients(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}

	lines := make([]shopping.IngredientLine, 0, len(rows))
	for _, row := range rows {
		amount, err := shopping.ParseAmount(row.Amount)
		if err != nil {
			var invalid *shopping.InvalidAmountError
			if errors.As(err, &invalid) {
				invalid.Name = row.Name
				invalid.Unit = row.MeasurementUnit
			}
			return nil, err
		}
		lines = append(lines, shopping.IngredientLine{
			Name:   row.Name,
			Unit:   row.MeasurementUnit,
			Amount: amount,
		})
	}
	return lines, nil
}

// Get retrieves a recipe with its ingredients.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	dbRecipe, err := r.queries.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &shopping.NotFoundError{RecipeID: id}
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	rows, err := r.queries.ListRecipeIngredients(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}

	rec := &Recipe{
		ID:        dbRecipe.ID,
		Name:      dbRecipe.Name,
		AuthorID:  dbRecipe.AuthorID,
		CreatedAt: dbRecipe.CreatedAt,
	}
	for _, row := range rows {
		rec.Ingredients = append(rec.Ingredients, Ingredient{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          json.Number(row.Amount),
		})
	}
	return rec, nil
}

// Save inserts or replaces a recipe and its ingredient amounts in one
// transaction. Ingredients missing from the catalog are added to it.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	return r.SaveAll(ctx, []Recipe{rec})
}

// SaveAll saves several recipes atomically: either all of them are stored
// or none is.
func (r *Repository) SaveAll(ctx context.Context, recipes []Recipe) error {
	for _, rec := range recipes {
		for _, ing := range rec.Ingredients {
			if _, err := shopping.ParseAmount(ing.Amount.String()); err != nil {
				return fmt.Errorf("recipe %s, ingredient %s: %w", rec.ID, ing.Name, err)
			}
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	for _, rec := range recipes {
		if err := saveRecipe(ctx, q, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func saveRecipe(ctx context.Context, q *db.Queries, rec Recipe) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if err := q.UpsertRecipe(ctx, db.UpsertRecipeParams{
		ID:        rec.ID,
		Name:      rec.Name,
		AuthorID:  rec.AuthorID,
		CreatedAt: createdAt.UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save recipe %s: %w", rec.ID, err)
	}
	if err := q.DeleteRecipeIngredients(ctx, rec.ID); err != nil {
		return fmt.Errorf("failed to replace ingredients of recipe %s: %w", rec.ID, err)
	}

	for _, ing := range rec.Ingredients {
		ingredientID, err := upsertIngredient(ctx, q, ing.Name, ing.MeasurementUnit)
		if err != nil {
			return err
		}
		if err := q.InsertRecipeIngredient(ctx, db.InsertRecipeIngredientParams{
			RecipeID:     rec.ID,
			IngredientID: ingredientID,
			Amount:       ing.Amount.String(),
		}); err != nil {
			return fmt.Errorf("failed to add %s to recipe %s: %w", ing.Name, rec.ID, err)
		}
	}
	return nil
}

// AddIngredient adds a catalog ingredient unless it already exists.
// It reports whether a new row was created.
func (r *Repository) AddIngredient(ctx context.Context, name, unit string) (bool, error) {
	affected, err := r.queries.InsertIngredient(ctx, db.InsertIngredientParams{
		Name:            name,
		MeasurementUnit: unit,
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert ingredient %s: %w", name, err)
	}
	return affected > 0, nil
}

// CountIngredients returns the size of the ingredient catalog.
func (r *Repository) CountIngredients(ctx context.Context) (int, error) {
	count, err := r.queries.CountIngredients(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return int(count), nil
}

func upsertIngredient(ctx context.Context, q *db.Queries, name, unit string) (int64, error) {
	params := db.InsertIngredientParams{Name: name, MeasurementUnit: unit}
	if _, err := q.InsertIngredient(ctx, params); err != nil {
		return 0, fmt.Errorf("failed to insert ingredient %s: %w", name, err)
	}
	id, err := q.GetIngredientID(ctx, db.GetIngredientIDParams{Name: name, MeasurementUnit: unit})
	if err != nil {
		return 0, fmt.Errorf("failed to look up ingredient %s: %w", name, err)
	}
	return id, nil
}
