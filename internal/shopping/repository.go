package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	shoppingdb "foodgram/internal/shopping/shopping_db"
)

// CartRecipe is a recipe currently in a user's shopping cart.
type CartRecipe struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartRepository handles persistence of users' shopping carts.
type CartRepository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewCartRepository creates a new shopping cart repository.
func NewCartRepository(d *sql.DB) *CartRepository {
	return &CartRepository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// Add puts a recipe into the user's cart.
func (r *CartRepository) Add(ctx context.Context, userID, recipeID string) error {
	count, err := r.queries.RecipeExists(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("failed to check recipe %s: %w", recipeID, err)
	}
	if count == 0 {
		return &NotFoundError{RecipeID: recipeID}
	}

	affected, err := r.queries.AddToCart(ctx, shoppingdb.AddToCartParams{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to add recipe to shopping cart: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyInCart
	}
	return nil
}

// Remove takes a recipe out of the user's cart.
func (r *CartRepository) Remove(ctx context.Context, userID, recipeID string) error {
	affected, err := r.queries.RemoveFromCart(ctx, shoppingdb.RemoveFromCartParams{
		UserID:   userID,
		RecipeID: recipeID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove recipe from shopping cart: %w", err)
	}
	if affected == 0 {
		return ErrNotInCart
	}
	return nil
}

// Recipes lists the cart in the order recipes were added.
func (r *CartRepository) Recipes(ctx context.Context, userID string) ([]CartRecipe, error) {
	rows, err := r.queries.ListCartRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping cart for user %s: %w", userID, err)
	}

	recipes := make([]CartRecipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, CartRecipe{ID: row.ID, Name: row.Name})
	}
	return recipes, nil
}

// RecipeIDs returns only the recipe ids of the user's cart.
func (r *CartRepository) RecipeIDs(ctx context.Context, userID string) ([]string, error) {
	recipes, err := r.Recipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(recipes))
	for _, rec := range recipes {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

// Clear empties the user's cart and reports how many recipes were removed.
func (r *CartRepository) Clear(ctx context.Context, userID string) (int64, error) {
	n, err := r.queries.ClearCart(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear shopping cart for user %s: %w", userID, err)
	}
	return n, nil
}
