package shopping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientLine is one ingredient entry as it appears in a single recipe.
type IngredientLine struct {
	Name   string          `json:"name"`
	Unit   string          `json:"measurement_unit"`
	Amount decimal.Decimal `json:"amount"`
}

// AggregatedEntry is the merged total of one ingredient across all selected recipes.
type AggregatedEntry struct {
	Name        string          `json:"name"`
	Unit        string          `json:"measurement_unit"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// FormatAmount renders the total the way every export shows it: whole
// amounts of count units as integers, everything else with two decimals.
func (e AggregatedEntry) FormatAmount() string {
	if IsCountUnit(e.Unit) && e.TotalAmount.IsInteger() {
		return e.TotalAmount.StringFixed(0)
	}
	return e.TotalAmount.StringFixed(2)
}

// Label is the "<Name> (<Unit>)" part of a rendered line.
func (e AggregatedEntry) Label() string {
	if e.Unit == "" {
		return e.Name
	}
	return e.Name + " (" + e.Unit + ")"
}

// ShoppingListRequest is the ownership context of one export call.
type ShoppingListRequest struct {
	RequestID string
	UserID    string
	RecipeIDs []string
}

// NewRequest builds a request for userID, collapsing duplicate recipe ids.
func NewRequest(userID string, recipeIDs []string) ShoppingListRequest {
	seen := make(map[string]struct{}, len(recipeIDs))
	ids := make([]string, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ShoppingListRequest{
		RequestID: uuid.NewString(),
		UserID:    userID,
		RecipeIDs: ids,
	}
}

// ExportDocument is a rendered shopping list ready to be sent to the user.
type ExportDocument struct {
	Format      Format
	ContentType string
	Filename    string
	Body        []byte
	EntryCount  int
}
