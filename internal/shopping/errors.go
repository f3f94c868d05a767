package shopping

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyList is returned when there is nothing to export.
	ErrEmptyList = errors.New("shopping list is empty")
	// ErrUnsupportedFormat is returned for an unknown export format token.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrAlreadyInCart is returned when a recipe is added to a cart twice.
	ErrAlreadyInCart = errors.New("recipe already in shopping cart")
	// ErrNotInCart is returned when removing a recipe that is not in the cart.
	ErrNotInCart = errors.New("recipe not in shopping cart")
)

// NotFoundError reports a recipe id that does not resolve.
type NotFoundError struct {
	RecipeID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recipe %q not found", e.RecipeID)
}

// InvalidAmountError reports a malformed, non-finite or negative ingredient amount.
type InvalidAmountError struct {
	Name   string
	Unit   string
	Amount string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid amount %q: %s", e.Amount, e.Reason)
	}
	return fmt.Sprintf("invalid amount %q for %s (%s): %s", e.Amount, e.Name, e.Unit, e.Reason)
}

// StatusCode maps a pipeline error onto the HTTP status a transport should answer with.
func StatusCode(err error) int {
	var notFound *NotFoundError
	var invalid *InvalidAmountError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrEmptyList):
		// Empty state, not a fault.
		return http.StatusOK
	case errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, ErrAlreadyInCart),
		errors.Is(err, ErrNotInCart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorKind names the class of a pipeline error for logs and metrics.
func ErrorKind(err error) string {
	var notFound *NotFoundError
	var invalid *InvalidAmountError

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &invalid):
		return "invalid_amount"
	case errors.Is(err, ErrEmptyList):
		return "empty"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	default:
		return "error"
	}
}
