package shopping

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, src IngredientSource, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(src, zaptest.NewLogger(t), opts...)
}

func TestService_BuildShoppingList(t *testing.T) {
	ctx := context.Background()

	t.Run("Text", func(t *testing.T) {
		src := &fakeSource{recipes: testRecipes()}
		s := newTestService(t, src)

		doc, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"a", "b"}), FormatText)
		if err != nil {
			t.Fatalf("BuildShoppingList failed: %v", err)
		}

		want := "egg (pcs) — 2\nflour (g) — 350.00\nmilk (ml) — 100.00\n"
		if string(doc.Body) != want {
			t.Errorf("Expected body:\n%s\ngot:\n%s", want, doc.Body)
		}
		if doc.Filename != "shopping_list.txt" {
			t.Errorf("Expected filename shopping_list.txt, got %s", doc.Filename)
		}
		if doc.ContentType != "text/plain; charset=utf-8" {
			t.Errorf("Unexpected content type %s", doc.ContentType)
		}
		if doc.EntryCount != 3 {
			t.Errorf("Expected 3 entries, got %d", doc.EntryCount)
		}
	})

	t.Run("Title", func(t *testing.T) {
		s := newTestService(t, &fakeSource{recipes: testRecipes()}, WithTitle("Weekend"))

		doc, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"b"}), FormatText)
		if err != nil {
			t.Fatalf("BuildShoppingList failed: %v", err)
		}
		want := "Weekend\nGenerated 2024-03-10 12:00 UTC\n\nflour (g) — 150.00\nmilk (ml) — 100.00\n"
		if string(doc.Body) != want {
			t.Errorf("Expected body:\n%s\ngot:\n%s", want, doc.Body)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		s := newTestService(t, &fakeSource{recipes: testRecipes()})
		for _, f := range Formats {
			first, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"a", "b"}), f)
			if err != nil {
				t.Fatalf("%s: %v", f, err)
			}
			second, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"b", "a"}), f)
			if err != nil {
				t.Fatalf("%s: %v", f, err)
			}
			if !bytes.Equal(first.Body, second.Body) {
				t.Errorf("%s output depends on recipe order", f)
			}
		}
	})

	t.Run("NoRecipes", func(t *testing.T) {
		src := &fakeSource{recipes: testRecipes()}
		s := newTestService(t, src)

		_, err := s.BuildShoppingList(ctx, NewRequest("u1", nil), FormatText)
		if !errors.Is(err, ErrEmptyList) {
			t.Fatalf("Expected ErrEmptyList, got %v", err)
		}
		if src.calls != 0 {
			t.Errorf("Expected no fetches, got %d", src.calls)
		}
	})

	t.Run("RecipesWithoutIngredients", func(t *testing.T) {
		s := newTestService(t, &fakeSource{recipes: testRecipes()})
		for _, f := range Formats {
			_, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"empty"}), f)
			if !errors.Is(err, ErrEmptyList) {
				t.Errorf("%s: expected ErrEmptyList, got %v", f, err)
			}
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newTestService(t, &fakeSource{recipes: testRecipes()})
		doc, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"a", "nope"}), FormatPDF)

		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Expected *NotFoundError, got %v", err)
		}
		if doc != nil {
			t.Error("Expected no document")
		}
		if StatusCode(err) != 404 {
			t.Errorf("Expected status 404, got %d", StatusCode(err))
		}
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		src := &fakeSource{recipes: map[string][]IngredientLine{"bad": {line("milk", "ml", "-5")}}}
		s := newTestService(t, src)

		_, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"bad"}), FormatText)
		var invalid *InvalidAmountError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected *InvalidAmountError, got %v", err)
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		src := &fakeSource{recipes: testRecipes()}
		s := newTestService(t, src)

		_, err := s.BuildShoppingList(ctx, NewRequest("u1", []string{"a"}), Format("docx"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
		}
		if src.calls != 0 {
			t.Errorf("Expected no fetches for an unknown format, got %d", src.calls)
		}
	})
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("u1", []string{"a", "b", "a", "c", "b"})
	if strings.Join(req.RecipeIDs, ",") != "a,b,c" {
		t.Errorf("Expected a,b,c, got %v", req.RecipeIDs)
	}
	if req.RequestID == "" {
		t.Error("Expected a request id")
	}
	if other := NewRequest("u1", nil); other.RequestID == req.RequestID {
		t.Error("Expected unique request ids")
	}
}

func TestStatusCodeAndKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"Nil", nil, 200, "ok"},
		{"NotFound", &NotFoundError{RecipeID: "x"}, 404, "not_found"},
		{"WrappedNotFound", errors.Join(errors.New("ctx"), &NotFoundError{RecipeID: "x"}), 404, "not_found"},
		{"InvalidAmount", &InvalidAmountError{Amount: "-1", Reason: "negative"}, 422, "invalid_amount"},
		{"Empty", ErrEmptyList, 200, "empty"},
		{"Format", ErrUnsupportedFormat, 400, "unsupported_format"},
		{"AlreadyInCart", ErrAlreadyInCart, 400, "error"},
		{"Other", errors.New("boom"), 500, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, got)
			}
			if got := ErrorKind(tt.err); got != tt.kind {
				t.Errorf("Expected kind %q, got %q", tt.kind, got)
			}
		})
	}
}
