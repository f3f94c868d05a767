package shopping

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service runs the shopping list pipeline: extract, aggregate, sort, render.
// It keeps no state between requests.
type Service struct {
	extractor *Extractor
	log       *zap.Logger
	title     string
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTitle sets the header title used by formats that show one.
func WithTitle(title string) Option {
	return func(s *Service) { s.title = title }
}

// WithClock overrides the clock used for the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithConcurrency bounds the parallel ingredient fetches of one request.
func WithConcurrency(n int) Option {
	return func(s *Service) { s.extractor = NewExtractor(s.extractor.source, n) }
}

// NewService creates a Service reading recipes from source.
func NewService(source IngredientSource, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		extractor: NewExtractor(source, DefaultFetchConcurrency),
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate returns the merged, sorted entries for req without rendering them.
func (s *Service) Aggregate(ctx context.Context, req ShoppingListRequest) ([]AggregatedEntry, error) {
	if len(req.RecipeIDs) == 0 {
		return nil, ErrEmptyList
	}

	lines, err := s.extractor.Extract(ctx, req.RecipeIDs)
	if err != nil {
		return nil, err
	}

	entries, err := Aggregate(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ingredients: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyList
	}
	Sort(entries)

	s.log.Debug("Aggregated shopping list",
		zap.String("request_id", req.RequestID),
		zap.Int("recipes", len(req.RecipeIDs)),
		zap.Int("lines", len(lines)),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// BuildShoppingList aggregates the recipes of req and renders them in format.
func (s *Service) BuildShoppingList(ctx context.Context, req ShoppingListRequest, format Format) (*ExportDocument, error) {
	formatter, err := NewFormatter(format, Options{Title: s.title, GeneratedAt: s.now()})
	if err != nil {
		return nil, err
	}

	log := s.log.With(
		zap.String("request_id", req.RequestID),
		zap.String("user_id", req.UserID),
		zap.String("format", string(format)),
	)

	entries, err := s.Aggregate(ctx, req)
	if err != nil {
		log.Info("Shopping list not built", zap.Error(err))
		return nil, err
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, entries); err != nil {
		log.Error("Failed to render shopping list", zap.Error(err))
		return nil, fmt.Errorf("failed to render %s: %w", format, err)
	}

	log.Info("Built shopping list",
		zap.Int("entries", len(entries)),
		zap.Int("bytes", buf.Len()),
	)

	return &ExportDocument{
		Format:      format,
		ContentType: formatter.ContentType(),
		Filename:    "shopping_list." + formatter.Extension(),
		Body:        buf.Bytes(),
		EntryCount:  len(entries),
	}, nil
}
