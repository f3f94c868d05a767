package app

import (
	"context"
	"fmt"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/metrics"
	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/storage"

	"go.uber.org/zap"
)

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	log *zap.Logger
	db  *database.DB

	recipeRepo   *recipe.Repository
	cartRepo     *shopping.CartRepository
	service      *shopping.Service
	metricsStore *metrics.Store
	documents    *storage.DocumentStore
	now          func() time.Time
}

// New opens the database and export directory named in cfg and wires the
// application on top of them.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	documents, err := storage.NewDocumentStore(cfg.ExportDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open export store: %w", err)
	}

	return NewApp(cfg, log, db, documents), nil
}

// NewApp creates and initializes a new App instance from already opened
// resources.
func NewApp(cfg *config.Config, log *zap.Logger, db *database.DB, documents *storage.DocumentStore) *App {
	recipeRepo := recipe.NewRepository(db.SQL)

	opts := []shopping.Option{shopping.WithTitle(cfg.ShoppingListTitle)}
	if cfg.FetchConcurrency > 0 {
		opts = append(opts, shopping.WithConcurrency(cfg.FetchConcurrency))
	}

	return &App{
		cfg:          cfg,
		log:          log,
		db:           db,
		recipeRepo:   recipeRepo,
		cartRepo:     shopping.NewCartRepository(db.SQL),
		service:      shopping.NewService(recipeRepo, log.Named("shopping"), opts...),
		metricsStore: metrics.NewStore(db.SQL),
		documents:    documents,
		now:          time.Now,
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}

// LoadIngredients imports an ingredient catalog file.
func (a *App) LoadIngredients(ctx context.Context, path string) (recipe.LoadResult, error) {
	res, err := recipe.LoadCatalogFile(ctx, a.recipeRepo, path)
	if err != nil {
		return res, fmt.Errorf("failed to load ingredients: %w", err)
	}
	a.log.Info("Ingredient catalog loaded",
		zap.String("path", path),
		zap.Int("read", res.Read),
		zap.Int("created", res.Created),
		zap.Int("catalog", res.Total),
	)
	return res, nil
}

// SeedRecipes stores the recipes of a JSON fixture file.
func (a *App) SeedRecipes(ctx context.Context, path string) (int, error) {
	n, err := recipe.SeedFile(ctx, a.recipeRepo, path)
	if err != nil {
		return 0, fmt.Errorf("failed to seed recipes: %w", err)
	}
	a.log.Info("Recipes seeded", zap.String("path", path), zap.Int("recipes", n))
	return n, nil
}

// AddToCart puts a recipe into the user's shopping cart.
func (a *App) AddToCart(ctx context.Context, userID, recipeID string) error {
	return a.cartRepo.Add(ctx, userID, recipeID)
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (a *App) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	return a.cartRepo.Remove(ctx, userID, recipeID)
}

// Cart lists the recipes in the user's shopping cart.
func (a *App) Cart(ctx context.Context, userID string) ([]shopping.CartRecipe, error) {
	return a.cartRepo.Recipes(ctx, userID)
}

// ClearCart empties the user's shopping cart and reports how many recipes
// were in it.
func (a *App) ClearCart(ctx context.Context, userID string) (int64, error) {
	n, err := a.cartRepo.Clear(ctx, userID)
	if err != nil {
		return 0, err
	}
	a.log.Info("Shopping cart cleared", zap.String("user_id", userID), zap.Int64("recipes", n))
	return n, nil
}

// Recipe returns a stored recipe with its ingredient amounts.
func (a *App) Recipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	return a.recipeRepo.Get(ctx, id)
}

// PreviewForUser aggregates the user's cart without rendering it.
func (a *App) PreviewForUser(ctx context.Context, userID string) ([]shopping.AggregatedEntry, error) {
	ids, err := a.cartRepo.RecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.service.Aggregate(ctx, shopping.NewRequest(userID, ids))
}

// ExportForUser renders the shopping list of everything in the user's cart.
func (a *App) ExportForUser(ctx context.Context, userID string, format shopping.Format) (*shopping.ExportDocument, error) {
	ids, err := a.cartRepo.RecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.ExportShoppingList(ctx, userID, ids, format)
}

// ExportShoppingList renders the shopping list for an explicit set of
// recipes, keeps the document as the user's latest export of that format
// and records the attempt.
func (a *App) ExportShoppingList(ctx context.Context, userID string, recipeIDs []string, format shopping.Format) (*shopping.ExportDocument, error) {
	req := shopping.NewRequest(userID, recipeIDs)
	start := a.now()

	doc, err := a.service.BuildShoppingList(ctx, req, format)
	if err != nil {
		a.recordExport(ctx, req, format, nil, a.now().Sub(start), err)
		return nil, err
	}

	path, err := a.documents.Save(userID, doc, start)
	if err != nil {
		err = fmt.Errorf("failed to store export: %w", err)
		a.recordExport(ctx, req, format, doc, a.now().Sub(start), err)
		return nil, err
	}
	a.recordExport(ctx, req, format, doc, a.now().Sub(start), nil)

	a.log.Debug("Export stored", zap.String("request_id", req.RequestID), zap.String("path", path))
	return doc, nil
}

// LatestExport returns the user's most recently archived document of a
// format without rebuilding it. It wraps os.ErrNotExist when there is none.
func (a *App) LatestExport(userID string, format shopping.Format) (*shopping.ExportDocument, error) {
	formatter, err := shopping.NewFormatter(format, shopping.Options{})
	if err != nil {
		return nil, err
	}
	_, body, err := a.documents.Latest(userID, format)
	if err != nil {
		return nil, err
	}
	return &shopping.ExportDocument{
		Format:      format,
		ContentType: formatter.ContentType(),
		Filename:    "shopping_list." + formatter.Extension(),
		Body:        body,
	}, nil
}

func (a *App) recordExport(ctx context.Context, req shopping.ShoppingListRequest, format shopping.Format, doc *shopping.ExportDocument, latency time.Duration, exportErr error) {
	m := metrics.ExportMetric{
		UserID:      req.UserID,
		Format:      string(format),
		RecipeCount: len(req.RecipeIDs),
		Latency:     latency,
		Outcome:     shopping.ErrorKind(exportErr),
	}
	if doc != nil {
		m.EntryCount = doc.EntryCount
		m.ByteSize = len(doc.Body)
	}
	if err := a.metricsStore.Record(ctx, m); err != nil {
		a.log.Warn("Failed to record export metric",
			zap.String("request_id", req.RequestID),
			zap.Error(err),
		)
	}
}

// DailySummary returns per-day export totals for the last N days.
func (a *App) DailySummary(ctx context.Context, days int) ([]metrics.DailyExports, error) {
	return a.metricsStore.DailySummary(ctx, days)
}

// CleanupMetrics removes export metrics older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	n, err := a.metricsStore.Cleanup(ctx, days)
	if err != nil {
		return 0, err
	}
	a.log.Info("Export metrics cleaned up", zap.Int("days", days), zap.Int64("removed", n))
	return n, nil
}

// SysHealth reports runtime stats and the size of the data files.
func (a *App) SysHealth() metrics.SysHealth {
	return metrics.GetSysHealth(a.cfg.DatabasePath, a.cfg.ExportDir)
}
