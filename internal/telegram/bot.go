package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/metrics"
	"foodgram/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const commandTimeout = 30 * time.Second

// Shopper is the part of the application the bot drives.
type Shopper interface {
	AddToCart(ctx context.Context, userID, recipeID string) error
	RemoveFromCart(ctx context.Context, userID, recipeID string) error
	ClearCart(ctx context.Context, userID string) (int64, error)
	Cart(ctx context.Context, userID string) ([]shopping.CartRecipe, error)
	PreviewForUser(ctx context.Context, userID string) ([]shopping.AggregatedEntry, error)
	ExportForUser(ctx context.Context, userID string, format shopping.Format) (*shopping.ExportDocument, error)
	LatestExport(userID string, format shopping.Format) (*shopping.ExportDocument, error)
	DailySummary(ctx context.Context, days int) ([]metrics.DailyExports, error)
	SysHealth() metrics.SysHealth
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot wraps the Telegram API around the shopping cart and export flow.
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  sender
	shopper Shopper
	cfg     *config.Config
	log     *zap.Logger
	allowed map[int64]struct{}
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, shopper Shopper, log *zap.Logger) (*Bot, error) {
	if err := cfg.RequireTelegram(); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Info("Authorized on account", zap.String("username", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Info("Webhook set", zap.String("description", resp.Description))

	return newBot(api, api, shopper, cfg, log), nil
}

func newBot(api *tgbotapi.BotAPI, s sender, shopper Shopper, cfg *config.Config, log *zap.Logger) *Bot {
	allowed := make(map[int64]struct{}, len(cfg.TelegramAllowedUserIDs))
	for _, id := range cfg.TelegramAllowedUserIDs {
		allowed[id] = struct{}{}
	}
	return &Bot{
		api:     api,
		sender:  s,
		shopper: shopper,
		cfg:     cfg,
		log:     log,
		allowed: allowed,
	}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.log.Warn("Error parsing update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		b.log.Warn("Unauthorized access attempt",
			zap.Int64("user_id", update.Message.From.ID),
			zap.String("username", update.Message.From.UserName),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	b.processMessage(ctx, update.Message)
}

// isAllowed admits everyone when no allow-list is configured.
func (b *Bot) isAllowed(userID int64) bool {
	if len(b.allowed) == 0 {
		return true
	}
	_, ok := b.allowed[userID]
	return ok
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	if !msg.IsCommand() {
		b.reply(chatID, helpText)
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, helpText)
	case "cart":
		b.handleCart(ctx, chatID, userID)
	case "add":
		b.handleCartChange(ctx, chatID, userID, args, true)
	case "remove":
		b.handleCartChange(ctx, chatID, userID, args, false)
	case "clear":
		b.handleClear(ctx, chatID, userID)
	case "list":
		b.handleList(ctx, chatID, userID)
	case "export":
		b.handleExport(ctx, chatID, userID, args, false)
	case "last":
		b.handleExport(ctx, chatID, userID, args, true)
	case "metrics":
		if msg.From.ID != b.cfg.AdminTelegramID {
			b.reply(chatID, "⛔ *Access Denied*: Admin only.")
			return
		}
		b.handleMetrics(ctx, chatID)
	default:
		b.reply(chatID, helpText)
	}
}

const helpText = "🛒 *Foodgram shopping list*\n\n" +
	"/add ID - put a recipe into your cart\n" +
	"/remove ID - take it out again\n" +
	"/cart - show the recipes in your cart\n" +
	"/clear - empty your cart\n" +
	"/list - preview the combined shopping list\n" +
	"/export txt|pdf|xlsx|html - download the shopping list\n" +
	"/last txt|pdf|xlsx|html - send your previous export again"

func (b *Bot) handleCart(ctx context.Context, chatID int64, userID string) {
	recipes, err := b.shopper.Cart(ctx, userID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatCartMarkdown(recipes))
}

func (b *Bot) handleCartChange(ctx context.Context, chatID int64, userID, recipeID string, add bool) {
	if recipeID == "" {
		b.reply(chatID, "Please give a recipe id, for example `/add 42`.")
		return
	}

	var err error
	if add {
		err = b.shopper.AddToCart(ctx, userID, recipeID)
	} else {
		err = b.shopper.RemoveFromCart(ctx, userID, recipeID)
	}
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	if add {
		b.reply(chatID, fmt.Sprintf("✅ Recipe %s added to your cart.", escape(recipeID)))
	} else {
		b.reply(chatID, fmt.Sprintf("🗑 Recipe %s removed from your cart.", escape(recipeID)))
	}
}

func (b *Bot) handleClear(ctx context.Context, chatID int64, userID string) {
	n, err := b.shopper.ClearCart(ctx, userID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("🧹 Removed %d recipes from your cart.", n))
}

func (b *Bot) handleList(ctx context.Context, chatID int64, userID string) {
	entries, err := b.shopper.PreviewForUser(ctx, userID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatShoppingListMarkdown(entries))
}

// handleExport sends the shopping list as a document. With latest set it
// resends the archived export instead of building a new one.
func (b *Bot) handleExport(ctx context.Context, chatID int64, userID, arg string, latest bool) {
	format := shopping.FormatText
	if arg != "" {
		f, err := shopping.ParseFormat(arg)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		format = f
	}

	var doc *shopping.ExportDocument
	var err error
	if latest {
		doc, err = b.shopper.LatestExport(userID, format)
	} else {
		doc, err = b.shopper.ExportForUser(ctx, userID, format)
	}
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	upload := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: doc.Filename, Bytes: doc.Body})
	if latest {
		upload.Caption = "🛒 Your previous shopping list"
	} else {
		upload.Caption = fmt.Sprintf("🛒 Shopping list, %d items", doc.EntryCount)
	}
	if _, err := b.sender.Send(upload); err != nil {
		b.log.Error("Failed to send document", zap.String("user_id", userID), zap.Error(err))
	}
}

func (b *Bot) handleMetrics(ctx context.Context, chatID int64) {
	summary, err := b.shopper.DailySummary(ctx, 7)
	if err != nil {
		b.log.Error("Failed to fetch metrics", zap.Error(err))
		b.reply(chatID, "❌ Error fetching metrics.")
		return
	}
	b.reply(chatID, formatMetricsMarkdown(summary, b.shopper.SysHealth()))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error("Failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) replyError(chatID int64, err error) {
	if shopping.StatusCode(err) >= http.StatusInternalServerError {
		b.log.Error("Command failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	b.reply(chatID, userMessage(err))
}

// userMessage turns a pipeline error into the text shown in the chat.
func userMessage(err error) string {
	var notFound *shopping.NotFoundError
	var invalid *shopping.InvalidAmountError

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("❓ Recipe %s does not exist.", escape(notFound.RecipeID))
	case errors.As(err, &invalid):
		return fmt.Sprintf("⚠️ Recipe data is broken: %s has an invalid amount.", escape(invalid.Name))
	case errors.Is(err, shopping.ErrEmptyList):
		return "🫙 Your shopping list is empty. Add recipes with /add."
	case errors.Is(err, shopping.ErrUnsupportedFormat):
		return "Unknown format. Use one of: txt, pdf, xlsx, html."
	case errors.Is(err, shopping.ErrAlreadyInCart):
		return "This recipe is already in your cart."
	case errors.Is(err, shopping.ErrNotInCart):
		return "This recipe is not in your cart."
	case errors.Is(err, os.ErrNotExist):
		return "📭 No earlier export in this format. Use /export first."
	default:
		return "❌ Something went wrong, please try again later."
	}
}

func formatCartMarkdown(recipes []shopping.CartRecipe) string {
	if len(recipes) == 0 {
		return "🧺 Your cart is empty. Add recipes with /add."
	}
	var sb strings.Builder
	sb.WriteString("🧺 *Your cart*\n\n")
	for _, r := range recipes {
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", escape(r.Name), escape(r.ID)))
	}
	return sb.String()
}

func formatShoppingListMarkdown(entries []shopping.AggregatedEntry) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("• %s — %s\n", escape(e.Label()), e.FormatAmount()))
	}
	return sb.String()
}

func formatMetricsMarkdown(summary []metrics.DailyExports, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Exports*\n")
	if len(summary) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range summary {
		sb.WriteString(fmt.Sprintf("• *%s*: %d exports, %d failed, %s\n",
			d.Date, d.Exports, d.Failures, metrics.FormatBytes(d.TotalBytes)))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", health.DatabaseSize))
	sb.WriteString(fmt.Sprintf("• Exports: %s in %d files\n", health.ExportsSize, health.ExportFiles))
	return sb.String()
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
