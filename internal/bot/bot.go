// Package bot implements the Telegram front end. A Coordinator owns the bot
// lifecycle and a long-polling loop that dispatches chat commands to the
// report engine.
package bot

import (
	"context"
	"fmt"
	"sync"

	"reporter/internal/config"
	"reporter/internal/report"
	"reporter/pkg/logger"
	"reporter/pkg/serrors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// State describes the lifecycle of the Telegram front end. The transition
// from NotStarted to Running happens at most once per process.
type State string

const (
	// StateNotStarted means Start has not been called, or failed.
	StateNotStarted State = "not-started"
	// StateRunning means the bot is connected and polling for updates.
	StateRunning State = "running"
)

// Options configure the Telegram front end.
type Options struct {
	// Token authenticates against the Telegram Bot API.
	Token string
	// UpdateTimeout is the long-polling timeout in seconds.
	UpdateTimeout int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Token:         cfg.Telegram.BotToken,
		UpdateTimeout: 30,
	}
}

// sender is the subset of the Telegram client used when answering commands.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Coordinator owns the bot lifecycle. It starts disconnected; Start connects
// to the Telegram API and launches the polling loop. Starting twice is
// rejected with serrors.ErrAlreadyStarted so callers can treat it as a
// no-op with a warning rather than a failure.
type Coordinator struct {
	options  Options
	reporter report.Reporter

	mu     sync.Mutex
	state  State
	api    *tgbotapi.BotAPI
	cancel context.CancelFunc
}

// New creates a Coordinator in the NotStarted state.
func New(reporter report.Reporter, options Options) *Coordinator {
	return &Coordinator{
		options:  options,
		reporter: reporter,
		state:    StateNotStarted,
	}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Start connects to the Telegram API and launches the polling loop. It
// returns serrors.ErrAlreadyStarted if the bot is already running, and a
// connection error (for example an invalid token) without changing state.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		return serrors.With(serrors.ErrAlreadyStarted, "telegram bot is already running")
	}

	api, err := tgbotapi.NewBotAPI(c.options.Token)
	if err != nil {
		return fmt.Errorf("could not connect to telegram: %w", err)
	}

	c.api = api
	c.state = StateRunning

	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel

	logger.Info(ctx, "telegram bot listening for commands", zap.String("username", api.Self.UserName))

	go c.poll(pollCtx)

	return nil
}

// Stop terminates the polling loop. It is safe to call at any time, including
// before Start.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.api.StopReceivingUpdates()
	}
}

// poll consumes the update channel until the coordinator is stopped.
func (c *Coordinator) poll(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = c.options.UpdateTimeout

	updates := c.api.GetUpdatesChan(updateConfig)
	h := &handler{reporter: c.reporter, client: c.api}

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			h.handleUpdate(ctx, update)
		}
	}
}

// handler answers decoded chat commands. It is separate from the Coordinator
// so command handling does not depend on a live Telegram connection.
type handler struct {
	reporter report.Reporter
	client   sender
}

func (h *handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	command := update.Message.Command()
	args := update.Message.CommandArguments()

	logger.Info(ctx, "bot command received",
		zap.String("command", command),
		zap.Int64("chat", chatID))

	switch command {
	case "start":
		h.reply(ctx, chatID, welcomeText, false)
	case "catalogo":
		h.listCatalog(ctx, chatID)
	case "buscar":
		h.search(ctx, chatID, args)
	case "enviar_pdf":
		h.sendReports(ctx, chatID)
	}
}

// listCatalog answers /catalogo with the first page of the catalog.
func (h *handler) listCatalog(ctx context.Context, chatID int64) {
	h.reply(ctx, chatID, fetchingCatalogText, false)

	items, err := h.reporter.Catalog(ctx, "")
	if err != nil {
		logger.Error(ctx, "catalog listing failed", zap.Error(err))
		h.reply(ctx, chatID, dataAccessText, false)

		return
	}

	if len(items) == 0 {
		h.reply(ctx, chatID, emptyCatalogText, false)

		return
	}

	h.reply(ctx, chatID, formatItems(catalogHeader, items), true)
}

// search answers /buscar. A bare /buscar gets a usage hint instead of a
// query.
func (h *handler) search(ctx context.Context, chatID int64, term string) {
	if term == "" {
		h.reply(ctx, chatID, searchUsageText, true)

		return
	}

	h.reply(ctx, chatID, searchingText(term), true)

	items, err := h.reporter.Catalog(ctx, term)
	if err != nil {
		logger.Error(ctx, "catalog search failed", zap.String("term", term), zap.Error(err))
		h.reply(ctx, chatID, dataAccessText, false)

		return
	}

	if len(items) == 0 {
		h.reply(ctx, chatID, noResultsText(term), true)

		return
	}

	h.reply(ctx, chatID, formatItems(searchHeader(term), items), true)
}

// sendReports answers /enviar_pdf by running one synchronous batch.
func (h *handler) sendReports(ctx context.Context, chatID int64) {
	h.reply(ctx, chatID, reportStartedText, false)

	summary, err := h.reporter.SendReports(ctx)
	if err != nil {
		logger.Error(ctx, "batch run triggered from chat failed", zap.Error(err))
		h.reply(ctx, chatID, formatReportFailure(err), false)

		return
	}

	h.reply(ctx, chatID, formatSummary(summary), false)
}

// reply sends a text message to the chat, optionally as Markdown. Send
// failures are logged and dropped; there is nobody upstream to report them
// to.
func (h *handler) reply(ctx context.Context, chatID int64, text string, markdown bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if _, err := h.client.Send(msg); err != nil {
		logger.Error(ctx, "could not send telegram message",
			zap.Int64("chat", chatID),
			zap.Error(err))
	}
}
