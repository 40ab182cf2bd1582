package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/expense"
	"github.com/frahmantamala/expense-bot/internal/report"
	"github.com/frahmantamala/expense-bot/internal/summary"
	"github.com/frahmantamala/expense-bot/internal/telegram"
	"github.com/frahmantamala/expense-bot/internal/transport"
	"github.com/frahmantamala/expense-bot/pkg/logger"
)

type ServiceAPI interface {
	Record(ctx context.Context, chatID int64, text string) (*expense.Expense, error)
	CorrectLatestCategory(ctx context.Context, chatID int64, hint string) (string, error)
	Report(ctx context.Context) (summary.Report, error)
	Catalog() category.Catalog
}

// Notifier delivers a reply to a chat.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type WebhookResponse struct {
	Status   string `json:"status"`
	Text     string `json:"text,omitempty"`
	Category string `json:"category,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Handler receives Telegram updates and routes each text message to a
// correction, a report or a new expense.
type Handler struct {
	*transport.BaseHandler
	service  ServiceAPI
	notifier Notifier
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, notifier Notifier) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		service:     service,
		notifier:    notifier,
	}
}

func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.Logger.Error("invalid telegram update", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if update.Message == nil {
		h.Logger.Info("update without message", "update_id", update.UpdateID)
		h.WriteJSON(w, http.StatusOK, WebhookResponse{Status: StatusNoMessage})
		return
	}

	msg := update.Message
	if msg.Text == "" {
		h.Logger.Warn("unknown message type", "update_id", update.UpdateID, "chat_id", msg.Chat.ID)
		h.WriteJSON(w, http.StatusOK, WebhookResponse{Status: StatusUnknownMessageType})
		return
	}

	scoped := logger.FromOr(r.Context(), h.Logger).With("chat_id", msg.Chat.ID, "update_id", update.UpdateID)
	ctx := internal.ContextWithChatID(logger.Into(r.Context(), scoped), msg.Chat.ID)
	status, resp := h.route(ctx, msg.Chat.ID, msg.Text)
	h.WriteJSON(w, status, resp)
}

func (h *Handler) route(ctx context.Context, chatID int64, text string) (int, WebhookResponse) {
	tokens := strings.Fields(text)

	switch {
	case len(tokens) > 0 && tokens[0] == CommandCorrect:
		if len(tokens) < 2 {
			h.reply(ctx, chatID, msgMissingCategory)
			return http.StatusOK, WebhookResponse{Status: StatusMissingCategory}
		}
		return h.correct(ctx, chatID, tokens[1])
	case text == CommandReport:
		return h.report(ctx, chatID)
	default:
		return h.record(ctx, chatID, text)
	}
}

func (h *Handler) record(ctx context.Context, chatID int64, text string) (int, WebhookResponse) {
	exp, err := h.service.Record(ctx, chatID, text)
	if errors.Is(err, expense.ErrMalformedInput) {
		h.reply(ctx, chatID, msgUsage)
		return http.StatusOK, WebhookResponse{Status: StatusMalformedInput, Text: text}
	}
	if err != nil {
		logger.From(ctx).Error("failed to record expense", "error", err)
		return http.StatusInternalServerError, WebhookResponse{Status: StatusError, Error: "failed to record expense"}
	}

	h.reply(ctx, chatID, recordedReply(text, exp))
	return http.StatusOK, WebhookResponse{Status: StatusTextReceived, Text: text, Category: exp.Category}
}

func (h *Handler) correct(ctx context.Context, chatID int64, hint string) (int, WebhookResponse) {
	resolved, err := h.service.CorrectLatestCategory(ctx, chatID, hint)
	if errors.Is(err, expense.ErrNoExpenses) {
		h.reply(ctx, chatID, msgNothingToCorrect)
		return http.StatusOK, WebhookResponse{Status: StatusNothingToCorrect}
	}
	if err != nil {
		logger.From(ctx).Error("failed to correct category", "error", err, "hint", hint)
		return http.StatusInternalServerError, WebhookResponse{Status: StatusError, Error: "failed to correct category"}
	}

	h.reply(ctx, chatID, correctedReply(resolved))
	return http.StatusOK, WebhookResponse{Status: StatusCategoryModified, Category: resolved}
}

func (h *Handler) report(ctx context.Context, chatID int64) (int, WebhookResponse) {
	r, err := h.service.Report(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to load expenses for report", "error", err)
		h.reply(ctx, chatID, msgLoadFailed)
	}

	h.reply(ctx, chatID, report.RenderText(r, h.service.Catalog().Names()))
	return http.StatusOK, WebhookResponse{Status: StatusReturnedReport}
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.notifier.SendMessage(ctx, chatID, text); err != nil {
		logger.From(ctx).Error("failed to send reply", "error", err)
	}
}
