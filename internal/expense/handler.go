package expense

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/summary"
	"github.com/frahmantamala/expense-bot/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, limit, offset int) ([]*Expense, error)
	Report(ctx context.Context) (summary.Report, error)
	Catalog() category.Catalog
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	limit := h.QueryInt(r, "limit", DefaultListLimit)
	if limit == 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	offset := h.QueryInt(r, "offset", 0)

	expenses, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		h.Logger.Error("GetExpenses: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get expenses")
		return
	}

	h.WriteJSON(w, http.StatusOK, ListExpensesResponse{
		Expenses: expenses,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Report(r.Context())
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	h.WriteJSON(w, http.StatusOK, SummaryResponse{
		Report:     report,
		Categories: h.Service.Catalog().Names(),
	})
}
