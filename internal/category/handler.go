package category

import (
	"net/http"

	"github.com/frahmantamala/expense-bot/internal/core/common/validation"
	"github.com/frahmantamala/expense-bot/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Catalog Catalog
}

func NewHandler(baseHandler *transport.BaseHandler, catalog Catalog) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Catalog:     catalog,
	}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: h.Catalog.Names(),
	})
}

func (h *Handler) ResolveCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := validation.ValidateCategoryHint(q); err != nil {
		h.WriteAppError(w, err)
		return
	}

	resolved := h.Catalog.Resolve(q)

	h.Logger.Debug("category resolved", "query", q, "category", resolved)
	h.WriteJSON(w, http.StatusOK, ResolveResponse{
		Query:    q,
		Category: resolved,
	})
}
