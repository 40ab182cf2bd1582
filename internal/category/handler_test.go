package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler", func() {
	var handler *category.Handler

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		catalog := category.MustCatalog([]string{"Comida", "Combustible", "Compras"})
		handler = category.NewHandler(&transport.BaseHandler{Logger: slogger}, catalog)
	})

	It("should list categories in catalog order", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(Equal([]string{"Comida", "Combustible", "Compras"}))
	})

	It("should resolve the q parameter", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories/resolve?q=comb", nil)
		w := httptest.NewRecorder()

		handler.ResolveCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response category.ResolveResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Query).To(Equal("comb"))
		Expect(response.Category).To(Equal("Combustible"))
	})

	It("should reject an overlong hint", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories/resolve?q="+strings.Repeat("a", 65), nil)
		w := httptest.NewRecorder()

		handler.ResolveCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("VALIDATION_FAILED"))
	})
})
