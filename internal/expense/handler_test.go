package expense_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/expense"
	"github.com/frahmantamala/expense-bot/internal/summary"
	"github.com/frahmantamala/expense-bot/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	expenses  []*expense.Expense
	report    summary.Report
	err       error
	gotLimit  int
	gotOffset int
}

func (s *stubService) List(_ context.Context, limit, offset int) ([]*expense.Expense, error) {
	s.gotLimit, s.gotOffset = limit, offset
	return s.expenses, s.err
}

func (s *stubService) Report(_ context.Context) (summary.Report, error) {
	return s.report, s.err
}

func (s *stubService) Catalog() category.Catalog {
	return category.MustCatalog([]string{"Comida", "Hogar"})
}

var _ = Describe("Expense Handler", func() {
	var (
		svc     *stubService
		handler *expense.Handler
	)

	BeforeEach(func() {
		svc = &stubService{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = expense.NewHandler(&transport.BaseHandler{Logger: slogger}, svc)
	})

	Describe("GetExpenses", func() {
		It("should pass pagination through", func() {
			svc.expenses = []*expense.Expense{{ID: 7, Description: "Milk", Category: "Comida", Amount: 2500}}

			req := httptest.NewRequest(http.MethodGet, "/expenses?limit=5&offset=10", nil)
			w := httptest.NewRecorder()
			handler.GetExpenses(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.gotLimit).To(Equal(5))
			Expect(svc.gotOffset).To(Equal(10))

			var response expense.ListExpensesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Expenses).To(HaveLen(1))
			Expect(response.Expenses[0].Description).To(Equal("Milk"))
			Expect(response.Limit).To(Equal(5))
		})

		It("should replace an out of range limit with the default", func() {
			req := httptest.NewRequest(http.MethodGet, "/expenses?limit=1000", nil)
			w := httptest.NewRecorder()
			handler.GetExpenses(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.gotLimit).To(Equal(expense.DefaultListLimit))
		})

		It("should return 500 when the service fails", func() {
			svc.err = errors.New("db down")
			req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			w := httptest.NewRecorder()
			handler.GetExpenses(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GetSummary", func() {
		It("should return the report and catalog order", func() {
			now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
			svc.report = summary.Build([]summary.Record{{Timestamp: now, Category: "Comida", Amount: 100}}, now)

			req := httptest.NewRequest(http.MethodGet, "/expenses/summary", nil)
			w := httptest.NewRecorder()
			handler.GetSummary(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response expense.SummaryResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(Equal([]string{"Comida", "Hogar"}))
			Expect(response.Report.Windows).To(HaveLen(len(summary.Windows)))
			Expect(response.Report.Get(summary.WindowThisMonth)[summary.TotalKey]).To(Equal(100.0))
		})

		It("should return 500 when expenses cannot be loaded", func() {
			svc.err = errors.New("db down")
			req := httptest.NewRequest(http.MethodGet, "/expenses/summary", nil)
			w := httptest.NewRecorder()
			handler.GetSummary(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
