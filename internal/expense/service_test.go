package expense_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/frahmantamala/expense-bot/internal/category"
	expenseDatamodel "github.com/frahmantamala/expense-bot/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-bot/internal/core/events"
	"github.com/frahmantamala/expense-bot/internal/expense"
	"github.com/frahmantamala/expense-bot/internal/summary"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockExpenseRepository struct {
	rows        []*expenseDatamodel.Expense
	nextID      int64
	createError error
	listError   error
	updateError error
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{nextID: 1}
}

func (m *mockExpenseRepository) Create(_ context.Context, exp *expenseDatamodel.Expense) error {
	if m.createError != nil {
		return m.createError
	}
	exp.ID = m.nextID
	m.nextID++
	exp.CreatedAt = time.Now()
	m.rows = append(m.rows, exp)
	return nil
}

func (m *mockExpenseRepository) latest() *expenseDatamodel.Expense {
	var latest *expenseDatamodel.Expense
	for _, row := range m.rows {
		if latest == nil || !row.Timestamp.Before(latest.Timestamp) {
			latest = row
		}
	}
	return latest
}

func (m *mockExpenseRepository) UpdateLatestCategory(_ context.Context, cat string) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	latest := m.latest()
	if latest == nil {
		return 0, nil
	}
	latest.Category = cat
	return 1, nil
}

func (m *mockExpenseRepository) ListAll(_ context.Context) ([]*expenseDatamodel.Expense, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.rows, nil
}

func (m *mockExpenseRepository) ListRecent(_ context.Context, limit, offset int) ([]*expenseDatamodel.Expense, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	sorted := append([]*expenseDatamodel.Expense(nil), m.rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if offset >= len(sorted) {
		return []*expenseDatamodel.Expense{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

var _ = Describe("Expense Service", func() {
	var (
		ctx       context.Context
		repo      *mockExpenseRepository
		publisher *recordingPublisher
		service   *expense.Service
		now       time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockExpenseRepository()
		publisher = &recordingPublisher{}
		now = time.Date(2024, 5, 15, 12, 0, 0, 0, time.FixedZone("CLT", -3*60*60))

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(repo, category.MustCatalog(category.DefaultNames), publisher, logger,
			expense.WithClock(func() time.Time { return now }))
	})

	Describe("Record", func() {
		It("should store the parsed expense stamped with the clock", func() {
			exp, err := service.Record(ctx, 42, "Milk com 2500")
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.ID).To(Equal(int64(1)))
			Expect(exp.Description).To(Equal("Milk"))
			Expect(exp.Category).To(Equal("Comida"))
			Expect(exp.Amount).To(Equal(2500.0))
			Expect(exp.Timestamp).To(Equal(now))
			Expect(repo.rows).To(HaveLen(1))
		})

		It("should publish an expense.recorded event", func() {
			_, err := service.Record(ctx, 42, "Milk Comida 2500")
			Expect(err).NotTo(HaveOccurred())

			Expect(publisher.events).To(HaveLen(1))
			event := publisher.events[0]
			Expect(event.EventType()).To(Equal(events.EventTypeExpenseRecorded))
			payload := event.Payload().(map[string]interface{})
			Expect(payload["chat_id"]).To(Equal(int64(42)))
			Expect(payload["category"]).To(Equal("Comida"))
		})

		It("should not store malformed messages", func() {
			_, err := service.Record(ctx, 42, "Milk 2500")
			Expect(errors.Is(err, expense.ErrMalformedInput)).To(BeTrue())
			Expect(repo.rows).To(BeEmpty())
			Expect(publisher.events).To(BeEmpty())
		})

		It("should surface storage failures", func() {
			repo.createError = errors.New("db down")
			_, err := service.Record(ctx, 42, "Milk Comida 2500")
			Expect(err).To(MatchError("db down"))
			Expect(publisher.events).To(BeEmpty())
		})

		It("should still record when publishing fails", func() {
			publisher.err = errors.New("bus closed")
			_, err := service.Record(ctx, 42, "Milk Comida 2500")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.rows).To(HaveLen(1))
		})

		It("should work without a publisher", func() {
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			bare := expense.NewService(repo, category.MustCatalog(category.DefaultNames), nil, logger)
			_, err := bare.Record(ctx, 1, "Milk Comida 2500")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("CorrectLatestCategory", func() {
		It("should resolve the hint and rewrite the newest expense", func() {
			_, err := service.Record(ctx, 42, "Bread Comida 1000")
			Expect(err).NotTo(HaveOccurred())
			now = now.Add(time.Minute)
			_, err = service.Record(ctx, 42, "Taxi Comida 5000")
			Expect(err).NotTo(HaveOccurred())

			resolved, err := service.CorrectLatestCategory(ctx, 42, "trans")
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved).To(Equal("Transporte"))
			Expect(repo.rows[0].Category).To(Equal("Comida"))
			Expect(repo.rows[1].Category).To(Equal("Transporte"))

			last := publisher.events[len(publisher.events)-1]
			Expect(last.EventType()).To(Equal(events.EventTypeCategoryCorrected))
		})

		It("should report ErrNoExpenses when nothing is stored", func() {
			_, err := service.CorrectLatestCategory(ctx, 42, "Hogar")
			Expect(err).To(MatchError(expense.ErrNoExpenses))
			Expect(publisher.events).To(BeEmpty())
		})

		It("should surface storage failures", func() {
			repo.updateError = errors.New("db down")
			_, err := service.CorrectLatestCategory(ctx, 42, "Hogar")
			Expect(err).To(MatchError("db down"))
		})
	})

	Describe("Report", func() {
		It("should summarize stored expenses relative to the clock", func() {
			repo.rows = []*expenseDatamodel.Expense{
				{ID: 1, Category: "Comida", Amount: 1000, Timestamp: now.AddDate(0, 0, -1)},
				{ID: 2, Category: "Hogar", Amount: 3000, Timestamp: now.AddDate(0, 0, -20)},
				{ID: 3, Category: "Comida", Amount: 9999, Timestamp: now.AddDate(0, -3, 0)},
			}

			report, err := service.Report(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.GeneratedAt).To(Equal(now))
			Expect(report.Get(summary.WindowLast7Days)).To(Equal(summary.Sums{"Comida": 1000, summary.TotalKey: 1000}))
			Expect(report.Get(summary.WindowLast31Days)).To(Equal(summary.Sums{"Comida": 1000, "Hogar": 3000, summary.TotalKey: 4000}))
		})

		It("should return an empty report with the fetch error", func() {
			repo.listError = errors.New("db down")

			report, err := service.Report(ctx)
			Expect(err).To(MatchError("db down"))
			Expect(report.Windows).To(HaveLen(len(summary.Windows)))
			for _, w := range report.Windows {
				Expect(w.Sums.Total()).To(BeZero())
			}
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				now = now.Add(time.Minute)
				_, err := service.Record(ctx, 1, "Item Otros 100")
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should return newest first", func() {
			list, err := service.List(ctx, 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(int64(3)))
		})

		It("should fall back to the default limit", func() {
			list, err := service.List(ctx, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
		})
	})
})
