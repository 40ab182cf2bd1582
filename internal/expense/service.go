package expense

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/category"
	expenseDatamodel "github.com/frahmantamala/expense-bot/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-bot/internal/core/events"
	"github.com/frahmantamala/expense-bot/internal/summary"
)

// ErrNoExpenses is returned when a correction finds nothing to correct.
var ErrNoExpenses = errors.New("no expenses recorded")

// RepositoryAPI is the persistence sink. ListAll is deliberately unfiltered;
// windows are applied in memory by the summary package.
type RepositoryAPI interface {
	Create(ctx context.Context, expense *expenseDatamodel.Expense) error
	UpdateLatestCategory(ctx context.Context, category string) (int64, error)
	ListAll(ctx context.Context) ([]*expenseDatamodel.Expense, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*expenseDatamodel.Expense, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	catalog   category.Catalog
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used to stamp expenses and build reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation stamps expenses with the wall clock of loc.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.now = func() time.Time { return time.Now().In(loc) }
	}
}

func NewService(repo RepositoryAPI, catalog category.Catalog, publisher EventPublisher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Catalog() category.Catalog {
	return s.catalog
}

// Record parses text, stores the expense and announces it on the event bus.
func (s *Service) Record(ctx context.Context, chatID int64, text string) (*Expense, error) {
	parsed, err := Parse(text, s.catalog)
	if err != nil {
		s.logger.Warn("expense message rejected", "error", err, "chat_id", chatID)
		return nil, err
	}

	expense := NewExpense(parsed, s.now())
	model := ToDataModel(expense)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create expense", "error", err, "chat_id", chatID)
		return nil, err
	}
	expense = FromDataModel(model)

	s.logger.Info("expense recorded",
		"expense_id", expense.ID,
		"chat_id", chatID,
		"category", expense.Category,
		"amount", expense.Amount)

	s.publish(ctx, events.NewExpenseRecordedEvent(expense.ID, chatID, expense.Description, expense.Category, expense.Amount, expense.Timestamp))
	return expense, nil
}

// CorrectLatestCategory resolves hint and overwrites the category of the most
// recently stored expense.
func (s *Service) CorrectLatestCategory(ctx context.Context, chatID int64, hint string) (string, error) {
	resolved := s.catalog.Resolve(hint)

	rows, err := s.repo.UpdateLatestCategory(ctx, resolved)
	if err != nil {
		s.logger.Error("failed to correct latest category", "error", err, "chat_id", chatID, "category", resolved)
		return "", err
	}
	if rows == 0 {
		s.logger.Warn("category correction with no expenses", "chat_id", chatID)
		return "", ErrNoExpenses
	}

	s.logger.Info("latest expense category corrected", "chat_id", chatID, "hint", hint, "category", resolved)
	s.publish(ctx, events.NewCategoryCorrectedEvent(chatID, hint, resolved, s.now()))
	return resolved, nil
}

// Report builds the multi-window summary. When the fetch fails the report is
// computed over an empty record set and the fetch error is returned alongside it.
func (s *Service) Report(ctx context.Context) (summary.Report, error) {
	now := s.now()

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch expenses for report", "error", err, "chat_id", internal.ChatIDFromContext(ctx))
		return summary.Build(nil, now), err
	}

	s.logger.Debug("building report", "records", len(rows))
	return summary.Build(ToRecords(FromDataModelSlice(rows)), now), nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Expense, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "limit", limit, "offset", offset)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
