package postgres

import (
	"context"

	expenseDatamodel "github.com/frahmantamala/expense-bot/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-bot/internal/expense"
	"gorm.io/gorm"
)

const latestFirst = `"timestamp" DESC, id DESC`

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, exp *expenseDatamodel.Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

// UpdateLatestCategory rewrites the category of the row with the greatest
// timestamp, breaking ties by id. It reports the number of rows touched.
func (r *ExpenseRepository) UpdateLatestCategory(ctx context.Context, category string) (int64, error) {
	latest := r.db.Model(&expenseDatamodel.Expense{}).
		Select("id").
		Order(latestFirst).
		Limit(1)

	result := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = (?)", latest).
		Update("category", category)
	return result.RowsAffected, result.Error
}

func (r *ExpenseRepository) ListAll(ctx context.Context) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Order(`"timestamp" ASC, id ASC`).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListRecent(ctx context.Context, limit, offset int) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Order(latestFirst).
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	return expenses, err
}
