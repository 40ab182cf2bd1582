package expense

import (
	"time"

	expenseDatamodel "github.com/frahmantamala/expense-bot/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-bot/internal/summary"
)

// Expense is a single parsed purchase. Category is always a catalog entry.
type Expense struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewExpense(parsed Parsed, at time.Time) *Expense {
	return &Expense{
		Timestamp:   at,
		Description: parsed.Description,
		Category:    parsed.Category,
		Amount:      parsed.Amount,
	}
}

func (e *Expense) ToRecord() summary.Record {
	return summary.Record{
		Timestamp: e.Timestamp,
		Category:  e.Category,
		Amount:    e.Amount,
	}
}

func ToRecords(expenses []*Expense) []summary.Record {
	records := make([]summary.Record, len(expenses))
	for i, e := range expenses {
		records[i] = e.ToRecord()
	}
	return records
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
