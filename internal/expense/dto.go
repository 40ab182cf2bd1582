package expense

import "github.com/frahmantamala/expense-bot/internal/summary"

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

type SummaryResponse struct {
	Report     summary.Report `json:"report"`
	Categories []string       `json:"categories"`
}
