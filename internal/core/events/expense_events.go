package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseRecorded   = "expense.recorded"
	EventTypeCategoryCorrected = "expense.category_corrected"
)

// ExpenseEventTypes lists every event the expense service emits.
var ExpenseEventTypes = []string{EventTypeExpenseRecorded, EventTypeCategoryCorrected}

type ExpenseRecordedEvent struct {
	BaseEvent
	ExpenseID   int64   `json:"expense_id"`
	ChatID      int64   `json:"chat_id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

func NewExpenseRecordedEvent(expenseID, chatID int64, description, category string, amount float64, recordedAt time.Time) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseRecorded,
			Timestamp: recordedAt,
			Data: map[string]interface{}{
				"expense_id":  expenseID,
				"chat_id":     chatID,
				"description": description,
				"category":    category,
				"amount":      amount,
			},
		},
		ExpenseID:   expenseID,
		ChatID:      chatID,
		Description: description,
		Category:    category,
		Amount:      amount,
	}
}

type CategoryCorrectedEvent struct {
	BaseEvent
	ChatID   int64  `json:"chat_id"`
	Hint     string `json:"hint"`
	Category string `json:"category"`
}

func NewCategoryCorrectedEvent(chatID int64, hint, category string, correctedAt time.Time) *CategoryCorrectedEvent {
	return &CategoryCorrectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCategoryCorrected,
			Timestamp: correctedAt,
			Data: map[string]interface{}{
				"chat_id":  chatID,
				"hint":     hint,
				"category": category,
			},
		},
		ChatID:   chatID,
		Hint:     hint,
		Category: category,
	}
}
