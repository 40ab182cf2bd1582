package expense

import "time"

type Expense struct {
	ID          int64     `gorm:"primaryKey"`
	Timestamp   time.Time `gorm:"column:timestamp;not null;index"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category;not null"`
	Amount      float64   `gorm:"column:amount;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
