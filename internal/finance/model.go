package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "Income"
	Expense Type = "Expense"
)

var incomeCategories = []string{"Salary", "Freelance", "Investment"}
var expenseCategories = []string{"Food", "Transport", "Entertainment", "Shopping", "Bills", "Other"}

// REQUESTS START:
type TransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"` // keep as string to avoid float rounding, "10.00"
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"` // 2006-01-02, empty means today
}

// REQUESTS END:

// MODELS:

type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"timestamp"`
}

// RESPONSES:

type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Count    int
}

type MonthlyTotal struct {
	Month  string // YYYY-MM
	Type   Type
	Amount decimal.Decimal
}

type CategoryTotal struct {
	Type     Type
	Category string
	Amount   decimal.Decimal
}
