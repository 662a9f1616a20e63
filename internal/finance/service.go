package finance

import (
	"slices"
	"sort"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MAX_TRANSACTION_AMOUNT_LIMIT       = 999999999999
	MAX_TRANSACTION_DESCRIPTION_LENGTH = 1000
	DATE_LAYOUT                        = "2006-01-02"
)

var minAmount = decimal.RequireFromString("0.01")

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return "", appErrors.InvalidInput("invalid transaction type: '%s', allowed types are: Income and Expense", s)
}

// Categories returns the categories a transaction of type t may use.
func Categories(t Type) []string {
	if t == Income {
		return slices.Clone(incomeCategories)
	}
	return slices.Clone(expenseCategories)
}

func NewTransaction(req TransactionRequest, now time.Time) (Transaction, error) {
	tType, err := ParseType(req.Type)
	if err != nil {
		return Transaction{}, err
	}

	amountStr := strings.TrimSpace(req.Amount)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Transaction{}, appErrors.InvalidInput("invalid transaction amount format: '%s'", req.Amount)
	}
	if amount.LessThan(minAmount) {
		return Transaction{}, appErrors.InvalidInput("transaction amount must be at least %s", minAmount.StringFixed(2))
	}
	if amount.GreaterThan(decimal.NewFromInt(MAX_TRANSACTION_AMOUNT_LIMIT)) {
		return Transaction{}, appErrors.InvalidInput("maximum allowed amount per transaction is: %d", MAX_TRANSACTION_AMOUNT_LIMIT)
	}

	if !slices.Contains(Categories(tType), req.Category) {
		return Transaction{}, appErrors.InvalidInput("invalid category '%s' for %s, allowed: %s", req.Category, tType, strings.Join(Categories(tType), ", "))
	}
	if len(req.Description) > MAX_TRANSACTION_DESCRIPTION_LENGTH {
		return Transaction{}, appErrors.InvalidInput("description so long, maximum allowed length is: %d", MAX_TRANSACTION_DESCRIPTION_LENGTH)
	}

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if ds := strings.TrimSpace(req.Date); ds != "" {
		date, err = time.Parse(DATE_LAYOUT, ds)
		if err != nil {
			return Transaction{}, appErrors.InvalidInput("invalid date: '%s', expected format YYYY-MM-DD", req.Date)
		}
	}

	return Transaction{
		ID:          uuid.New().String(),
		Date:        date,
		Type:        tType,
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
		CreatedAt:   now.UTC(),
	}, nil
}

// Summarize totals income and expenses. Net is always Income minus Expenses.
func Summarize(ts []Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expenses: decimal.Zero, Count: len(ts)}
	for _, t := range ts {
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expenses)
	return s
}

// ByMonth sums amounts per (month, type), ordered by month then type.
func ByMonth(ts []Transaction) []MonthlyTotal {
	type key struct {
		month string
		tType Type
	}
	sums := make(map[key]decimal.Decimal)
	for _, t := range ts {
		k := key{month: t.Date.Format("2006-01"), tType: t.Type}
		sums[k] = sums[k].Add(t.Amount)
	}

	out := make([]MonthlyTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, MonthlyTotal{Month: k.month, Type: k.tType, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// ByCategory sums amounts per (type, category), ordered by type then category.
func ByCategory(ts []Transaction) []CategoryTotal {
	type key struct {
		tType    Type
		category string
	}
	sums := make(map[key]decimal.Decimal)
	for _, t := range ts {
		k := key{tType: t.Type, category: t.Category}
		sums[k] = sums[k].Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, CategoryTotal{Type: k.tType, Category: k.category, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Recent returns at most n transactions, newest CreatedAt first.
func Recent(ts []Transaction, n int) []Transaction {
	out := slices.Clone(ts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

func Table(ts []Transaction) *dataset.Table {
	t := dataset.New("date", "type", "amount", "category", "description", "timestamp")
	for _, tx := range ts {
		t.Append(
			tx.Date.Format(DATE_LAYOUT),
			string(tx.Type),
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Description,
			tx.CreatedAt.Format(time.RFC3339),
		)
	}
	return t
}

// Money formats like "$1,234.50".
func Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
