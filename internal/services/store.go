package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
)

// Totals pairs the income and expense sums for a window. Both values are
// positive magnitudes; direction lives in the transaction type.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
}

type CategoryStat struct {
	Category models.Category
	Count    int
	Total    decimal.Decimal
}

// TransactionReader is the aggregate read surface the core needs from the
// relational store. Every query is scoped to one owner.
type TransactionReader interface {
	// MonthTotals sums income and expenses for one calendar month.
	MonthTotals(ctx context.Context, userID, year, month int) (Totals, error)

	// LifetimeTotals sums income and expenses across all of the owner's
	// transactions.
	LifetimeTotals(ctx context.Context, userID int) (Totals, error)

	// TotalsSince sums income and expenses for transactions dated on or
	// after since.
	TotalsSince(ctx context.Context, userID int, since time.Time) (Totals, error)

	// CategoryExpenseTotalsByMonth groups one month's expenses by category.
	CategoryExpenseTotalsByMonth(ctx context.Context, userID, year, month int) ([]CategoryTotal, error)

	// CategoryExpenseTotalsSince groups expenses by category for
	// transactions dated on or after since; a nil since means all-time.
	CategoryExpenseTotalsSince(ctx context.Context, userID int, since *time.Time) ([]CategoryTotal, error)

	// CategoryExpenseStats counts and sums expenses per category for
	// transactions dated on or after since.
	CategoryExpenseStats(ctx context.Context, userID int, since time.Time) ([]CategoryStat, error)

	// CategoryExpenseSum totals expenses in one category for a year, or
	// for a single month when month is non-zero.
	CategoryExpenseSum(ctx context.Context, userID int, category models.Category, year, month int) (decimal.Decimal, error)

	// EarliestTransactionDate reports the date of the owner's first
	// transaction; ok is false when the owner has none.
	EarliestTransactionDate(ctx context.Context, userID int) (date time.Time, ok bool, err error)

	// TransactionCount reports how many transactions the owner has.
	TransactionCount(ctx context.Context, userID int) (int, error)
}

type BudgetReader interface {
	ListBudgets(ctx context.Context, userID int) ([]models.Budget, error)
}

type InsightWriter interface {
	CreateInsight(ctx context.Context, insight *models.FinancialInsight) error
}

// Store is the full surface consumed by the services layer.
type Store interface {
	TransactionReader
	BudgetReader
	InsightWriter
}
