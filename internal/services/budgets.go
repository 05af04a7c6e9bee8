package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
	"myfintrack/pkg/utils"
)

var oneHundred = decimal.NewFromInt(100)

type BudgetSummary struct {
	TotalMonthlyBudget            decimal.Decimal `json:"total_monthly_budget"`
	MonthlyEquivalentYearlyBudget decimal.Decimal `json:"monthly_equivalent_yearly_budget"`
	TotalBudget                   decimal.Decimal `json:"total_budget"`
	TotalExpenses                 decimal.Decimal `json:"total_expenses"`
	OverallUsagePercentage        int             `json:"overall_usage_percentage"`
	RemainingBudget               decimal.Decimal `json:"remaining_budget"`
}

// BudgetService computes spend-against-cap figures for a user's budgets.
type BudgetService struct {
	store interface {
		TransactionReader
		BudgetReader
	}
	now func() time.Time
}

func NewBudgetService(store Store) *BudgetService {
	return &BudgetService{store: store, now: time.Now}
}

// UsagePercentage reports how much of a budget has been spent, as an
// integer clamped to [0, 100]. Monthly budgets sum the given (year, month);
// yearly budgets sum the whole year. A zero year or month defaults to the
// current date.
func (s *BudgetService) UsagePercentage(ctx context.Context, budget models.Budget, year, month int) (int, error) {
	today := s.now()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}

	if budget.Period == models.PeriodYearly {
		month = 0
	}

	spent, err := s.store.CategoryExpenseSum(ctx, budget.UserID, budget.Category, year, month)
	if err != nil {
		return 0, utils.ErrorHandler(err, "failed to sum budget spending")
	}

	return usagePercent(spent, budget.Amount), nil
}

// BudgetSummary aggregates every budget the user has: yearly caps count at
// one twelfth so the total is a monthly figure, and usage is measured
// against the current month's expenses.
func (s *BudgetService) BudgetSummary(ctx context.Context, userID int) (BudgetSummary, error) {
	var summary BudgetSummary

	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return summary, utils.ErrorHandler(err, "failed to list budgets")
	}

	monthly := decimal.Zero
	yearly := decimal.Zero
	for _, b := range budgets {
		switch b.Period {
		case models.PeriodYearly:
			yearly = yearly.Add(b.Amount)
		default:
			monthly = monthly.Add(b.Amount)
		}
	}

	today := s.now()
	month, err := s.store.MonthTotals(ctx, userID, today.Year(), int(today.Month()))
	if err != nil {
		return summary, utils.ErrorHandler(err, "failed to aggregate current month")
	}

	summary.TotalMonthlyBudget = monthly
	summary.MonthlyEquivalentYearlyBudget = yearly.Div(decimal.NewFromInt(12)).Round(2)
	summary.TotalBudget = summary.TotalMonthlyBudget.Add(summary.MonthlyEquivalentYearlyBudget)
	summary.TotalExpenses = month.Expenses.Abs()
	summary.OverallUsagePercentage = usagePercent(summary.TotalExpenses, summary.TotalBudget)

	remaining := summary.TotalBudget.Sub(summary.TotalExpenses)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	summary.RemainingBudget = remaining

	return summary, nil
}

// usagePercent is floor(100 * spent / cap) clamped to [0, 100]; zero when
// the cap is not positive or nothing was spent.
func usagePercent(spent, cap decimal.Decimal) int {
	if !cap.IsPositive() || !spent.IsPositive() {
		return 0
	}
	pct := int(spent.Abs().Mul(oneHundred).Div(cap).IntPart())
	if pct > 100 {
		return 100
	}
	return pct
}
