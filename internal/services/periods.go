package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
	"myfintrack/pkg/datemath"
	"myfintrack/pkg/utils"
)

const (
	TimeRange3Months = "3months"
	TimeRange6Months = "6months"
	TimeRange1Year   = "1year"
	TimeRangeAll     = "all"
)

type MonthlySummaryEntry struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

type CategoryExpense struct {
	Category        models.Category `json:"category"`
	CategoryDisplay string          `json:"category_display"`
	Total           decimal.Decimal `json:"total"`
}

type CurrentMonthSummary struct {
	TotalIncome      decimal.Decimal   `json:"total_income"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	Balance          decimal.Decimal   `json:"balance"`
	CategoryExpenses []CategoryExpense `json:"category_expenses"`
}

// PeriodService produces calendar-month aggregates of a user's
// transactions.
type PeriodService struct {
	store TransactionReader
}

func NewPeriodService(store TransactionReader) *PeriodService {
	return &PeriodService{store: store}
}

// MonthlySummary returns one entry per calendar month in the window
// selected by timeRange, chronologically ascending and never past the
// month containing ref. Months without transactions appear with zero
// values: the window is enumerated first, then queried.
func (s *PeriodService) MonthlySummary(ctx context.Context, userID int, ref time.Time, timeRange string) ([]MonthlySummaryEntry, error) {
	refMonth := datemath.FromTime(ref)

	var start datemath.YearMonth
	switch timeRange {
	case TimeRange3Months:
		start = refMonth.AddMonths(-2)
	case TimeRange6Months:
		start = refMonth.AddMonths(-5)
	case TimeRange1Year:
		start = refMonth.AddMonths(-12)
	default:
		// "all", or any unrecognized value: seed the window with the
		// month of the earliest transaction.
		earliest, ok, err := s.store.EarliestTransactionDate(ctx, userID)
		if err != nil {
			return nil, utils.ErrorHandler(err, "failed to find earliest transaction")
		}
		if ok {
			start = datemath.FromTime(earliest)
		} else {
			start = datemath.YearMonth{Year: refMonth.Year, Month: 1}
		}
	}

	summaries := make([]MonthlySummaryEntry, 0, start.MonthsBetween(refMonth))
	for ym := start; !ym.After(refMonth); ym = ym.AddMonths(1) {
		totals, err := s.store.MonthTotals(ctx, userID, ym.Year, ym.Month)
		if err != nil {
			return nil, utils.ErrorHandler(err, "failed to aggregate month")
		}

		income := totals.Income
		expenses := totals.Expenses.Abs()
		summaries = append(summaries, MonthlySummaryEntry{
			Month:    ym.Month,
			Year:     ym.Year,
			Income:   income,
			Expenses: expenses,
			Savings:  income.Sub(expenses),
		})
	}

	return summaries, nil
}

// CurrentMonthSummary reports the running month's income and expenses, the
// lifetime balance, and the month's expense breakdown by category.
func (s *PeriodService) CurrentMonthSummary(ctx context.Context, userID int, today time.Time) (CurrentMonthSummary, error) {
	var summary CurrentMonthSummary

	month, err := s.store.MonthTotals(ctx, userID, today.Year(), int(today.Month()))
	if err != nil {
		return summary, utils.ErrorHandler(err, "failed to aggregate current month")
	}

	lifetime, err := s.store.LifetimeTotals(ctx, userID)
	if err != nil {
		return summary, utils.ErrorHandler(err, "failed to aggregate balance")
	}

	byCategory, err := s.store.CategoryExpenseTotalsByMonth(ctx, userID, today.Year(), int(today.Month()))
	if err != nil {
		return summary, utils.ErrorHandler(err, "failed to aggregate category expenses")
	}

	summary.TotalIncome = month.Income
	summary.TotalExpenses = month.Expenses.Abs()
	summary.Balance = lifetime.Income.Sub(lifetime.Expenses.Abs())
	summary.CategoryExpenses = toCategoryExpenses(byCategory)
	return summary, nil
}

// CategorySummary groups expense totals by category over a rolling window
// of days before today: 90, 180 or 365 days for the named ranges, no lower
// bound otherwise.
func (s *PeriodService) CategorySummary(ctx context.Context, userID int, today time.Time, timeRange string) ([]CategoryExpense, error) {
	var since *time.Time
	switch timeRange {
	case TimeRange3Months:
		t := today.AddDate(0, 0, -90)
		since = &t
	case TimeRange6Months:
		t := today.AddDate(0, 0, -180)
		since = &t
	case TimeRange1Year:
		t := today.AddDate(0, 0, -365)
		since = &t
	}

	totals, err := s.store.CategoryExpenseTotalsSince(ctx, userID, since)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to aggregate category expenses")
	}

	return toCategoryExpenses(totals), nil
}

// toCategoryExpenses normalizes magnitudes, attaches display labels, and
// orders by total descending.
func toCategoryExpenses(totals []CategoryTotal) []CategoryExpense {
	out := make([]CategoryExpense, 0, len(totals))
	for _, ct := range totals {
		out = append(out, CategoryExpense{
			Category:        ct.Category,
			CategoryDisplay: ct.Category.Label(),
			Total:           ct.Total.Abs(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}
