package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
)

// fakeTx is a minimal transaction record for driving the services in
// tests without a database.
type fakeTx struct {
	amount   decimal.Decimal
	txType   models.TransactionType
	category models.Category
	date     time.Time
}

func income(amount float64, category models.Category, date time.Time) fakeTx {
	return fakeTx{amount: decimal.NewFromFloat(amount), txType: models.TypeIncome, category: category, date: date}
}

func expense(amount float64, category models.Category, date time.Time) fakeTx {
	return fakeTx{amount: decimal.NewFromFloat(amount), txType: models.TypeExpense, category: category, date: date}
}

// fakeStore implements Store over in-memory slices.
type fakeStore struct {
	transactions []fakeTx
	budgets      []models.Budget
	insights     []models.FinancialInsight
	failWith     error
}

func (f *fakeStore) MonthTotals(_ context.Context, _ int, year, month int) (Totals, error) {
	if f.failWith != nil {
		return Totals{}, f.failWith
	}
	totals := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range f.transactions {
		if tx.date.Year() != year || int(tx.date.Month()) != month {
			continue
		}
		totals = totals.add(tx)
	}
	return totals, nil
}

func (f *fakeStore) LifetimeTotals(_ context.Context, _ int) (Totals, error) {
	if f.failWith != nil {
		return Totals{}, f.failWith
	}
	totals := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range f.transactions {
		totals = totals.add(tx)
	}
	return totals, nil
}

func (f *fakeStore) TotalsSince(_ context.Context, _ int, since time.Time) (Totals, error) {
	if f.failWith != nil {
		return Totals{}, f.failWith
	}
	totals := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range f.transactions {
		if tx.date.Before(since) {
			continue
		}
		totals = totals.add(tx)
	}
	return totals, nil
}

func (t Totals) add(tx fakeTx) Totals {
	if tx.txType == models.TypeIncome {
		t.Income = t.Income.Add(tx.amount)
	} else {
		t.Expenses = t.Expenses.Add(tx.amount)
	}
	return t
}

func (f *fakeStore) CategoryExpenseTotalsByMonth(_ context.Context, _ int, year, month int) ([]CategoryTotal, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.groupExpenses(func(tx fakeTx) bool {
		return tx.date.Year() == year && int(tx.date.Month()) == month
	}), nil
}

func (f *fakeStore) CategoryExpenseTotalsSince(_ context.Context, _ int, since *time.Time) ([]CategoryTotal, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.groupExpenses(func(tx fakeTx) bool {
		return since == nil || !tx.date.Before(*since)
	}), nil
}

func (f *fakeStore) groupExpenses(match func(fakeTx) bool) []CategoryTotal {
	sums := map[models.Category]decimal.Decimal{}
	var order []models.Category
	for _, tx := range f.transactions {
		if tx.txType != models.TypeExpense || !match(tx) {
			continue
		}
		if _, seen := sums[tx.category]; !seen {
			order = append(order, tx.category)
		}
		sums[tx.category] = sums[tx.category].Add(tx.amount)
	}
	totals := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		totals = append(totals, CategoryTotal{Category: c, Total: sums[c]})
	}
	return totals
}

func (f *fakeStore) CategoryExpenseStats(_ context.Context, _ int, since time.Time) ([]CategoryStat, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	counts := map[models.Category]int{}
	sums := map[models.Category]decimal.Decimal{}
	var order []models.Category
	for _, tx := range f.transactions {
		if tx.txType != models.TypeExpense || tx.date.Before(since) {
			continue
		}
		if _, seen := counts[tx.category]; !seen {
			order = append(order, tx.category)
		}
		counts[tx.category]++
		sums[tx.category] = sums[tx.category].Add(tx.amount)
	}
	stats := make([]CategoryStat, 0, len(order))
	for _, c := range order {
		stats = append(stats, CategoryStat{Category: c, Count: counts[c], Total: sums[c]})
	}
	return stats, nil
}

func (f *fakeStore) CategoryExpenseSum(_ context.Context, _ int, category models.Category, year, month int) (decimal.Decimal, error) {
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}
	sum := decimal.Zero
	for _, tx := range f.transactions {
		if tx.txType != models.TypeExpense || tx.category != category {
			continue
		}
		if tx.date.Year() != year {
			continue
		}
		if month != 0 && int(tx.date.Month()) != month {
			continue
		}
		sum = sum.Add(tx.amount)
	}
	return sum, nil
}

func (f *fakeStore) EarliestTransactionDate(_ context.Context, _ int) (time.Time, bool, error) {
	if f.failWith != nil {
		return time.Time{}, false, f.failWith
	}
	if len(f.transactions) == 0 {
		return time.Time{}, false, nil
	}
	earliest := f.transactions[0].date
	for _, tx := range f.transactions[1:] {
		if tx.date.Before(earliest) {
			earliest = tx.date
		}
	}
	return earliest, true, nil
}

func (f *fakeStore) TransactionCount(_ context.Context, _ int) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.transactions), nil
}

func (f *fakeStore) ListBudgets(_ context.Context, _ int) ([]models.Budget, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.budgets, nil
}

func (f *fakeStore) CreateInsight(_ context.Context, insight *models.FinancialInsight) error {
	if f.failWith != nil {
		return f.failWith
	}
	insight.ID = len(f.insights) + 1
	f.insights = append(f.insights, *insight)
	return nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
