package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
	"myfintrack/pkg/utils"
)

// ErrInsufficientData is returned when insight generation is requested for
// an owner with no transactions at all. Nothing is persisted in that case.
var ErrInsufficientData = errors.New("not enough transaction data to generate insights")

// InsightService runs the rule engine that turns recent transactions and
// budgets into advisory records. It is stateless and invoked on demand.
type InsightService struct {
	store   Store
	budgets *BudgetService
	intn    func(n int) int
	now     func() time.Time
}

func NewInsightService(store Store, budgets *BudgetService) *InsightService {
	return &InsightService{
		store:   store,
		budgets: budgets,
		intn:    rand.Intn,
		now:     time.Now,
	}
}

// Generate runs all four rules for the user, persists every insight they
// produce, and returns the full set. Repeated invocations accumulate new
// rows; there is no deduplication.
func (s *InsightService) Generate(ctx context.Context, userID int) ([]models.FinancialInsight, error) {
	count, err := s.store.TransactionCount(ctx, userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to count transactions")
	}
	if count == 0 {
		return nil, ErrInsufficientData
	}

	now := s.now()
	insights := []models.FinancialInsight{}

	spending, err := s.spendingPattern(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	insights = append(insights, spending...)

	alerts, err := s.budgetAlerts(ctx, userID)
	if err != nil {
		return nil, err
	}
	insights = append(insights, alerts...)

	opportunity, err := s.savingsOpportunity(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	insights = append(insights, opportunity...)

	advice, err := s.generalAdvice(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	insights = append(insights, advice...)

	for i := range insights {
		if err := s.store.CreateInsight(ctx, &insights[i]); err != nil {
			return nil, utils.ErrorHandler(err, "failed to save insight")
		}
	}

	return insights, nil
}

// spendingPattern finds the category with the highest expense total over
// the trailing 90 days and reports its share of total spending.
func (s *InsightService) spendingPattern(ctx context.Context, userID int, now time.Time) ([]models.FinancialInsight, error) {
	since := now.AddDate(0, 0, -90)
	totals, err := s.store.CategoryExpenseTotalsSince(ctx, userID, &since)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to aggregate spending pattern")
	}
	if len(totals) == 0 {
		return nil, nil
	}

	top := totals[0]
	allSpending := decimal.Zero
	for _, ct := range totals {
		allSpending = allSpending.Add(ct.Total.Abs())
		if ct.Total.Abs().GreaterThan(top.Total.Abs()) {
			top = ct
		}
	}
	if !allSpending.IsPositive() {
		return nil, nil
	}

	amount := top.Total.Abs()
	percentage := amount.Mul(oneHundred).Div(allSpending).Round(0).IntPart()

	return []models.FinancialInsight{{
		UserID:      userID,
		InsightType: models.InsightSpendingPattern,
		Title:       fmt.Sprintf("High Spending on %s", top.Category.Label()),
		Content: fmt.Sprintf(
			"You spent $%s on %s in the last 3 months, which is %d%% of your total spending.",
			amount.StringFixed(2), top.Category.Label(), percentage),
		Data: models.JSONMap{
			"category":    string(top.Category),
			"amount":      amount.InexactFloat64(),
			"percentage":  percentage,
			"time_period": "3 months",
		},
	}}, nil
}

// budgetAlerts emits one alert per budget whose current usage is at least
// 80 percent. Wording branches at the 100 percent mark.
func (s *InsightService) budgetAlerts(ctx context.Context, userID int) ([]models.FinancialInsight, error) {
	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to list budgets")
	}

	var alerts []models.FinancialInsight
	for _, b := range budgets {
		usage, err := s.budgets.UsagePercentage(ctx, b, 0, 0)
		if err != nil {
			return nil, err
		}
		if usage < 80 {
			continue
		}

		label := b.Category.Label()
		period := strings.ToLower(b.Period.Label())

		var title, content string
		if usage >= 100 {
			title = fmt.Sprintf("Budget Exceeded: %s", label)
			content = fmt.Sprintf(
				"You have exceeded your %s budget of $%s for %s.",
				period, b.Amount.StringFixed(2), label)
		} else {
			title = fmt.Sprintf("Budget Almost Reached: %s", label)
			content = fmt.Sprintf(
				"You have almost reached your %s budget of $%s for %s (%d%% used).",
				period, b.Amount.StringFixed(2), label, usage)
		}

		alerts = append(alerts, models.FinancialInsight{
			UserID:      userID,
			InsightType: models.InsightBudgetAlert,
			Title:       title,
			Content:     content,
			Data: models.JSONMap{
				"category":         string(b.Category),
				"budget_amount":    b.Amount.InexactFloat64(),
				"usage_percentage": usage,
				"period":           string(b.Period),
			},
		})
	}

	return alerts, nil
}

// savingsOpportunity looks at the trailing 30 days for categories with at
// least five expense transactions and narrates one of them, picked
// uniformly at random so repeated runs don't always surface the same
// category.
func (s *InsightService) savingsOpportunity(ctx context.Context, userID int, now time.Time) ([]models.FinancialInsight, error) {
	since := now.AddDate(0, 0, -30)
	stats, err := s.store.CategoryExpenseStats(ctx, userID, since)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to aggregate savings opportunity")
	}
	if len(stats) == 0 {
		return nil, nil
	}

	var qualifying []CategoryStat
	for _, st := range stats {
		if st.Count >= 5 {
			qualifying = append(qualifying, st)
		}
	}
	if len(qualifying) == 0 {
		return nil, nil
	}

	picked := qualifying[s.intn(len(qualifying))]
	total := picked.Total.Abs()

	return []models.FinancialInsight{{
		UserID:      userID,
		InsightType: models.InsightSavingsOpportunity,
		Title:       fmt.Sprintf("Frequent Spending on %s", picked.Category.Label()),
		Content: fmt.Sprintf(
			"You made %d %s purchases in the last month totaling $%s. Reviewing them might reveal savings.",
			picked.Count, picked.Category.Label(), total.StringFixed(2)),
		Data: models.JSONMap{
			"category":          string(picked.Category),
			"transaction_count": picked.Count,
			"total_amount":      total.InexactFloat64(),
			"time_period":       "1 month",
		},
	}}, nil
}

// generalAdvice classifies the trailing-90-day savings rate into one of
// four advice templates.
func (s *InsightService) generalAdvice(ctx context.Context, userID int, now time.Time) ([]models.FinancialInsight, error) {
	since := now.AddDate(0, 0, -90)
	totals, err := s.store.TotalsSince(ctx, userID, since)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to aggregate general advice")
	}

	income := totals.Income
	expenses := totals.Expenses.Abs()
	if income.IsZero() && expenses.IsZero() {
		return nil, nil
	}

	savings := income.Sub(expenses)
	savingsRate := 0.0
	if income.IsPositive() {
		savings100 := savings.Mul(oneHundred)
		savingsRate = savings100.Div(income).InexactFloat64()
	}

	var title, content string
	switch {
	case savingsRate < 0:
		title = "Spending Exceeds Income"
		content = "Your spending exceeded your income over the last 3 months. Consider reviewing your recurring expenses to get back on track."
	case savingsRate < 10:
		title = "Low Savings Rate"
		content = fmt.Sprintf("You saved %.1f%% of your income over the last 3 months. Aiming for at least 10%% would build a stronger safety net.", savingsRate)
	case savingsRate < 20:
		title = "Good Progress on Savings"
		content = fmt.Sprintf("You saved %.1f%% of your income over the last 3 months. You're making good progress toward the recommended 20%%.", savingsRate)
	default:
		title = "Excellent Savings Rate"
		content = fmt.Sprintf("You saved %.1f%% of your income over the last 3 months. Keep it up!", savingsRate)
	}

	return []models.FinancialInsight{{
		UserID:      userID,
		InsightType: models.InsightGeneralAdvice,
		Title:       title,
		Content:     content,
		Data: models.JSONMap{
			"income":       income.InexactFloat64(),
			"expenses":     expenses.InexactFloat64(),
			"savings":      savings.InexactFloat64(),
			"savings_rate": savingsRate,
			"time_period":  "3 months",
		},
	}}, nil
}
