package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
)

func newInsightServiceForTest(store *fakeStore) *InsightService {
	budgets := NewBudgetService(store)
	budgets.now = fixedNow
	svc := NewInsightService(store, budgets)
	svc.now = fixedNow
	return svc
}

func TestGenerateInsufficientData(t *testing.T) {
	store := &fakeStore{}
	svc := newInsightServiceForTest(store)

	insights, err := svc.Generate(context.Background(), 1)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
	if len(insights) != 0 {
		t.Errorf("no insights should be returned, got %d", len(insights))
	}
	if len(store.insights) != 0 {
		t.Errorf("no insights should be persisted, got %d", len(store.insights))
	}
}

func TestGeneratePersistsEverything(t *testing.T) {
	now := fixedNow()
	store := &fakeStore{
		transactions: []fakeTx{
			income(3000, models.CategorySalary, now.AddDate(0, 0, -20)),
			expense(400, models.CategoryFood, now.AddDate(0, 0, -5)),
			expense(100, models.CategoryEntertainment, now.AddDate(0, 0, -10)),
		},
		budgets: []models.Budget{
			{UserID: 1, Category: models.CategoryFood, Amount: decimal.NewFromInt(450), Period: models.PeriodMonthly},
		},
	}
	svc := newInsightServiceForTest(store)

	insights, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(insights) == 0 {
		t.Fatal("expected insights to be generated")
	}
	if len(store.insights) != len(insights) {
		t.Errorf("persisted %d insights but returned %d", len(store.insights), len(insights))
	}
	for _, ins := range insights {
		if ins.ID == 0 {
			t.Errorf("insight %q was not persisted before being returned", ins.Title)
		}
		if ins.UserID != 1 {
			t.Errorf("insight %q has owner %d, want 1", ins.Title, ins.UserID)
		}
		if !ins.InsightType.Valid() {
			t.Errorf("insight %q has invalid type %s", ins.Title, ins.InsightType)
		}
		if ins.IsRead {
			t.Errorf("insight %q should start unread", ins.Title)
		}
	}

	types := map[models.InsightType]int{}
	for _, ins := range insights {
		types[ins.InsightType]++
	}
	if types[models.InsightSpendingPattern] != 1 {
		t.Errorf("expected one spending-pattern insight, got %d", types[models.InsightSpendingPattern])
	}
	if types[models.InsightGeneralAdvice] != 1 {
		t.Errorf("expected one general-advice insight, got %d", types[models.InsightGeneralAdvice])
	}
}

func TestSpendingPatternPicksTopCategory(t *testing.T) {
	now := fixedNow()
	store := &fakeStore{transactions: []fakeTx{
		expense(300, models.CategoryFood, now.AddDate(0, 0, -15)),
		expense(100, models.CategoryTransportation, now.AddDate(0, 0, -15)),
	}}
	svc := newInsightServiceForTest(store)

	insights, err := svc.spendingPattern(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("spendingPattern: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}

	data := insights[0].Data
	if data["category"] != "FOOD" {
		t.Errorf("category = %v, want FOOD", data["category"])
	}
	if data["percentage"] != int64(75) {
		t.Errorf("percentage = %v, want 75", data["percentage"])
	}
	if data["time_period"] != "3 months" {
		t.Errorf("time_period = %v, want \"3 months\"", data["time_period"])
	}
	if !strings.Contains(insights[0].Content, "75%") {
		t.Errorf("content should mention the percentage: %q", insights[0].Content)
	}
}

func TestSpendingPatternSkipsWithoutWindowExpenses(t *testing.T) {
	now := fixedNow()
	store := &fakeStore{transactions: []fakeTx{
		// Only income in the window, and one stale expense.
		income(1000, models.CategorySalary, now.AddDate(0, 0, -5)),
		expense(500, models.CategoryFood, now.AddDate(0, 0, -200)),
	}}
	svc := newInsightServiceForTest(store)

	insights, err := svc.spendingPattern(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("spendingPattern: %v", err)
	}
	if len(insights) != 0 {
		t.Errorf("expected no spending-pattern insight, got %d", len(insights))
	}
}

func TestBudgetAlertWording(t *testing.T) {
	tests := []struct {
		name      string
		spent     float64
		wantUsage int
		wantTitle string
	}{
		{"almost reached at 80", 80, 80, "Budget Almost Reached: Food"},
		{"exceeded caps at 100", 120, 100, "Budget Exceeded: Food"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				transactions: []fakeTx{
					expense(tt.spent, models.CategoryFood, day(2025, time.April, 3)),
				},
				budgets: []models.Budget{
					{UserID: 1, Category: models.CategoryFood, Amount: decimal.NewFromInt(100), Period: models.PeriodMonthly},
				},
			}
			svc := newInsightServiceForTest(store)

			alerts, err := svc.budgetAlerts(context.Background(), 1)
			if err != nil {
				t.Fatalf("budgetAlerts: %v", err)
			}
			if len(alerts) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(alerts))
			}
			if alerts[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", alerts[0].Title, tt.wantTitle)
			}
			if alerts[0].Data["usage_percentage"] != tt.wantUsage {
				t.Errorf("usage_percentage = %v, want %d", alerts[0].Data["usage_percentage"], tt.wantUsage)
			}
		})
	}
}

func TestBudgetAlertBelowThresholdStaysQuiet(t *testing.T) {
	store := &fakeStore{
		transactions: []fakeTx{
			expense(79.99, models.CategoryFood, day(2025, time.April, 3)),
		},
		budgets: []models.Budget{
			{UserID: 1, Category: models.CategoryFood, Amount: decimal.NewFromInt(100), Period: models.PeriodMonthly},
		},
	}
	svc := newInsightServiceForTest(store)

	alerts, err := svc.budgetAlerts(context.Background(), 1)
	if err != nil {
		t.Fatalf("budgetAlerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alert below 80%%, got %d", len(alerts))
	}
}

func TestBudgetAlertOnePerQualifyingBudget(t *testing.T) {
	store := &fakeStore{
		transactions: []fakeTx{
			expense(95, models.CategoryFood, day(2025, time.April, 3)),
			expense(200, models.CategoryHousing, day(2025, time.April, 4)),
			expense(10, models.CategoryShopping, day(2025, time.April, 5)),
		},
		budgets: []models.Budget{
			{UserID: 1, Category: models.CategoryFood, Amount: decimal.NewFromInt(100), Period: models.PeriodMonthly},
			{UserID: 1, Category: models.CategoryHousing, Amount: decimal.NewFromInt(150), Period: models.PeriodMonthly},
			{UserID: 1, Category: models.CategoryShopping, Amount: decimal.NewFromInt(500), Period: models.PeriodMonthly},
		},
	}
	svc := newInsightServiceForTest(store)

	alerts, err := svc.budgetAlerts(context.Background(), 1)
	if err != nil {
		t.Fatalf("budgetAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts (food 95%%, housing exceeded), got %d", len(alerts))
	}
}

func TestSavingsOpportunitySingleQualifierIsDeterministic(t *testing.T) {
	now := fixedNow()
	txs := []fakeTx{
		// Five food expenses inside 30 days, everything else below the bar.
		expense(12, models.CategoryFood, now.AddDate(0, 0, -1)),
		expense(9, models.CategoryFood, now.AddDate(0, 0, -3)),
		expense(14, models.CategoryFood, now.AddDate(0, 0, -7)),
		expense(8, models.CategoryFood, now.AddDate(0, 0, -12)),
		expense(7, models.CategoryFood, now.AddDate(0, 0, -20)),
		expense(60, models.CategoryEntertainment, now.AddDate(0, 0, -4)),
	}

	for range 5 {
		store := &fakeStore{transactions: txs}
		svc := newInsightServiceForTest(store)

		insights, err := svc.savingsOpportunity(context.Background(), 1, now)
		if err != nil {
			t.Fatalf("savingsOpportunity: %v", err)
		}
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		if insights[0].Data["category"] != "FOOD" {
			t.Errorf("category = %v, want FOOD (the only qualifier)", insights[0].Data["category"])
		}
		if insights[0].Data["transaction_count"] != 5 {
			t.Errorf("transaction_count = %v, want 5", insights[0].Data["transaction_count"])
		}
	}
}

func TestSavingsOpportunityUsesInjectedRandomness(t *testing.T) {
	now := fixedNow()
	var txs []fakeTx
	for i := range 5 {
		txs = append(txs,
			expense(10, models.CategoryFood, now.AddDate(0, 0, -i-1)),
			expense(20, models.CategoryShopping, now.AddDate(0, 0, -i-1)),
		)
	}
	store := &fakeStore{transactions: txs}
	svc := newInsightServiceForTest(store)

	var sawN int
	svc.intn = func(n int) int {
		sawN = n
		return 1
	}

	insights, err := svc.savingsOpportunity(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("savingsOpportunity: %v", err)
	}
	if sawN != 2 {
		t.Errorf("random choice over %d categories, want 2", sawN)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Data["category"] != "SHOPPING" {
		t.Errorf("category = %v, want SHOPPING (index 1)", insights[0].Data["category"])
	}
}

func TestSavingsOpportunitySkipsWithoutQualifiers(t *testing.T) {
	now := fixedNow()
	store := &fakeStore{transactions: []fakeTx{
		expense(50, models.CategoryFood, now.AddDate(0, 0, -2)),
		expense(50, models.CategoryFood, now.AddDate(0, 0, -4)),
	}}
	svc := newInsightServiceForTest(store)

	insights, err := svc.savingsOpportunity(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("savingsOpportunity: %v", err)
	}
	if len(insights) != 0 {
		t.Errorf("expected no insight when no category has 5+ transactions, got %d", len(insights))
	}
}

func TestGeneralAdviceThresholds(t *testing.T) {
	now := fixedNow()
	tests := []struct {
		name      string
		income    float64
		expenses  float64
		wantTitle string
	}{
		{"negative rate", 1000, 1500, "Spending Exceeds Income"},
		{"low rate", 1000, 950, "Low Savings Rate"},
		{"good rate", 1000, 850, "Good Progress on Savings"},
		{"boundary at twenty", 1000, 800, "Excellent Savings Rate"},
		{"excellent rate", 1000, 500, "Excellent Savings Rate"},
		{"no income", 0, 300, "Low Savings Rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txs []fakeTx
			if tt.income > 0 {
				txs = append(txs, income(tt.income, models.CategorySalary, now.AddDate(0, 0, -30)))
			}
			if tt.expenses > 0 {
				txs = append(txs, expense(tt.expenses, models.CategoryFood, now.AddDate(0, 0, -15)))
			}
			svc := newInsightServiceForTest(&fakeStore{transactions: txs})

			insights, err := svc.generalAdvice(context.Background(), 1, now)
			if err != nil {
				t.Fatalf("generalAdvice: %v", err)
			}
			if len(insights) != 1 {
				t.Fatalf("expected exactly 1 advice insight, got %d", len(insights))
			}
			if insights[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", insights[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestGeneralAdviceSkipsEmptyWindow(t *testing.T) {
	now := fixedNow()
	svc := newInsightServiceForTest(&fakeStore{transactions: []fakeTx{
		income(1000, models.CategorySalary, now.AddDate(0, 0, -200)),
	}})

	insights, err := svc.generalAdvice(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("generalAdvice: %v", err)
	}
	if len(insights) != 0 {
		t.Errorf("expected no advice without transactions in the window, got %d", len(insights))
	}
}

func TestGenerateStoreFailurePropagates(t *testing.T) {
	store := &fakeStore{
		transactions: []fakeTx{income(100, models.CategorySalary, fixedNow())},
	}
	svc := newInsightServiceForTest(store)
	store.failWith = errors.New("connection reset")

	if _, err := svc.Generate(context.Background(), 1); err == nil {
		t.Fatal("store failures must propagate, got nil error")
	}
}
