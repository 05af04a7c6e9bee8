package models

import (
	"testing"
)

func TestCategoryValidation(t *testing.T) {
	for _, c := range append(IncomeCategories(), ExpenseCategories()...) {
		if !c.Valid() {
			t.Errorf("category %s should be valid", c)
		}
	}

	if Category("GROCERIES").Valid() {
		t.Error("unknown category code should not validate")
	}
	if Category("").Valid() {
		t.Error("empty category code should not validate")
	}
}

func TestCategorySides(t *testing.T) {
	if !CategorySalary.IsIncome() {
		t.Error("SALARY is an income category")
	}
	if CategorySalary.IsExpense() {
		t.Error("SALARY is not an expense category")
	}
	if !CategoryFood.IsExpense() {
		t.Error("FOOD is an expense category")
	}
	if Category("BOGUS").IsExpense() {
		t.Error("invalid categories belong to neither side")
	}

	if got := len(IncomeCategories()); got != 5 {
		t.Errorf("expected 5 income categories, got %d", got)
	}
	if got := len(ExpenseCategories()); got != 10 {
		t.Errorf("expected 10 expense categories, got %d", got)
	}
}

func TestCategoryLabels(t *testing.T) {
	tests := map[Category]string{
		CategoryOtherIncome:    "Other Income",
		CategoryTransportation: "Transportation",
		CategoryOtherExpense:   "Other Expense",
	}
	for c, want := range tests {
		if got := c.Label(); got != want {
			t.Errorf("Label(%s) = %q, want %q", c, got, want)
		}
	}
}

func TestTransactionTypeValidation(t *testing.T) {
	if !TypeIncome.Valid() || !TypeExpense.Valid() {
		t.Error("IN and EX are the valid transaction types")
	}
	if TransactionType("TRANSFER").Valid() {
		t.Error("unknown transaction type should not validate")
	}
	if got := TypeIncome.Label(); got != "Income" {
		t.Errorf("Label(IN) = %q, want Income", got)
	}
}

func TestBudgetPeriodValidation(t *testing.T) {
	if !PeriodMonthly.Valid() || !PeriodYearly.Valid() {
		t.Error("MONTHLY and YEARLY are the valid budget periods")
	}
	if BudgetPeriod("WEEKLY").Valid() {
		t.Error("unknown budget period should not validate")
	}
}

func TestInsightTypeValidation(t *testing.T) {
	for _, it := range []InsightType{InsightSpendingPattern, InsightSavingsOpportunity, InsightBudgetAlert, InsightGeneralAdvice} {
		if !it.Valid() {
			t.Errorf("insight type %s should be valid", it)
		}
	}
	if InsightType("FORECAST").Valid() {
		t.Error("unknown insight type should not validate")
	}
}

func TestJSONMapRoundTrip(t *testing.T) {
	m := JSONMap{"category": "FOOD", "percentage": float64(42)}

	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out JSONMap
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if out["category"] != "FOOD" {
		t.Errorf("category = %v, want FOOD", out["category"])
	}
	if out["percentage"] != float64(42) {
		t.Errorf("percentage = %v, want 42", out["percentage"])
	}
}

func TestJSONMapScanNil(t *testing.T) {
	var m JSONMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if m == nil {
		t.Error("Scan(nil) should yield an empty map, not nil")
	}
}

func TestJSONMapNilValue(t *testing.T) {
	var m JSONMap
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "{}" {
		t.Errorf("nil map Value = %v, want {}", v)
	}
}
