package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "IN"
	TypeExpense TransactionType = "EX"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t TransactionType) Label() string {
	switch t {
	case TypeIncome:
		return "Income"
	case TypeExpense:
		return "Expense"
	}
	return string(t)
}

type Category string

const (
	// Income categories
	CategorySalary      Category = "SALARY"
	CategoryFreelance   Category = "FREELANCE"
	CategoryInvestment  Category = "INVESTMENT"
	CategoryGift        Category = "GIFT"
	CategoryOtherIncome Category = "OTHER_INC"

	// Expense categories
	CategoryHousing        Category = "HOUSING"
	CategoryFood           Category = "FOOD"
	CategoryTransportation Category = "TRANSPORT"
	CategoryHealth         Category = "HEALTH"
	CategoryEntertainment  Category = "ENTERTAIN"
	CategoryEducation      Category = "EDUCATION"
	CategoryShopping       Category = "SHOPPING"
	CategoryUtilities      Category = "UTILITIES"
	CategoryTravel         Category = "TRAVEL"
	CategoryOtherExpense   Category = "OTHER_EXP"
)

var categoryLabels = map[Category]string{
	CategorySalary:         "Salary",
	CategoryFreelance:      "Freelance",
	CategoryInvestment:     "Investment",
	CategoryGift:           "Gift",
	CategoryOtherIncome:    "Other Income",
	CategoryHousing:        "Housing",
	CategoryFood:           "Food",
	CategoryTransportation: "Transportation",
	CategoryHealth:         "Health",
	CategoryEntertainment:  "Entertainment",
	CategoryEducation:      "Education",
	CategoryShopping:       "Shopping",
	CategoryUtilities:      "Utilities",
	CategoryTravel:         "Travel",
	CategoryOtherExpense:   "Other Expense",
}

var incomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestment,
	CategoryGift,
	CategoryOtherIncome,
}

var expenseCategories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransportation,
	CategoryHealth,
	CategoryEntertainment,
	CategoryEducation,
	CategoryShopping,
	CategoryUtilities,
	CategoryTravel,
	CategoryOtherExpense,
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c Category) IsIncome() bool {
	for _, ic := range incomeCategories {
		if c == ic {
			return true
		}
	}
	return false
}

func (c Category) IsExpense() bool {
	return c.Valid() && !c.IsIncome()
}

// IncomeCategories returns the income-side categories in declaration order.
func IncomeCategories() []Category {
	return append([]Category(nil), incomeCategories...)
}

// ExpenseCategories returns the expense-side categories in declaration order.
func ExpenseCategories() []Category {
	return append([]Category(nil), expenseCategories...)
}

type Transaction struct {
	ID              int             `json:"id,omitempty" db:"id,omitempty"`
	UserID          int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	Category        Category        `json:"category" db:"category"`
	Description     string          `json:"description" db:"description"`
	Date            string          `json:"date" db:"date"`
	CreatedAt       sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt       sql.NullString  `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
