package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "MONTHLY"
	PeriodYearly  BudgetPeriod = "YEARLY"
)

func (p BudgetPeriod) Valid() bool {
	return p == PeriodMonthly || p == PeriodYearly
}

func (p BudgetPeriod) Label() string {
	switch p {
	case PeriodMonthly:
		return "Monthly"
	case PeriodYearly:
		return "Yearly"
	}
	return string(p)
}

// Budget caps spending for one (user, category, period) triple. The
// database enforces uniqueness on that triple.
type Budget struct {
	ID        int             `json:"id,omitempty" db:"id,omitempty"`
	UserID    int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	Category  Category        `json:"category" db:"category"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Period    BudgetPeriod    `json:"period" db:"period"`
	CreatedAt sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt sql.NullString  `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
