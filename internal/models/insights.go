package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type InsightType string

const (
	InsightSpendingPattern    InsightType = "SPENDING_PATTERN"
	InsightSavingsOpportunity InsightType = "SAVINGS_OPPORTUNITY"
	InsightBudgetAlert        InsightType = "BUDGET_ALERT"
	InsightGeneralAdvice      InsightType = "GENERAL_ADVICE"
)

func (t InsightType) Valid() bool {
	switch t {
	case InsightSpendingPattern, InsightSavingsOpportunity, InsightBudgetAlert, InsightGeneralAdvice:
		return true
	}
	return false
}

// JSONMap carries the numeric evidence behind an insight narrative. It is
// stored in a JSON column and round-trips as a real map rather than an
// opaque string.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal insight data: %w", err)
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// FinancialInsight is system-authored advisory text. Callers only ever flip
// IsRead; everything else is written once by the generator.
type FinancialInsight struct {
	ID          int            `json:"id,omitempty" db:"id,omitempty"`
	UserID      int            `json:"user_id,omitempty" db:"user_id,omitempty"`
	InsightType InsightType    `json:"insight_type" db:"insight_type"`
	Title       string         `json:"title" db:"title"`
	Content     string         `json:"content" db:"content"`
	Data        JSONMap        `json:"data" db:"data"`
	IsRead      bool           `json:"is_read" db:"is_read"`
	CreatedAt   sql.NullString `json:"created_at,omitempty" db:"created_at,omitempty"`
}
