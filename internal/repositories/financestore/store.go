package financestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/models"
	"myfintrack/internal/services"
	"myfintrack/pkg/utils"
)

// Store implements the aggregate read/write surface the services layer
// needs, over MySQL. Every query is scoped by owner id.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ services.Store = (*Store)(nil)

const incomeExpenseSums = `
	SELECT
		COALESCE(SUM(CASE WHEN transaction_type = 'IN' THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN transaction_type = 'EX' THEN amount ELSE 0 END), 0)
	FROM transactions
	WHERE user_id = ?`

func (s *Store) MonthTotals(ctx context.Context, userID, year, month int) (services.Totals, error) {
	return s.scanTotals(ctx,
		incomeExpenseSums+" AND YEAR(date) = ? AND MONTH(date) = ?",
		userID, year, month)
}

func (s *Store) LifetimeTotals(ctx context.Context, userID int) (services.Totals, error) {
	return s.scanTotals(ctx, incomeExpenseSums, userID)
}

func (s *Store) TotalsSince(ctx context.Context, userID int, since time.Time) (services.Totals, error) {
	return s.scanTotals(ctx,
		incomeExpenseSums+" AND date >= ?",
		userID, since.Format("2006-01-02"))
}

func (s *Store) scanTotals(ctx context.Context, query string, args ...any) (services.Totals, error) {
	var totals services.Totals
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&totals.Income, &totals.Expenses)
	if err != nil {
		return totals, utils.ErrorHandler(err, "failed to sum transactions")
	}
	return totals, nil
}

func (s *Store) CategoryExpenseTotalsByMonth(ctx context.Context, userID, year, month int) ([]services.CategoryTotal, error) {
	return s.scanCategoryTotals(ctx, `
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = ? AND transaction_type = 'EX' AND YEAR(date) = ? AND MONTH(date) = ?
		GROUP BY category
		ORDER BY total DESC`,
		userID, year, month)
}

func (s *Store) CategoryExpenseTotalsSince(ctx context.Context, userID int, since *time.Time) ([]services.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = ? AND transaction_type = 'EX'`
	args := []any{userID}

	if since != nil {
		query += " AND date >= ?"
		args = append(args, since.Format("2006-01-02"))
	}
	query += " GROUP BY category ORDER BY total DESC"

	return s.scanCategoryTotals(ctx, query, args...)
}

func (s *Store) scanCategoryTotals(ctx context.Context, query string, args ...any) ([]services.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to group expenses by category")
	}
	defer rows.Close()

	var totals []services.CategoryTotal
	for rows.Next() {
		var ct services.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan category total")
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

func (s *Store) CategoryExpenseStats(ctx context.Context, userID int, since time.Time) ([]services.CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND transaction_type = 'EX' AND date >= ?
		GROUP BY category`,
		userID, since.Format("2006-01-02"))
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to count expenses by category")
	}
	defer rows.Close()

	var stats []services.CategoryStat
	for rows.Next() {
		var st services.CategoryStat
		if err := rows.Scan(&st.Category, &st.Count, &st.Total); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan category stat")
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *Store) CategoryExpenseSum(ctx context.Context, userID int, category models.Category, year, month int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND transaction_type = 'EX' AND category = ? AND YEAR(date) = ?`
	args := []any{userID, category, year}

	if month != 0 {
		query += " AND MONTH(date) = ?"
		args = append(args, month)
	}

	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, utils.ErrorHandler(err, "failed to sum category expenses")
	}
	return sum, nil
}

func (s *Store) EarliestTransactionDate(ctx context.Context, userID int) (time.Time, bool, error) {
	var date sql.NullTime
	err := s.db.QueryRowContext(ctx,
		"SELECT MIN(date) FROM transactions WHERE user_id = ?",
		userID).Scan(&date)
	if err != nil {
		return time.Time{}, false, utils.ErrorHandler(err, "failed to find earliest transaction")
	}
	if !date.Valid {
		return time.Time{}, false, nil
	}
	return date.Time, true, nil
}

func (s *Store) TransactionCount(ctx context.Context, userID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE user_id = ?",
		userID).Scan(&count)
	if err != nil {
		return 0, utils.ErrorHandler(err, "failed to count transactions")
	}
	return count, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID int) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, category, amount, period, created_at, updated_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY category, period`,
		userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to list budgets")
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Period, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan budget")
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *Store) CreateInsight(ctx context.Context, insight *models.FinancialInsight) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO financial_insights (user_id, insight_type, title, content, data, is_read)
		VALUES (?, ?, ?, ?, ?, ?)`,
		insight.UserID, insight.InsightType, insight.Title, insight.Content, insight.Data, insight.IsRead)
	if err != nil {
		return utils.ErrorHandler(err, "failed to insert insight")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return utils.ErrorHandler(err, "failed to read insight id")
	}
	insight.ID = int(id)
	return nil
}
