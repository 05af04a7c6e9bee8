package budgets

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/api/handlers"
	"myfintrack/internal/models"
	"myfintrack/internal/repositories/financestore"
	"myfintrack/internal/repositories/sqlconnect"
	"myfintrack/internal/services"
	"myfintrack/pkg/utils"
)

type budgetRequest struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Period   *string          `json:"period"`
}

func (req budgetRequest) validate(requireAll bool) (string, bool) {
	if requireAll {
		if req.Category == nil {
			return "category is required", false
		}
		if req.Amount == nil {
			return "amount is required", false
		}
		if req.Period == nil {
			return "period is required", false
		}
	}
	if req.Category != nil && !models.Category(*req.Category).Valid() {
		return "invalid category code", false
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return "amount must be greater than zero", false
	}
	if req.Period != nil && !models.BudgetPeriod(*req.Period).Valid() {
		return "invalid period code", false
	}
	return "", true
}

type budgetWithUsage struct {
	models.Budget
	UsagePercentage int `json:"usage_percentage"`
}

const budgetColumns = "id, user_id, category, amount, period, created_at, updated_at"

func scanBudget(row interface {
	Scan(dest ...interface{}) error
}) (models.Budget, error) {
	var budget models.Budget
	err := row.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Amount,
		&budget.Period, &budget.CreatedAt, &budget.UpdatedAt)
	return budget, err
}

func withUsage(ctx context.Context, db *sql.DB, budget models.Budget) (budgetWithUsage, error) {
	svc := services.NewBudgetService(financestore.New(db))
	usage, err := svc.UsagePercentage(ctx, budget, 0, 0)
	if err != nil {
		return budgetWithUsage{}, err
	}
	return budgetWithUsage{Budget: budget, UsagePercentage: usage}, nil
}

// FUNC TO GET ALL BUDGETS FOR A USER
func GetAllUserBudgets(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = ? ORDER BY category, period", userID)
	if err != nil {
		utils.Logger.Errorf("error fetching budgets: %v", err)
		utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	svc := services.NewBudgetService(financestore.New(db))
	budgets := []budgetWithUsage{}
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error fetching budget", http.StatusInternalServerError)
			return
		}
		usage, err := svc.UsagePercentage(ctx, budget, 0, 0)
		if err != nil {
			utils.Logger.Errorf("error computing budget usage: %v", err)
			utils.WriteError(w, "error fetching budget", http.StatusInternalServerError)
			return
		}
		budgets = append(budgets, budgetWithUsage{Budget: budget, UsagePercentage: usage})
	}

	utils.WriteJSON(w, struct {
		Status string            `json:"status"`
		Count  int               `json:"count"`
		Data   []budgetWithUsage `json:"data"`
	}{Status: "success", Count: len(budgets), Data: budgets})
}

// FUNC TO CREATE A BUDGET
func CreateBudgetHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req budgetRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if msg, ok := req.validate(true); !ok {
		utils.WriteError(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx,
		"INSERT INTO budgets (user_id, category, amount, period) VALUES (?, ?, ?, ?)",
		userID, *req.Category, req.Amount, *req.Period)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "budget already exists for this category and period", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error creating budget: %v", err)
		utils.WriteError(w, "error creating budget", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("error reading budget id: %v", err)
		utils.WriteError(w, "error creating budget", http.StatusInternalServerError)
		return
	}

	budget, err := scanBudget(db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		utils.Logger.Errorf("error fetching created budget: %v", err)
		utils.WriteError(w, "error creating budget", http.StatusInternalServerError)
		return
	}

	entry, err := withUsage(ctx, db, budget)
	if err != nil {
		utils.Logger.Errorf("error computing budget usage: %v", err)
		utils.WriteError(w, "error creating budget", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(struct {
		Status string          `json:"status"`
		Data   budgetWithUsage `json:"data"`
	}{Status: "success", Data: entry})
}

// FUNC TO GET ONE BUDGET BY ID
func GetBudgetById(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	budgetID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	budget, err := scanBudget(db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = ? AND user_id = ?", budgetID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no budget found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching data: %v", err)
		utils.WriteError(w, "error fetching budget", http.StatusInternalServerError)
		return
	}

	entry, err := withUsage(ctx, db, budget)
	if err != nil {
		utils.Logger.Errorf("error computing budget usage: %v", err)
		utils.WriteError(w, "error fetching budget", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string          `json:"status"`
		Data   budgetWithUsage `json:"data"`
	}{Status: "success", Data: entry})
}

// FUNC TO UPDATE A BUDGET (PUT = full, PATCH = partial)
func UpdateBudgetHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	budgetID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req budgetRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if msg, ok := req.validate(r.Method == http.MethodPut); !ok {
		utils.WriteError(w, msg, http.StatusBadRequest)
		return
	}

	sets := []string{}
	args := []interface{}{}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, req.Amount)
	}
	if req.Period != nil {
		sets = append(sets, "period = ?")
		args = append(args, *req.Period)
	}
	if len(sets) == 0 {
		utils.WriteError(w, "no fields to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	args = append(args, budgetID, userID)
	_, err = db.ExecContext(ctx,
		"UPDATE budgets SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "budget already exists for this category and period", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error updating budget: %v", err)
		utils.WriteError(w, "error updating budget", http.StatusInternalServerError)
		return
	}

	budget, err := scanBudget(db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = ? AND user_id = ?", budgetID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no budget found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching updated budget: %v", err)
		utils.WriteError(w, "error updating budget", http.StatusInternalServerError)
		return
	}

	entry, err := withUsage(ctx, db, budget)
	if err != nil {
		utils.Logger.Errorf("error computing budget usage: %v", err)
		utils.WriteError(w, "error updating budget", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string          `json:"status"`
		Data   budgetWithUsage `json:"data"`
	}{Status: "success", Data: entry})
}

// FUNC TO DELETE A BUDGET
func DeleteBudgetHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	budgetID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx,
		"DELETE FROM budgets WHERE id = ? AND user_id = ?", budgetID, userID)
	if err != nil {
		utils.Logger.Errorf("error deleting budget: %v", err)
		utils.WriteError(w, "error deleting budget", http.StatusInternalServerError)
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		utils.WriteError(w, "no budget found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "budget deleted",
	})
}

// FUNC TO GET THE OVERALL BUDGET SUMMARY
func GetBudgetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	svc := services.NewBudgetService(financestore.New(db))
	summary, err := svc.BudgetSummary(ctx, userID)
	if err != nil {
		utils.Logger.Errorf("error building budget summary: %v", err)
		utils.WriteError(w, "error building budget summary", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string                 `json:"status"`
		Data   services.BudgetSummary `json:"data"`
	}{Status: "success", Data: summary})
}
