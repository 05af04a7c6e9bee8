package insights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"myfintrack/internal/api/handlers"
	"myfintrack/internal/models"
	"myfintrack/internal/repositories/financestore"
	"myfintrack/internal/repositories/sqlconnect"
	"myfintrack/internal/services"
	"myfintrack/pkg/utils"
)

const insightColumns = "id, user_id, insight_type, title, content, data, is_read, created_at"

func scanInsight(row interface {
	Scan(dest ...interface{}) error
}) (models.FinancialInsight, error) {
	var insight models.FinancialInsight
	err := row.Scan(&insight.ID, &insight.UserID, &insight.InsightType, &insight.Title,
		&insight.Content, &insight.Data, &insight.IsRead, &insight.CreatedAt)
	return insight, err
}

// FUNC TO GET ALL INSIGHTS FOR A USER
func GetAllUserInsights(w http.ResponseWriter, r *http.Request) {
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
		"SELECT "+insightColumns+" FROM financial_insights WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		utils.Logger.Errorf("error fetching insights: %v", err)
		utils.WriteError(w, "error fetching insights", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	insights := []models.FinancialInsight{}
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error fetching insight", http.StatusInternalServerError)
			return
		}
		insights = append(insights, insight)
	}

	utils.WriteJSON(w, struct {
		Status string                    `json:"status"`
		Count  int                       `json:"count"`
		Data   []models.FinancialInsight `json:"data"`
	}{Status: "success", Count: len(insights), Data: insights})
}

// FUNC TO GENERATE FRESH INSIGHTS FROM TRANSACTION HISTORY
func GenerateInsightsHandler(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	store := financestore.New(db)
	svc := services.NewInsightService(store, services.NewBudgetService(store))
	generated, err := svc.Generate(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientData) {
			utils.WriteError(w, "not enough transaction data to generate insights", http.StatusBadRequest)
			return
		}
		utils.Logger.Errorf("error generating insights: %v", err)
		utils.WriteError(w, "error generating insights", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(struct {
		Status string                    `json:"status"`
		Count  int                       `json:"count"`
		Data   []models.FinancialInsight `json:"data"`
	}{Status: "success", Count: len(generated), Data: generated})
}

// FUNC TO GET ONE INSIGHT BY ID
func GetInsightById(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	insightID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid insight ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	insight, err := scanInsight(db.QueryRowContext(ctx,
		"SELECT "+insightColumns+" FROM financial_insights WHERE id = ? AND user_id = ?",
		insightID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no insight found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching data: %v", err)
		utils.WriteError(w, "error fetching insight", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string                  `json:"status"`
		Data   models.FinancialInsight `json:"data"`
	}{Status: "success", Data: insight})
}

// FUNC TO MARK AN INSIGHT AS READ
func MarkInsightAsReadHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	insightID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid insight ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Marking an already-read insight is a no-op, so check existence rather
	// than rows affected.
	_, err = db.ExecContext(ctx,
		"UPDATE financial_insights SET is_read = TRUE WHERE id = ? AND user_id = ?",
		insightID, userID)
	if err != nil {
		utils.Logger.Errorf("error marking insight as read: %v", err)
		utils.WriteError(w, "error marking insight as read", http.StatusInternalServerError)
		return
	}

	insight, err := scanInsight(db.QueryRowContext(ctx,
		"SELECT "+insightColumns+" FROM financial_insights WHERE id = ? AND user_id = ?",
		insightID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no insight found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching updated insight: %v", err)
		utils.WriteError(w, "error marking insight as read", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string                  `json:"status"`
		Data   models.FinancialInsight `json:"data"`
	}{Status: "success", Data: insight})
}

// FUNC TO DELETE AN INSIGHT
func DeleteInsightHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	insightID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid insight ID", http.StatusBadRequest)
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
		"DELETE FROM financial_insights WHERE id = ? AND user_id = ?", insightID, userID)
	if err != nil {
		utils.Logger.Errorf("error deleting insight: %v", err)
		utils.WriteError(w, "error deleting insight", http.StatusInternalServerError)
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		utils.WriteError(w, "no insight found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "insight deleted",
	})
}
