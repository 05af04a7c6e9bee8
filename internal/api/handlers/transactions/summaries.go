package transactions

import (
	"context"
	"net/http"
	"time"

	"myfintrack/internal/api/handlers"
	"myfintrack/internal/models"
	"myfintrack/internal/repositories/financestore"
	"myfintrack/internal/repositories/sqlconnect"
	"myfintrack/internal/services"
	"myfintrack/pkg/utils"
)

// FUNC TO GET THE CURRENT MONTH SUMMARY
func GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
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

	svc := services.NewPeriodService(financestore.New(db))
	summary, err := svc.CurrentMonthSummary(ctx, userID, time.Now())
	if err != nil {
		utils.Logger.Errorf("error building summary: %v", err)
		utils.WriteError(w, "error building summary", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string                       `json:"status"`
		Data   services.CurrentMonthSummary `json:"data"`
	}{Status: "success", Data: summary})
}

// FUNC TO GET THE PER MONTH SUMMARY OVER A TIME RANGE
func GetMonthlySummaryHandler(w http.ResponseWriter, r *http.Request) {
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

	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = services.TimeRange6Months
	}

	svc := services.NewPeriodService(financestore.New(db))
	entries, err := svc.MonthlySummary(ctx, userID, time.Now(), timeRange)
	if err != nil {
		utils.Logger.Errorf("error building monthly summary: %v", err)
		utils.WriteError(w, "error building monthly summary", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string                         `json:"status"`
		Data   []services.MonthlySummaryEntry `json:"data"`
	}{Status: "success", Data: entries})
}

// FUNC TO GET EXPENSE TOTALS GROUPED BY CATEGORY
func GetCategorySummaryHandler(w http.ResponseWriter, r *http.Request) {
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

	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = services.TimeRange6Months
	}

	svc := services.NewPeriodService(financestore.New(db))
	breakdown, err := svc.CategorySummary(ctx, userID, time.Now(), timeRange)
	if err != nil {
		utils.Logger.Errorf("error building category summary: %v", err)
		utils.WriteError(w, "error building category summary", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string                     `json:"status"`
		Data   []services.CategoryExpense `json:"data"`
	}{Status: "success", Data: breakdown})
}

type categoryChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FUNC TO LIST THE VALID TRANSACTION CATEGORIES
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	choices := func(categories []models.Category) []categoryChoice {
		out := make([]categoryChoice, 0, len(categories))
		for _, c := range categories {
			out = append(out, categoryChoice{Value: string(c), Label: c.Label()})
		}
		return out
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"income":  choices(models.IncomeCategories()),
			"expense": choices(models.ExpenseCategories()),
		},
	})
}
