package routers

import (
	"myfintrack/internal/api/handlers/budgets"
	"net/http"
)

func budgetsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /budgets/{$}", budgets.GetAllUserBudgets)
	mux.HandleFunc("POST /budgets/{$}", budgets.CreateBudgetHandler)

	mux.HandleFunc("GET /budgets/summary", budgets.GetBudgetSummaryHandler)

	mux.HandleFunc("GET /budgets/{id}", budgets.GetBudgetById)
	mux.HandleFunc("PUT /budgets/{id}", budgets.UpdateBudgetHandler)
	mux.HandleFunc("PATCH /budgets/{id}", budgets.UpdateBudgetHandler)
	mux.HandleFunc("DELETE /budgets/{id}", budgets.DeleteBudgetHandler)

	return mux
}
