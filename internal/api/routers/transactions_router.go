package routers

import (
	"myfintrack/internal/api/handlers/transactions"
	"net/http"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /transactions/{$}", transactions.GetAllUserTransactions)
	mux.HandleFunc("POST /transactions/{$}", transactions.CreateTransactionHandler)

	mux.HandleFunc("GET /transactions/summary", transactions.GetSummaryHandler)
	mux.HandleFunc("GET /transactions/monthly-summary", transactions.GetMonthlySummaryHandler)
	mux.HandleFunc("GET /transactions/category_summary", transactions.GetCategorySummaryHandler)
	mux.HandleFunc("GET /transactions/categories", transactions.GetCategoriesHandler)

	mux.HandleFunc("GET /transactions/{id}", transactions.GetTransactionById)
	mux.HandleFunc("PUT /transactions/{id}", transactions.UpdateTransactionHandler)
	mux.HandleFunc("PATCH /transactions/{id}", transactions.UpdateTransactionHandler)
	mux.HandleFunc("DELETE /transactions/{id}", transactions.DeleteTransactionHandler)

	return mux
}
