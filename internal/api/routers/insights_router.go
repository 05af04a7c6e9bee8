package routers

import (
	"myfintrack/internal/api/handlers/insights"
	"net/http"
)

func insightsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /insights/{$}", insights.GetAllUserInsights)
	mux.HandleFunc("POST /insights/generate", insights.GenerateInsightsHandler)

	mux.HandleFunc("GET /insights/{id}", insights.GetInsightById)
	mux.HandleFunc("POST /insights/{id}/mark_as_read", insights.MarkInsightAsReadHandler)
	mux.HandleFunc("DELETE /insights/{id}", insights.DeleteInsightHandler)

	return mux
}
