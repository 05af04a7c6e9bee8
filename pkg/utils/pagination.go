package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// GetPaginationParams reads page/limit query parameters, defaulting to
// page 1 with 20 rows and capping limit at 100.
func GetPaginationParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

var sortableColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"created_at": "created_at",
}

// AddSorting appends an ORDER BY clause from sortBy/sortOrder query
// parameters. Only whitelisted columns are accepted; anything else falls
// back to the default ordering of newest first.
func AddSorting(r *http.Request, query string) string {
	column, ok := sortableColumns[r.URL.Query().Get("sortBy")]
	if !ok {
		return query + " ORDER BY date DESC, created_at DESC"
	}

	order := "ASC"
	if strings.EqualFold(r.URL.Query().Get("sortOrder"), "desc") {
		order = "DESC"
	}

	return fmt.Sprintf("%s ORDER BY %s %s", query, column, order)
}
