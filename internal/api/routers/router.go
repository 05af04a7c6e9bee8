package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	uRouter := usersRouter()
	mux.Handle("/users/", uRouter)

	tRouter := transactionsRouter()
	mux.Handle("/transactions/", tRouter)

	bRouter := budgetsRouter()
	mux.Handle("/budgets/", bRouter)

	iRouter := insightsRouter()
	mux.Handle("/insights/", iRouter)

	return mux
}
