// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes registers all HTTP endpoints and returns the router wrapped in the
// middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → logRequest → enableCORS → rateLimit → router
//
// Endpoints:
//
//	GET    /api/books            – list books (?sort=, ?genre=)
//	GET    /api/books/genres     – distinct genres in use
//	GET    /api/books/monthly    – completed books per month
//	POST   /api/books            – create a book
//	PUT    /api/books/:id        – replace a book
//	DELETE /api/books/:id        – delete a book
//	GET    /api/goals            – goal for ?year=&month= (default: this month)
//	PUT    /api/goals            – upsert a goal
//	GET    /api/goals/progress   – goal plus books completed that month
//	GET    /api/stats            – totals over the whole log
//	GET    /healthcheck          – liveness
//	GET    /metrics              – Prometheus metrics
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/genres", app.listGenresHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/monthly", app.monthlyCountsHandler)
	router.HandlerFunc(http.MethodPost, "/api/books", app.createBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", app.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/api/goals", app.showGoalHandler)
	router.HandlerFunc(http.MethodPut, "/api/goals", app.updateGoalHandler)
	router.HandlerFunc(http.MethodGet, "/api/goals/progress", app.goalProgressHandler)

	router.HandlerFunc(http.MethodGet, "/api/stats", app.statsHandler)
	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(app.metrics.registry, promhttp.HandlerOpts{}))

	return app.recoverPanic(app.requestID(app.logRequest(app.enableCORS(app.rateLimit(router)))))
}
