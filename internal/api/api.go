// Package api exposes the trip ledger over a JSON REST surface. All amounts
// cross the wire as integer cents.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jdsingh122918/steamboat-sub004/internal/auth"
	"github.com/jdsingh122918/steamboat-sub004/internal/metrics"
	"github.com/jdsingh122918/steamboat-sub004/internal/middleware"
	"github.com/jdsingh122918/steamboat-sub004/internal/service"
)

// API wires the services to the HTTP router.
type API struct {
	auth     *service.AuthService
	trips    *service.TripService
	expenses *service.ExpenseService
	ledger   *service.LedgerService
	jwt      *auth.JWTManager
}

// New creates the API with its service dependencies.
func New(authSvc *service.AuthService, trips *service.TripService, expenses *service.ExpenseService, ledgerSvc *service.LedgerService, jwt *auth.JWTManager) *API {
	return &API{
		auth:     authSvc,
		trips:    trips,
		expenses: expenses,
		ledger:   ledgerSvc,
		jwt:      jwt,
	}
}

// Router builds the chi router with middleware and all routes.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Instrument)
	r.Use(middleware.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/auth/register", a.handleRegister)
	r.Post("/auth/login", a.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(a.jwt))

		r.Post("/trips", a.handleCreateTrip)
		r.Route("/trips/{tripID}", func(r chi.Router) {
			r.Post("/members", a.handleAddMember)
			r.Post("/expenses", a.handleCreateExpense)
			r.Get("/expenses", a.handleListExpenses)
			r.Delete("/expenses/{expenseID}", a.handleDeleteExpense)
			r.Post("/payments", a.handleCreatePayment)
			r.Get("/balances", a.handleBalances)
			r.Get("/balances/settlements", a.handlePlanSettlement)
			r.Post("/balances/settlements", a.handleExecuteSettlement)
		})
	})

	return r
}
