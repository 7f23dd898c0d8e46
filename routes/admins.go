package routes

import (
	"net/http"

	"github.com/marinsprosper/minha-plataforma/controllers/admins"
	"github.com/marinsprosper/minha-plataforma/middleware"

	"github.com/gorilla/mux"
)

// SetAdminRoutes registers the operator surface. Every route requires an
// authenticated admin token.
func SetAdminRoutes(api *mux.Router) {
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware, middleware.RequireAdmin)

	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/commission", http.HandlerFunc(admins.UpdateUserCommission)).Methods(http.MethodPut)

	adminRouter.Handle("/settings/default-commission", http.HandlerFunc(admins.UpdateDefaultCommission)).Methods(http.MethodPut)

	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.GetWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/status", http.HandlerFunc(admins.UpdateWithdrawalStatus)).Methods(http.MethodPut)

	adminRouter.Handle("/uploads/{file}", http.HandlerFunc(admins.GetReceipt)).Methods(http.MethodGet)
}
