package routes

import (
	"net/http"
	"time"

	"github.com/marinsprosper/minha-plataforma/controllers/auth"
	"github.com/marinsprosper/minha-plataforma/controllers/users"
	"github.com/marinsprosper/minha-plataforma/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers authentication and user-facing routes.
func UsersRoutes(api *mux.Router) {
	// Only the credential endpoints are rate limited; everything else is
	// already gated by a bearer token.
	loginLimiter := middleware.NewIPRateLimiter(30, 5*time.Minute)

	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)

	api.Handle("/me", middleware.AuthMiddleware(http.HandlerFunc(users.InfoHandler))).Methods(http.MethodGet)
	api.Handle("/me/wallet", middleware.AuthMiddleware(http.HandlerFunc(users.UpdateWalletHandler))).Methods(http.MethodPut)

	api.Handle("/deposits", middleware.AuthMiddleware(http.HandlerFunc(users.CreateDepositHandler))).Methods(http.MethodPost)
	api.Handle("/deposits", middleware.AuthMiddleware(http.HandlerFunc(users.ListDepositsHandler))).Methods(http.MethodGet)
	api.Handle("/deposits/{id}", middleware.AuthMiddleware(http.HandlerFunc(users.GetDepositHandler))).Methods(http.MethodGet)

	api.Handle("/withdrawals", middleware.AuthMiddleware(http.HandlerFunc(users.CreateWithdrawalHandler))).Methods(http.MethodPost)
	api.Handle("/withdrawals", middleware.AuthMiddleware(http.HandlerFunc(users.ListWithdrawalsHandler))).Methods(http.MethodGet)
	api.Handle("/withdrawals/{id:[0-9]+}/proof", middleware.AuthMiddleware(http.HandlerFunc(users.SubmitProofHandler))).Methods(http.MethodPost)
}
