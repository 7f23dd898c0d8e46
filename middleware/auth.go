package middleware

import (
	"context"
	"net/http"

	"github.com/marinsprosper/minha-plataforma/utils"
)

// AuthMiddleware validates the bearer token and injects the subject user id
// and role into the request context. The token is trusted as-is; handlers
// that need fresh user data (wallet, deposits) re-read the row themselves.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := utils.BearerToken(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
			return
		}

		userID, role, err := utils.ValidateToken(tokenStr)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Token inválido.")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
