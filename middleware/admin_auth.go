package middleware

import (
	"net/http"

	"github.com/marinsprosper/minha-plataforma/utils"
)

// RequireAdmin rejects non-admin callers. It runs after AuthMiddleware, so a
// missing role means a missing token. 403 (not 404) is deliberate: admin
// routes don't pretend not to exist.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := utils.GetUserRole(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
			return
		}
		if role != "admin" {
			utils.WriteError(w, http.StatusForbidden, "Acesso negado.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
