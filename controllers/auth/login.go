package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
// The failure message is identical for unknown e-mail and wrong password so
// the endpoint doesn't confirm which accounts exist.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login realizado.",
		Data:    map[string]string{"token": token},
	})
}
