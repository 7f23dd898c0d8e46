package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	TaxNumber string `json:"tax_number"`
}

var nonDigits = regexp.MustCompile(`\D`)

// POST /api/auth/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		utils.WriteError(w, http.StatusBadRequest, "Email inválido.")
		return
	}
	if len(req.Password) < 8 {
		utils.WriteError(w, http.StatusBadRequest, "Senha deve ter 8+ caracteres.")
		return
	}

	db := database.DB
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.WriteError(w, http.StatusConflict, "Email já cadastrado.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	role := "user"
	if adminEmail := utils.AdminEmail(); adminEmail != "" && email == adminEmail {
		role = "admin"
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if name := strings.TrimSpace(req.FullName); name != "" {
		user.FullName = &name
	}
	if tax := nonDigits.ReplaceAllString(req.TaxNumber, ""); tax != "" {
		user.TaxNumber = &tax
	}

	if err := db.Create(&user).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Cadastro realizado.",
		Data:    map[string]string{"token": token},
	})
}
