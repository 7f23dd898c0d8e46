package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type adminUserDTO struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	DepixAddress  *string `json:"depix_address"`
	CommissionBps *int    `json:"commission_bps"`
	CreatedAt     string  `json:"created_at"`
}

// GET /api/admin/users
func GetUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Limit(500).Find(&users).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	items := make([]adminUserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, adminUserDTO{
			ID:            u.ID,
			Email:         u.Email,
			Role:          u.Role,
			DepixAddress:  u.DepixAddress,
			CommissionBps: u.CommissionBps,
			CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

type UpdateCommissionRequest struct {
	// Pointer on purpose: an explicit null clears the override and the user
	// falls back to the global default.
	CommissionBps *int `json:"commission_bps"`
}

// PUT /api/admin/users/{id}/commission
func UpdateUserCommission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
		return
	}

	var req UpdateCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	if req.CommissionBps != nil && (*req.CommissionBps < 0 || *req.CommissionBps > 5000) {
		utils.WriteError(w, http.StatusBadRequest, "commission_bps inválido (0..5000).")
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	if err := db.Model(&user).Update("commission_bps", req.CommissionBps).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Comissão atualizada."})
}
