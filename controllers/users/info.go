package users

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"
)

// GET /api/me
// Re-reads the user row (the token alone is not trusted for profile data) and
// reports the effective commission the user would pay on a deposit right now.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Usuário não encontrado.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"id":             user.ID,
			"email":          user.Email,
			"role":           user.Role,
			"depix_address":  user.DepixAddress,
			"commission_bps": user.EffectiveCommissionBps(models.GetDefaultCommissionBps(db)),
			"created_at":     user.CreatedAt.Format(time.RFC3339),
		},
	})
}

type UpdateWalletRequest struct {
	DepixAddress string `json:"depix_address"`
}

// PUT /api/me/wallet
func UpdateWalletHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	var req UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}

	addr := strings.TrimSpace(req.DepixAddress)
	if !models.IsProbablyDepixAddress(addr) {
		utils.WriteError(w, http.StatusBadRequest, "Endereço DePix inválido.")
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", uid).
		Update("depix_address", addr).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Carteira atualizada."})
}
