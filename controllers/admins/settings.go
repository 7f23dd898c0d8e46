package admins

import (
	"encoding/json"
	"net/http"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"
)

type UpdateDefaultCommissionRequest struct {
	CommissionBps *int `json:"commission_bps"`
	// Percent is accepted as a convenience ("2,50" → 250 bps). Ignored when
	// commission_bps is present.
	CommissionPercent string `json:"commission_percent"`
}

// PUT /api/admin/settings/default-commission
// Range is validated here, at the boundary; the settings store itself does
// not re-check. Existing deposits keep their snapshotted rate.
func UpdateDefaultCommission(w http.ResponseWriter, r *http.Request) {
	var req UpdateDefaultCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}

	bps := req.CommissionBps
	if bps == nil && req.CommissionPercent != "" {
		v, err := utils.ParsePercentToBasisPoints(req.CommissionPercent)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "commission_percent inválido.")
			return
		}
		bps = &v
	}
	if bps == nil || *bps < 0 || *bps > 5000 {
		utils.WriteError(w, http.StatusBadRequest, "commission_bps inválido (0..5000).")
		return
	}

	if err := models.SetDefaultCommissionBps(database.DB, *bps); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Comissão padrão atualizada."})
}
