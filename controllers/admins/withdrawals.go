package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type adminWithdrawalDTO struct {
	ID                   uint    `json:"id"`
	UserID               uint    `json:"user_id"`
	UserEmail            string  `json:"user_email"`
	AmountDepix          string  `json:"amount_depix"`
	PixDestination       string  `json:"pix_destination"`
	UserDepixAddress     string  `json:"user_depix_address"`
	PlatformDepixAddress string  `json:"platform_depix_address"`
	TxID                 *string `json:"txid"`
	ReceiptPath          *string `json:"receipt_path"`
	Status               string  `json:"status"`
	AdminNote            *string `json:"admin_note"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// GET /api/admin/withdrawals
func GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	type withdrawalWithEmail struct {
		models.Withdrawal
		UserEmail string
	}

	var rows []withdrawalWithEmail
	err := database.DB.Model(&models.Withdrawal{}).
		Select("withdrawals.*, users.email AS user_email").
		Joins("JOIN users ON users.id = withdrawals.user_id").
		Order("withdrawals.created_at DESC").
		Limit(200).
		Find(&rows).Error
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	items := make([]adminWithdrawalDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, adminWithdrawalDTO{
			ID:                   row.ID,
			UserID:               row.UserID,
			UserEmail:            row.UserEmail,
			AmountDepix:          row.AmountDepix,
			PixDestination:       row.PixDestination,
			UserDepixAddress:     row.UserDepixAddress,
			PlatformDepixAddress: row.PlatformDepixAddress,
			TxID:                 row.TxID,
			ReceiptPath:          row.ReceiptPath,
			Status:               row.Status,
			AdminNote:            row.AdminNote,
			CreatedAt:            row.CreatedAt.Format(time.RFC3339),
			UpdatedAt:            row.UpdatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

type UpdateWithdrawalStatusRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}

// PUT /api/admin/withdrawals/{id}/status
// Any of the five states can be set here, including moving backwards. Manual
// settlement goes wrong in ways the linear machine can't express, so the
// operator keeps a direct override.
func UpdateWithdrawalStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
		return
	}

	var req UpdateWithdrawalStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	status := strings.TrimSpace(req.Status)
	if !models.IsValidWithdrawalStatus(status) {
		utils.WriteError(w, http.StatusBadRequest, "Status inválido.")
		return
	}

	db := database.DB
	var withdrawal models.Withdrawal
	if err := db.First(&withdrawal, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	var note *string
	if n := strings.TrimSpace(req.AdminNote); n != "" {
		note = &n
	}
	if err := db.Model(&withdrawal).Updates(map[string]interface{}{
		"status":     status,
		"admin_note": note,
	}).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Status atualizado."})
}
