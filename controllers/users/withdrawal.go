package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type CreateWithdrawalRequest struct {
	AmountDepix    string `json:"amount_depix"`
	PixDestination string `json:"pix_destination"`
}

// POST /api/withdrawals
// No provider call: the user sends DePix to the platform address by hand and
// later attaches proof. The amount is stored as typed, without rounding.
func CreateWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	platformAddress := utils.PlatformDepixAddress()
	if platformAddress == "" {
		utils.WriteError(w, http.StatusInternalServerError, "PLATFORM_DEPIX_ADDRESS não configurado.")
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Usuário não encontrado.")
		return
	}
	if user.DepixAddress == nil || *user.DepixAddress == "" {
		utils.WriteError(w, http.StatusBadRequest, "Cadastre sua carteira DePix primeiro.")
		return
	}

	var req CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	amount := strings.TrimSpace(req.AmountDepix)
	destination := strings.TrimSpace(req.PixDestination)
	if amount == "" {
		utils.WriteError(w, http.StatusBadRequest, "Informe o valor em DePix.")
		return
	}
	if destination == "" {
		utils.WriteError(w, http.StatusBadRequest, "Informe o PIX de destino.")
		return
	}

	withdrawal := models.Withdrawal{
		UserID:               uid,
		AmountDepix:          amount,
		PixDestination:       destination,
		UserDepixAddress:     *user.DepixAddress,
		PlatformDepixAddress: platformAddress,
		Status:               models.WithdrawalAwaitingTransfer,
	}
	if err := db.Create(&withdrawal).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Saque registrado. Transfira o DePix para o endereço da plataforma.",
		Data: map[string]interface{}{
			"id":                     withdrawal.ID,
			"status":                 withdrawal.Status,
			"platform_depix_address": platformAddress,
		},
	})
}

// GET /api/withdrawals
func ListWithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	var withdrawals []models.Withdrawal
	if err := database.DB.Where("user_id = ?", uid).
		Order("created_at DESC").Limit(100).Find(&withdrawals).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: withdrawals})
}

type SubmitProofRequest struct {
	TxID       string `json:"txid"`
	FileBase64 string `json:"file_base64"`
}

// POST /api/withdrawals/{id}/proof
// The one place user-controlled binary data reaches disk. The stored path is
// synthesized from the withdrawal id and a timestamp; the declared media type
// only picks the extension.
func SubmitProofHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
		return
	}

	db := database.DB
	var withdrawal models.Withdrawal
	err = db.First(&withdrawal, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && withdrawal.UserID != uid) {
		utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	var req SubmitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	txid := strings.TrimSpace(req.TxID)
	if txid == "" {
		utils.WriteError(w, http.StatusBadRequest, "Informe o TXID.")
		return
	}

	mediaType, data, err := utils.DecodeReceiptDataURL(req.FileBase64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Envie o comprovante em base64 (dataURL).")
		return
	}

	receiptPath, err := utils.SaveReceipt(withdrawal.ID, mediaType, data)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	// txid and receipt path land together with the status flip.
	if err := db.Model(&withdrawal).Updates(map[string]interface{}{
		"tx_id":        txid,
		"receipt_path": receiptPath,
		"status":       models.WithdrawalUnderReview,
	}).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Comprovante recebido. Saque em análise.",
		Data: map[string]interface{}{
			"id":           withdrawal.ID,
			"status":       models.WithdrawalUnderReview,
			"receipt_path": receiptPath,
		},
	})
}
