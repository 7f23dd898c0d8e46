package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type CreateDepositRequest struct {
	AmountBRL string `json:"amount_brl"`
}

// POST /api/deposits
// Order matters here: configuration and validation failures must happen
// before the provider is called, and nothing is persisted unless the provider
// returned a usable id.
func CreateDepositHandler(w http.ResponseWriter, r *http.Request) {
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
	eulen := utils.NewEulenClient()
	if !eulen.Configured() {
		utils.WriteError(w, http.StatusInternalServerError, "EULEN_API_TOKEN não configurado.")
		return
	}

	var req CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}

	amountInCents, err := utils.ParseAmountToCents(req.AmountBRL)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Valor inválido.")
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

	// Snapshot the financial terms now. Later changes to the user override or
	// the global default must not touch this deposit.
	commissionBps := user.EffectiveCommissionBps(models.GetDefaultCommissionBps(db))
	feeInCents, netInCents := utils.ComputeFee(amountInCents, commissionBps)

	created, err := eulen.CreateDeposit(r.Context(), amountInCents, platformAddress)
	if err != nil {
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) {
			utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{
				Success: false,
				Message: "Falha ao criar PIX.",
				Data: map[string]interface{}{
					"upstream_status": upstream.StatusCode,
					"upstream":        upstream.Body,
				},
			})
			return
		}
		utils.WriteError(w, http.StatusBadGateway, "Falha ao criar PIX.")
		return
	}

	deposit := models.Deposit{
		ID:                   created.ID,
		UserID:               uid,
		AmountInCents:        amountInCents,
		CommissionBps:        commissionBps,
		FeeInCents:           feeInCents,
		NetInCents:           netInCents,
		PlatformDepixAddress: platformAddress,
		UserDepixAddress:     *user.DepixAddress,
		Status:               "created",
		PayoutStatus:         "not_sent",
	}
	if created.QRCopyPaste != "" {
		deposit.QRCopyPaste = &created.QRCopyPaste
	}
	if created.QRImageURL != "" {
		deposit.QRImageURL = &created.QRImageURL
	}

	if err := db.Create(&deposit).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Depósito criado.",
		Data:    deposit,
	})
}

// GET /api/deposits
func ListDepositsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	var deposits []models.Deposit
	if err := database.DB.Where("user_id = ?", uid).
		Order("created_at DESC").Limit(100).Find(&deposits).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: deposits})
}

// GET /api/deposits/{id}
// Read-through refresh: the provider is asked for the current status and any
// answer is merged into the row, but a provider failure never fails this
// request. The caller always gets the stored deposit back.
func GetDepositHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}
	id := mux.Vars(r)["id"]

	db := database.DB
	var deposit models.Deposit
	err := db.First(&deposit, "id = ?", id).Error
	// Uniform 404 for missing and not-owned rows: ownership mismatches must
	// not reveal that the id exists.
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && deposit.UserID != uid) {
		utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	if eulen := utils.NewEulenClient(); eulen.Configured() {
		st, err := eulen.DepositStatus(r.Context(), id)
		if err != nil {
			utils.Log.WithError(err).Debugf("refresh do depósito %s falhou", id)
		} else if deposit.MergeProviderStatus(st) {
			deposit.UpdatedAt = time.Now()
			if err := db.Save(&deposit).Error; err != nil {
				utils.Log.WithError(err).Warnf("falha ao gravar refresh do depósito %s", id)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: deposit})
}
