package models

import (
	"time"

	"github.com/marinsprosper/minha-plataforma/utils"
)

// Deposit is one PIX-in → DePix-out exchange. Financial terms (commission,
// fee/net split, both addresses) are copied in at creation and never touched
// again, so later changes to the user or the global rate cannot rewrite
// history. Status mirrors the provider's vocabulary and is deliberately a free
// string: the provider owns that state machine.
type Deposit struct {
	ID                   string    `gorm:"primaryKey;size:191" json:"id"`
	UserID               uint      `gorm:"not null;index:idx_deposits_user_created,priority:1" json:"user_id"`
	User                 *User     `gorm:"foreignKey:UserID" json:"-"`
	AmountInCents        int64     `gorm:"not null" json:"amount_in_cents"`
	CommissionBps        int       `gorm:"not null" json:"commission_bps"`
	FeeInCents           int64     `gorm:"not null" json:"fee_in_cents"`
	NetInCents           int64     `gorm:"not null" json:"net_in_cents"`
	PlatformDepixAddress string    `gorm:"size:191;not null" json:"platform_depix_address"`
	UserDepixAddress     string    `gorm:"size:191;not null" json:"user_depix_address"`
	QRCopyPaste          *string   `gorm:"type:text" json:"qr_copy_paste,omitempty"`
	QRImageURL           *string   `gorm:"type:text" json:"qr_image_url,omitempty"`
	Status               string    `gorm:"size:32;not null;default:created" json:"status"`
	BankTxID             *string   `gorm:"size:191" json:"bank_tx_id,omitempty"`
	BlockchainTxID       *string   `gorm:"size:191" json:"blockchain_tx_id,omitempty"`
	Expiration           *string   `gorm:"size:64" json:"expiration,omitempty"`
	PayerName            *string   `gorm:"size:120" json:"payer_name,omitempty"`
	PayerTaxNumber       *string   `gorm:"size:32" json:"payer_tax_number,omitempty"`
	PayoutStatus         string    `gorm:"size:32;not null;default:not_sent" json:"payout_status"`
	PayoutTxID           *string   `gorm:"size:191" json:"payout_tx_id,omitempty"`
	CreatedAt            time.Time `gorm:"index:idx_deposits_user_created,priority:2" json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Deposit) TableName() string {
	return "deposits"
}

// MergeProviderStatus folds a provider status record into the row. Incoming
// nil fields never clear stored values (COALESCE semantics): a refresh can
// only add information. Returns false when the record carried no status and
// nothing was applied.
func (d *Deposit) MergeProviderStatus(st *utils.DepositStatus) bool {
	if st == nil || st.Status == "" {
		return false
	}
	d.Status = st.Status

	coalesce := func(dst **string, src *string) {
		if src != nil && *src != "" {
			*dst = src
		}
	}
	coalesce(&d.BankTxID, st.BankTxID)
	coalesce(&d.BlockchainTxID, st.BlockchainTxID)
	coalesce(&d.Expiration, st.Expiration)
	coalesce(&d.PayerName, st.PayerName)
	coalesce(&d.PayerTaxNumber, st.PayerTaxNumber)
	return true
}
