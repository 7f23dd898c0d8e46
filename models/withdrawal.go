package models

import "time"

// Withdrawal statuses. The user path is linear (awaiting_transfer →
// under_review after proof, then an admin moves it to approved/rejected and
// approved → paid). The admin endpoint may set any of the five directly; that
// escape hatch is intentional for manual settlement cleanup.
const (
	WithdrawalAwaitingTransfer = "awaiting_transfer"
	WithdrawalUnderReview      = "under_review"
	WithdrawalApproved         = "approved"
	WithdrawalPaid             = "paid"
	WithdrawalRejected         = "rejected"
)

// Withdrawal is a DePix-out → PIX-in request settled manually between the
// user and the platform. The amount is kept as the exact text the user typed;
// this core does no currency rounding on withdrawals.
type Withdrawal struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;index:idx_withdrawals_user_created,priority:1" json:"user_id"`
	User                 *User     `gorm:"foreignKey:UserID" json:"-"`
	AmountDepix          string    `gorm:"size:64;not null" json:"amount_depix"`
	PixDestination       string    `gorm:"size:191;not null" json:"pix_destination"`
	UserDepixAddress     string    `gorm:"size:191;not null" json:"user_depix_address"`
	PlatformDepixAddress string    `gorm:"size:191;not null" json:"platform_depix_address"`
	TxID                 *string   `gorm:"size:191" json:"txid,omitempty"`
	ReceiptPath          *string   `gorm:"size:255" json:"receipt_path,omitempty"`
	Status               string    `gorm:"size:32;not null;default:awaiting_transfer" json:"status"`
	AdminNote            *string   `gorm:"type:text" json:"admin_note,omitempty"`
	CreatedAt            time.Time `gorm:"index:idx_withdrawals_user_created,priority:2" json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// IsValidWithdrawalStatus reports whether s is one of the five known states.
func IsValidWithdrawalStatus(s string) bool {
	switch s {
	case WithdrawalAwaitingTransfer, WithdrawalUnderReview, WithdrawalApproved, WithdrawalPaid, WithdrawalRejected:
		return true
	}
	return false
}
