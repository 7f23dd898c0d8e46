package models

import (
	"regexp"
	"time"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	Role          string    `gorm:"size:16;not null;default:user" json:"role"`
	FullName      *string   `gorm:"size:120" json:"full_name,omitempty"`
	TaxNumber     *string   `gorm:"size:32" json:"tax_number,omitempty"`
	DepixAddress  *string   `gorm:"size:191" json:"depix_address,omitempty"`
	CommissionBps *int      `json:"commission_bps,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// EffectiveCommissionBps resolves the per-user override against the global
// default. The result is what gets snapshotted into each deposit.
func (u *User) EffectiveCommissionBps(defaultBps int) int {
	if u.CommissionBps != nil {
		return *u.CommissionBps
	}
	return defaultBps
}

var depixAddressPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// IsProbablyDepixAddress does a cheap plausibility check on a payout address:
// at least 20 chars, alphanumeric. Real validation happens on-chain.
func IsProbablyDepixAddress(addr string) bool {
	return len(addr) >= 20 && depixAddressPattern.MatchString(addr)
}
