package models

import (
	"os"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is a string key/value row. Only defaultCommissionBps is used
// operationally today; the table stays generic for future knobs.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

const SettingDefaultCommissionBps = "defaultCommissionBps"

const fallbackCommissionBps = 250 // 2.50%

// GetDefaultCommissionBps reads the global commission, falling back to the
// DEFAULT_COMMISSION_BPS env var and finally 250. Always reads the row fresh
// (no caching) and clamps to [0, 5000].
func GetDefaultCommissionBps(db *gorm.DB) int {
	bps := fallbackCommissionBps
	if env, err := strconv.Atoi(os.Getenv("DEFAULT_COMMISSION_BPS")); err == nil {
		bps = env
	}

	var s Setting
	if err := db.First(&s, "key = ?", SettingDefaultCommissionBps).Error; err == nil {
		if v, err := strconv.Atoi(s.Value); err == nil {
			bps = v
		}
	}

	if bps < 0 {
		bps = 0
	}
	if bps > 5000 {
		bps = 5000
	}
	return bps
}

// SetDefaultCommissionBps upserts the global commission. Range validation is
// the caller's responsibility (the admin handler rejects out-of-range input).
func SetDefaultCommissionBps(db *gorm.DB, bps int) error {
	s := Setting{Key: SettingDefaultCommissionBps, Value: strconv.Itoa(bps)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
}
