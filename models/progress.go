package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgressRecord is the per-player accumulation state for one achievement.
// CurrentValue's unit depends on the trigger kind: a count, a monetary
// total, a streak length or an account age in days.
type ProgressRecord struct {
	ID uint `gorm:"primaryKey" json:"-"`

	PlayerID      string `gorm:"size:64;uniqueIndex:idx_player_achievement" json:"player_id"`
	AchievementID string `gorm:"size:64;uniqueIndex:idx_player_achievement" json:"achievement_id"`

	CurrentValue decimal.Decimal `gorm:"type:numeric(20,2)" json:"current_value"`
	TargetValue  decimal.Decimal `gorm:"type:numeric(20,2)" json:"target_value"`
	Progress     float64         `json:"progress"` // 0-100

	Completed bool `gorm:"index" json:"completed"`
	Claimed   bool `json:"claimed"`

	LastUpdate time.Time `json:"last_update"`
}
