package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionClaimed   TransactionStatus = "claimed"
)

// RewardTransaction is the immutable audit entry appended when a player
// first completes an achievement. Its status flips to claimed exactly
// once, when the reward is paid out; the row is never duplicated.
type RewardTransaction struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	PlayerID      string `gorm:"size:64;index:idx_tx_player_achievement" json:"player_id"`
	AchievementID string `gorm:"size:64;index:idx_tx_player_achievement" json:"achievement_id"`

	TriggerType  TriggerType     `gorm:"size:32" json:"trigger_type"`
	Vertical     Vertical        `gorm:"size:16" json:"vertical"`
	RewardPoints decimal.Decimal `gorm:"type:numeric(20,2)" json:"reward_points"`

	Timestamp time.Time         `json:"timestamp"`
	Status    TransactionStatus `gorm:"size:16;index" json:"status"`
}
