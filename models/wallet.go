package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a player's cumulative reward points. One row per player;
// its balance equals the sum of that player's claimed transactions.
type Wallet struct {
	ID uint `gorm:"primaryKey" json:"-"`

	PlayerID     string          `gorm:"size:64;uniqueIndex" json:"player_id"`
	RewardPoints decimal.Decimal `gorm:"type:numeric(20,2)" json:"reward_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
