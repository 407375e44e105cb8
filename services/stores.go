package services

import (
	"gamify/models"

	"github.com/shopspring/decimal"
)

// AchievementCatalog is the read-only view of the achievement
// definitions. Catalog management itself lives behind the HTTP API.
type AchievementCatalog interface {
	// ListActive returns active achievements, highest priority first.
	ListActive() ([]models.Achievement, error)
	// Get returns nil with no error when the id is unknown.
	Get(id string) (*models.Achievement, error)
}

// ProgressStore keeps one record per (player, achievement).
type ProgressStore interface {
	// Get returns nil with no error when no record exists yet.
	Get(playerID, achievementID string) (*models.ProgressRecord, error)
	Put(rec *models.ProgressRecord) error
	ListByPlayer(playerID string) ([]models.ProgressRecord, error)
}

// TransactionLog is the append-only completion audit trail.
type TransactionLog interface {
	Append(tx *models.RewardTransaction) error
	// FindCompleted returns the completed-status entry for the pair,
	// or nil when none exists.
	FindCompleted(playerID, achievementID string) (*models.RewardTransaction, error)
	MarkClaimed(id string) error
	List() ([]models.RewardTransaction, error)
}

// WalletStore manages per-player reward point balances.
type WalletStore interface {
	// Get creates a zero-balance wallet on first access.
	Get(playerID string) (*models.Wallet, error)
	Credit(playerID string, points decimal.Decimal) error
}

// Stores bundles the engine's collaborators.
type Stores struct {
	Catalog      AchievementCatalog
	Progress     ProgressStore
	Transactions TransactionLog
	Wallets      WalletStore
}
