package stores

import (
	"errors"

	"gamify/models"
	"gamify/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGormStores wires the postgres-backed store implementations.
func NewGormStores(db *gorm.DB) services.Stores {
	return services.Stores{
		Catalog:      &gormCatalog{db: db},
		Progress:     &gormProgress{db: db},
		Transactions: &gormTransactions{db: db},
		Wallets:      &gormWallets{db: db},
	}
}

type gormCatalog struct {
	db *gorm.DB
}

func (s *gormCatalog) ListActive() ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.
		Where("status = ?", models.AchievementActive).
		Order("priority DESC, created_at ASC").
		Find(&achievements).Error
	return achievements, err
}

func (s *gormCatalog) Get(id string) (*models.Achievement, error) {
	var a models.Achievement
	if err := s.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

type gormProgress struct {
	db *gorm.DB
}

func (s *gormProgress) Get(playerID, achievementID string) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	err := s.db.Where("player_id = ? AND achievement_id = ?", playerID, achievementID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *gormProgress) Put(rec *models.ProgressRecord) error {
	return s.db.Save(rec).Error
}

func (s *gormProgress) ListByPlayer(playerID string) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := s.db.Where("player_id = ?", playerID).Order("last_update DESC").Find(&records).Error
	return records, err
}

type gormTransactions struct {
	db *gorm.DB
}

func (s *gormTransactions) Append(tx *models.RewardTransaction) error {
	return s.db.Create(tx).Error
}

func (s *gormTransactions) FindCompleted(playerID, achievementID string) (*models.RewardTransaction, error) {
	var tx models.RewardTransaction
	err := s.db.
		Where("player_id = ? AND achievement_id = ? AND status = ?",
			playerID, achievementID, models.TransactionCompleted).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

func (s *gormTransactions) MarkClaimed(id string) error {
	return s.db.Model(&models.RewardTransaction{}).
		Where("id = ?", id).
		Update("status", models.TransactionClaimed).Error
}

func (s *gormTransactions) List() ([]models.RewardTransaction, error) {
	var txs []models.RewardTransaction
	err := s.db.Order("timestamp DESC").Find(&txs).Error
	return txs, err
}

type gormWallets struct {
	db *gorm.DB
}

func (s *gormWallets) Get(playerID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Where(models.Wallet{PlayerID: playerID}).FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Credit adds points under a row lock so concurrent claims for the same
// player cannot lose a balance update.
func (s *gormWallets) Credit(playerID string, points decimal.Decimal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("player_id = ?", playerID).
			First(&wallet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			wallet = models.Wallet{PlayerID: playerID}
			if err := tx.Create(&wallet).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		wallet.RewardPoints = wallet.RewardPoints.Add(points)
		return tx.Save(&wallet).Error
	})
}
