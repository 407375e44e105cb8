package stores

import (
	"sort"
	"sync"

	"gamify/models"
	"gamify/services"

	"github.com/shopspring/decimal"
)

// NewMemoryStores returns in-process store implementations. They back
// the engine when no database is configured and double as test
// fixtures; state starts empty and is lost on restart.
func NewMemoryStores() services.Stores {
	return services.Stores{
		Catalog:      &MemoryCatalog{},
		Progress:     &MemoryProgress{},
		Transactions: &MemoryTransactions{},
		Wallets:      &MemoryWallets{},
	}
}

type MemoryCatalog struct {
	mu           sync.Mutex
	Achievements []models.Achievement
}

func (s *MemoryCatalog) Add(a models.Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Achievements = append(s.Achievements, a)
}

func (s *MemoryCatalog) ListActive() ([]models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []models.Achievement
	for _, a := range s.Achievements {
		if a.Status == models.AchievementActive {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})
	return active, nil
}

func (s *MemoryCatalog) Get(id string) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Achievements {
		if s.Achievements[i].ID == id {
			a := s.Achievements[i]
			return &a, nil
		}
	}
	return nil, nil
}

type MemoryProgress struct {
	mu      sync.Mutex
	records map[string]models.ProgressRecord
}

func progressKey(playerID, achievementID string) string {
	return playerID + "|" + achievementID
}

func (s *MemoryProgress) Get(playerID, achievementID string) (*models.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[progressKey(playerID, achievementID)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryProgress) Put(rec *models.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string]models.ProgressRecord)
	}
	s.records[progressKey(rec.PlayerID, rec.AchievementID)] = *rec
	return nil
}

func (s *MemoryProgress) ListByPlayer(playerID string) ([]models.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []models.ProgressRecord
	for _, rec := range s.records {
		if rec.PlayerID == playerID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].AchievementID < records[j].AchievementID
	})
	return records, nil
}

type MemoryTransactions struct {
	mu      sync.Mutex
	entries []models.RewardTransaction
}

func (s *MemoryTransactions) Append(tx *models.RewardTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *tx)
	return nil
}

func (s *MemoryTransactions) FindCompleted(playerID, achievementID string) (*models.RewardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		e := s.entries[i]
		if e.PlayerID == playerID && e.AchievementID == achievementID && e.Status == models.TransactionCompleted {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *MemoryTransactions) MarkClaimed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Status = models.TransactionClaimed
		}
	}
	return nil
}

func (s *MemoryTransactions) List() ([]models.RewardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RewardTransaction, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

type MemoryWallets struct {
	mu      sync.Mutex
	wallets map[string]decimal.Decimal
}

func (s *MemoryWallets) Get(playerID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallets == nil {
		s.wallets = make(map[string]decimal.Decimal)
	}
	if _, ok := s.wallets[playerID]; !ok {
		s.wallets[playerID] = decimal.Zero
	}
	return &models.Wallet{PlayerID: playerID, RewardPoints: s.wallets[playerID]}, nil
}

func (s *MemoryWallets) Credit(playerID string, points decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallets == nil {
		s.wallets = make(map[string]decimal.Decimal)
	}
	s.wallets[playerID] = s.wallets[playerID].Add(points)
	return nil
}
