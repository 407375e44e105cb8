package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"gamify/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type fakeCatalog struct {
	achievements []models.Achievement
}

func (f *fakeCatalog) ListActive() ([]models.Achievement, error) {
	var active []models.Achievement
	for _, a := range f.achievements {
		if a.Status == models.AchievementActive {
			active = append(active, a)
		}
	}
	return active, nil
}

func (f *fakeCatalog) Get(id string) (*models.Achievement, error) {
	for i := range f.achievements {
		if f.achievements[i].ID == id {
			a := f.achievements[i]
			return &a, nil
		}
	}
	return nil, nil
}

type fakeProgress struct {
	records map[string]models.ProgressRecord
}

func (f *fakeProgress) Get(playerID, achievementID string) (*models.ProgressRecord, error) {
	rec, ok := f.records[playerID+"|"+achievementID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeProgress) Put(rec *models.ProgressRecord) error {
	if f.records == nil {
		f.records = make(map[string]models.ProgressRecord)
	}
	f.records[rec.PlayerID+"|"+rec.AchievementID] = *rec
	return nil
}

func (f *fakeProgress) ListByPlayer(playerID string) ([]models.ProgressRecord, error) {
	var out []models.ProgressRecord
	for _, rec := range f.records {
		if rec.PlayerID == playerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeTransactions struct {
	entries []models.RewardTransaction
}

func (f *fakeTransactions) Append(tx *models.RewardTransaction) error {
	f.entries = append(f.entries, *tx)
	return nil
}

func (f *fakeTransactions) FindCompleted(playerID, achievementID string) (*models.RewardTransaction, error) {
	for i := range f.entries {
		e := f.entries[i]
		if e.PlayerID == playerID && e.AchievementID == achievementID && e.Status == models.TransactionCompleted {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactions) MarkClaimed(id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Status = models.TransactionClaimed
		}
	}
	return nil
}

func (f *fakeTransactions) List() ([]models.RewardTransaction, error) {
	return f.entries, nil
}

type fakeWallets struct {
	balances map[string]decimal.Decimal
}

func (f *fakeWallets) Get(playerID string) (*models.Wallet, error) {
	if f.balances == nil {
		f.balances = make(map[string]decimal.Decimal)
	}
	return &models.Wallet{PlayerID: playerID, RewardPoints: f.balances[playerID]}, nil
}

func (f *fakeWallets) Credit(playerID string, points decimal.Decimal) error {
	if f.balances == nil {
		f.balances = make(map[string]decimal.Decimal)
	}
	f.balances[playerID] = f.balances[playerID].Add(points)
	return nil
}

type fixture struct {
	engine       *Engine
	catalog      *fakeCatalog
	progress     *fakeProgress
	transactions *fakeTransactions
	wallets      *fakeWallets
}

func newFixture(achievements ...models.Achievement) *fixture {
	f := &fixture{
		catalog:      &fakeCatalog{achievements: achievements},
		progress:     &fakeProgress{},
		transactions: &fakeTransactions{},
		wallets:      &fakeWallets{},
	}
	f.engine = NewEngine(Stores{
		Catalog:      f.catalog,
		Progress:     f.progress,
		Transactions: f.transactions,
		Wallets:      f.wallets,
	})

	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f.engine.now = func() time.Time { return fixed }
	n := 0
	f.engine.newID = func() string { n++; return fmt.Sprintf("txn-%d", n) }
	return f
}

func (f *fixture) record(t *testing.T, playerID, achievementID string) models.ProgressRecord {
	t.Helper()
	rec, err := f.progress.Get(playerID, achievementID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if rec == nil {
		t.Fatalf("no progress record for %s/%s", playerID, achievementID)
	}
	return *rec
}

func (f *fixture) simulate(t *testing.T, playerID string, ev models.ActionEvent) {
	t.Helper()
	if err := f.engine.SimulateAction(playerID, &ev); err != nil {
		t.Fatalf("simulate action: %v", err)
	}
}

func achievementWith(id string, vertical models.Vertical, cfg models.TriggerConfig, rewardPoints float64) models.Achievement {
	return models.Achievement{
		ID:           id,
		Title:        id,
		Trigger:      datatypes.NewJSONType(cfg),
		Vertical:     vertical,
		RewardPoints: decimal.NewFromFloat(rewardPoints),
		Status:       models.AchievementActive,
	}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decp(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func boolp(b bool) *bool { return &b }

func intp(i int) *int { return &i }

func TestDepositCompletionAndClaim(t *testing.T) {
	f := newFixture(achievementWith("ach-deposit", models.VerticalCrossVertical, models.TriggerConfig{
		Type:             models.TriggerDeposit,
		NumberOfDeposits: 3,
	}, 100))

	for i := 0; i < 3; i++ {
		f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerDeposit, Amount: decp(50)})
	}

	rec := f.record(t, "player-1", "ach-deposit")
	if rec.Progress != 100 || !rec.Completed {
		t.Fatalf("after 3 deposits: progress=%v completed=%v, want 100/true", rec.Progress, rec.Completed)
	}
	if !rec.CurrentValue.Equal(dec(3)) {
		t.Errorf("currentValue = %s, want 3", rec.CurrentValue)
	}

	if len(f.transactions.entries) != 1 {
		t.Fatalf("transactions = %d, want 1", len(f.transactions.entries))
	}
	tx := f.transactions.entries[0]
	if tx.ID != "txn-1" || tx.Status != models.TransactionCompleted {
		t.Errorf("transaction = %+v, want id txn-1 status completed", tx)
	}

	claimed, err := f.engine.ClaimReward("player-1", "ach-deposit")
	if err != nil || !claimed {
		t.Fatalf("first claim = (%v, %v), want (true, nil)", claimed, err)
	}
	wallet, _ := f.wallets.Get("player-1")
	if !wallet.RewardPoints.Equal(dec(100)) {
		t.Errorf("wallet = %s, want 100", wallet.RewardPoints)
	}
	if f.transactions.entries[0].Status != models.TransactionClaimed {
		t.Errorf("transaction status = %s, want claimed", f.transactions.entries[0].Status)
	}

	claimed, err = f.engine.ClaimReward("player-1", "ach-deposit")
	if err != nil || claimed {
		t.Fatalf("second claim = (%v, %v), want (false, nil)", claimed, err)
	}
	wallet, _ = f.wallets.Get("player-1")
	if !wallet.RewardPoints.Equal(dec(100)) {
		t.Errorf("wallet after double claim = %s, want 100", wallet.RewardPoints)
	}
}

func TestDepositPartialProgress(t *testing.T) {
	f := newFixture(achievementWith("ach-deposit", models.VerticalCrossVertical, models.TriggerConfig{
		Type:             models.TriggerDeposit,
		NumberOfDeposits: 4,
	}, 100))

	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerDeposit, Amount: decp(50)})

	rec := f.record(t, "player-1", "ach-deposit")
	if rec.Progress != 25 || rec.Completed {
		t.Fatalf("progress = %v completed=%v, want 25/false", rec.Progress, rec.Completed)
	}
	if rec.Claimed {
		t.Error("new record must not be claimed")
	}
}

func TestMaxSingleWinThreshold(t *testing.T) {
	f := newFixture(achievementWith("ach-bigwin", models.VerticalCasino, models.TriggerConfig{
		Type:                models.TriggerMaxSingleWin,
		MaxSingleWinMinimum: dec(500),
	}, 50))

	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerMaxSingleWin, Vertical: models.VerticalCasino,
		IsWin: boolp(true), WinAmount: decp(200),
	})
	rec := f.record(t, "player-1", "ach-bigwin")
	if !rec.CurrentValue.Equal(dec(200)) || rec.Completed {
		t.Fatalf("after 200 win: current=%s completed=%v, want 200/false", rec.CurrentValue, rec.Completed)
	}

	// A smaller win never lowers the running max.
	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerMaxSingleWin, Vertical: models.VerticalCasino,
		IsWin: boolp(true), WinAmount: decp(100),
	})
	rec = f.record(t, "player-1", "ach-bigwin")
	if !rec.CurrentValue.Equal(dec(200)) {
		t.Fatalf("after 100 win: current=%s, want 200", rec.CurrentValue)
	}

	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerMaxSingleWin, Vertical: models.VerticalCasino,
		IsWin: boolp(true), WinAmount: decp(600),
	})
	rec = f.record(t, "player-1", "ach-bigwin")
	if !rec.CurrentValue.Equal(dec(600)) || rec.Progress != 100 || !rec.Completed {
		t.Fatalf("after 600 win: current=%s progress=%v completed=%v, want 600/100/true",
			rec.CurrentValue, rec.Progress, rec.Completed)
	}
}

func TestNetResultLossTarget(t *testing.T) {
	f := newFixture(achievementWith("ach-loss", models.VerticalCrossVertical, models.TriggerConfig{
		Type:          models.TriggerNetResult,
		NetLossTarget: dec(-1000),
	}, 25))

	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerNetResult, NetDelta: decp(-600)})
	rec := f.record(t, "player-1", "ach-loss")
	if rec.Completed {
		t.Fatalf("completed after -600, want incomplete")
	}

	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerNetResult, NetDelta: decp(-500)})
	rec = f.record(t, "player-1", "ach-loss")
	if !rec.CurrentValue.Equal(dec(-1100)) || rec.Progress != 100 || !rec.Completed {
		t.Fatalf("after -1100: current=%s progress=%v completed=%v, want -1100/100/true",
			rec.CurrentValue, rec.Progress, rec.Completed)
	}
}

func TestCrossVerticalSportsFilter(t *testing.T) {
	a := achievementWith("ach-soccer", models.VerticalCrossVertical, models.TriggerConfig{
		Type:              models.TriggerWinningBetsCount,
		WinningBetsTarget: 2,
	}, 10)
	a.Filters = datatypes.NewJSONType(models.FilterSet{
		Cross: &models.CrossVerticalFilters{
			Sports: &models.SportsbookFilters{SportTypes: []string{"soccer"}},
		},
	})
	f := newFixture(a)

	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerWinningBetsCount, Vertical: models.VerticalSportsbook,
		IsWin: boolp(true), SportType: "tennis",
	})
	if rec, _ := f.progress.Get("player-1", "ach-soccer"); rec != nil {
		t.Fatalf("tennis event must not create a record, got %+v", rec)
	}

	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerWinningBetsCount, Vertical: models.VerticalSportsbook,
		IsWin: boolp(true), SportType: "soccer",
	})
	rec := f.record(t, "player-1", "ach-soccer")
	if !rec.CurrentValue.Equal(dec(1)) {
		t.Fatalf("currentValue = %s, want 1", rec.CurrentValue)
	}
}

func TestCompletionTransactionIsEdgeTriggered(t *testing.T) {
	f := newFixture(achievementWith("ach-verify", models.VerticalCrossVertical, models.TriggerConfig{
		Type:             models.TriggerUserVerification,
		VerificationType: models.VerificationKYC,
	}, 20))

	ev := models.ActionEvent{Type: models.TriggerUserVerification, VerificationType: models.VerificationKYC}
	f.simulate(t, "player-1", ev)
	f.simulate(t, "player-1", ev)

	if len(f.transactions.entries) != 1 {
		t.Fatalf("transactions = %d, want exactly 1 after replay", len(f.transactions.entries))
	}
}

func TestVerticalGate(t *testing.T) {
	f := newFixture(achievementWith("ach-casino", models.VerticalCasino, models.TriggerConfig{
		Type:              models.TriggerWinningBetsCount,
		WinningBetsTarget: 5,
	}, 10))

	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerWinningBetsCount, Vertical: models.VerticalSportsbook, IsWin: boolp(true),
	})
	if rec, _ := f.progress.Get("player-1", "ach-casino"); rec != nil {
		t.Fatal("sportsbook event must not advance a casino achievement")
	}

	// An event without a vertical is not gated.
	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerWinningBetsCount, IsWin: boolp(true),
	})
	rec := f.record(t, "player-1", "ach-casino")
	if !rec.CurrentValue.Equal(dec(1)) {
		t.Fatalf("currentValue = %s, want 1", rec.CurrentValue)
	}
}

func TestInactiveAchievementIgnored(t *testing.T) {
	a := achievementWith("ach-off", models.VerticalCrossVertical, models.TriggerConfig{
		Type: models.TriggerProfileCompletion,
	}, 10)
	a.Status = models.AchievementInactive
	f := newFixture(a)

	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerProfileCompletion, ProfileCompleted: true})
	if rec, _ := f.progress.Get("player-1", "ach-off"); rec != nil {
		t.Fatal("inactive achievement must not accumulate progress")
	}
}

func TestClaimPreconditions(t *testing.T) {
	completed := achievementWith("ach-done", models.VerticalCrossVertical, models.TriggerConfig{
		Type: models.TriggerProfileCompletion,
	}, 0) // zero reward
	pending := achievementWith("ach-pending", models.VerticalCrossVertical, models.TriggerConfig{
		Type:              models.TriggerWinningBetsCount,
		WinningBetsTarget: 10,
	}, 50)
	f := newFixture(completed, pending)

	// No record at all.
	if ok, _ := f.engine.ClaimReward("player-1", "ach-pending"); ok {
		t.Error("claim without a record must fail")
	}

	// Incomplete record.
	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerWinningBetsCount, IsWin: boolp(true)})
	if ok, _ := f.engine.ClaimReward("player-1", "ach-pending"); ok {
		t.Error("claim of an incomplete achievement must fail")
	}

	// Completed but worthless.
	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerProfileCompletion, ProfileCompleted: true})
	if ok, _ := f.engine.ClaimReward("player-1", "ach-done"); ok {
		t.Error("claim of a zero-reward achievement must fail")
	}
	wallet, _ := f.wallets.Get("player-1")
	if !wallet.RewardPoints.IsZero() {
		t.Errorf("wallet = %s, want 0", wallet.RewardPoints)
	}
}

func TestConsecutiveWinsResetOnLoss(t *testing.T) {
	f := newFixture(achievementWith("ach-streak", models.VerticalCrossVertical, models.TriggerConfig{
		Type:            models.TriggerConsecutiveWins,
		WinStreakTarget: 5,
	}, 30))

	win := models.ActionEvent{Type: models.TriggerConsecutiveWins, IsWin: boolp(true)}
	f.simulate(t, "player-1", win)
	f.simulate(t, "player-1", win)
	f.simulate(t, "player-1", win)

	rec := f.record(t, "player-1", "ach-streak")
	if !rec.CurrentValue.Equal(dec(3)) {
		t.Fatalf("streak = %s, want 3", rec.CurrentValue)
	}

	f.simulate(t, "player-1", models.ActionEvent{Type: models.TriggerConsecutiveWins, IsWin: boolp(false)})
	rec = f.record(t, "player-1", "ach-streak")
	if !rec.CurrentValue.IsZero() || rec.Progress != 0 {
		t.Fatalf("after loss: current=%s progress=%v, want 0/0", rec.CurrentValue, rec.Progress)
	}
}

func TestWithdrawalDualTarget(t *testing.T) {
	f := newFixture(achievementWith("ach-wd", models.VerticalCrossVertical, models.TriggerConfig{
		Type:                   models.TriggerWithdrawal,
		WithdrawalCountTarget:  4,
		WithdrawalAmountTarget: dec(1000),
	}, 40))

	f.simulate(t, "player-1", models.ActionEvent{
		Type: models.TriggerWithdrawal, IsWithdrawal: true, Amount: decp(600),
	})

	// By count: 1/4 = 25%. By amount: 600/1000 = 60%. Amount wins.
	rec := f.record(t, "player-1", "ach-wd")
	if rec.Progress != 60 {
		t.Fatalf("progress = %v, want 60", rec.Progress)
	}
	if !rec.CurrentValue.Equal(dec(600)) || !rec.TargetValue.Equal(dec(1000)) {
		t.Fatalf("stored %s/%s, want 600/1000", rec.CurrentValue, rec.TargetValue)
	}
}

func TestConcurrentEventsDoNotLoseUpdates(t *testing.T) {
	f := newFixture(achievementWith("ach-bets", models.VerticalCrossVertical, models.TriggerConfig{
		Type:              models.TriggerWinningBetsCount,
		WinningBetsTarget: 100,
	}, 10))

	const events = 50
	var wg sync.WaitGroup
	wg.Add(events)
	for i := 0; i < events; i++ {
		go func() {
			defer wg.Done()
			err := f.engine.SimulateAction("player-1", &models.ActionEvent{
				Type: models.TriggerWinningBetsCount, IsWin: boolp(true),
			})
			if err != nil {
				t.Errorf("simulate action: %v", err)
			}
		}()
	}
	wg.Wait()

	rec := f.record(t, "player-1", "ach-bets")
	if !rec.CurrentValue.Equal(dec(events)) {
		t.Fatalf("currentValue = %s after %d concurrent wins, want %d", rec.CurrentValue, events, events)
	}
}

func TestGenericPercentInvariant(t *testing.T) {
	f := newFixture(achievementWith("ach-turnover", models.VerticalCasino, models.TriggerConfig{
		Type:     models.TriggerGameTurnover,
		Quantity: dec(1000),
	}, 15))

	amounts := []float64{100, 250, 400}
	total := 0.0
	for _, amt := range amounts {
		total += amt
		f.simulate(t, "player-1", models.ActionEvent{
			Type: models.TriggerGameTurnover, Vertical: models.VerticalCasino, Amount: decp(amt),
		})
		rec := f.record(t, "player-1", "ach-turnover")
		want := total / 1000 * 100
		if want > 100 {
			want = 100
		}
		if rec.Progress != want {
			t.Fatalf("after %v turnover: progress=%v, want %v", total, rec.Progress, want)
		}
	}
}
