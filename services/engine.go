package services

import (
	"log"
	"math"
	"time"

	"gamify/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine evaluates player action events against the active achievement
// catalog, accumulates progress, logs completions and pays out claims.
type Engine struct {
	stores Stores

	// injectable for deterministic tests
	now   func() time.Time
	newID func() string

	locks keyMutex
}

func NewEngine(stores Stores) *Engine {
	return &Engine{
		stores: stores,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func progressKey(playerID, achievementID string) string {
	return playerID + "|" + achievementID
}

// SimulateAction runs one event through the full evaluation pass:
// candidate selection by trigger type and vertical, filter match,
// per-kind accumulation and persistence. Achievements are independent;
// a store failure on one does not stop the others.
func (e *Engine) SimulateAction(playerID string, ev *models.ActionEvent) error {
	achievements, err := e.stores.Catalog.ListActive()
	if err != nil {
		return err
	}

	var firstErr error
	for i := range achievements {
		a := &achievements[i]
		if a.TriggerConfig().Type != ev.Type {
			continue
		}
		// Cross-vertical achievements match events from any vertical.
		if a.Vertical != models.VerticalCrossVertical && ev.Vertical != "" && a.Vertical != ev.Vertical {
			continue
		}
		if !MatchesFilters(a, ev) {
			continue
		}
		if err := e.evaluateOne(playerID, a, ev); err != nil {
			log.Printf("[ENGINE] player=%s achievement=%s evaluation failed: %v", playerID, a.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// evaluateOne holds the per-key lock across the whole read-modify-write
// so concurrent events for the same pair cannot lose updates.
func (e *Engine) evaluateOne(playerID string, a *models.Achievement, ev *models.ActionEvent) error {
	unlock := e.locks.lock(progressKey(playerID, a.ID))
	defer unlock()

	prior, err := e.stores.Progress.Get(playerID, a.ID)
	if err != nil {
		return err
	}

	acc := accumulate(a.TriggerConfig(), prior, ev)
	if !acc.apply {
		return nil
	}

	percent := acc.percent
	if !acc.resolved {
		if !acc.target.IsPositive() {
			return nil
		}
		percent = math.Min(100, acc.current.Div(acc.target).InexactFloat64()*100)
	}
	return e.applyProgress(playerID, a, percent, acc.current, acc.target)
}

// applyProgress upserts the record and, on the false→true completion
// edge of a rewarded achievement, appends exactly one completed-status
// transaction. Replays past completion never produce a second one.
func (e *Engine) applyProgress(playerID string, a *models.Achievement, percent float64, current, target decimal.Decimal) error {
	rec, err := e.stores.Progress.Get(playerID, a.ID)
	if err != nil {
		return err
	}

	wasCompleted := rec != nil && rec.Completed
	if rec == nil {
		rec = &models.ProgressRecord{PlayerID: playerID, AchievementID: a.ID}
	}

	rec.Progress = percent
	rec.CurrentValue = current
	rec.TargetValue = target
	rec.Completed = percent >= 100
	rec.LastUpdate = e.now()

	if err := e.stores.Progress.Put(rec); err != nil {
		return err
	}

	if rec.Completed && !wasCompleted && a.HasReward() {
		tx := &models.RewardTransaction{
			ID:            e.newID(),
			PlayerID:      playerID,
			AchievementID: a.ID,
			TriggerType:   a.TriggerConfig().Type,
			Vertical:      a.Vertical,
			RewardPoints:  a.RewardPoints,
			Timestamp:     e.now(),
			Status:        models.TransactionCompleted,
		}
		if err := e.stores.Transactions.Append(tx); err != nil {
			return err
		}
		log.Printf("[ENGINE] player=%s achievement=%s completed, reward=%s", playerID, a.ID, a.RewardPoints)
	}
	return nil
}

// ClaimReward pays out a completed, unclaimed achievement exactly once.
// It returns false without mutating anything when the progress record
// is missing, incomplete, already claimed, or the achievement carries
// no reward. The per-key lock makes the check-then-act atomic against
// concurrent claims and concurrent progress updates.
func (e *Engine) ClaimReward(playerID, achievementID string) (bool, error) {
	unlock := e.locks.lock(progressKey(playerID, achievementID))
	defer unlock()

	rec, err := e.stores.Progress.Get(playerID, achievementID)
	if err != nil {
		return false, err
	}
	if rec == nil || !rec.Completed || rec.Claimed {
		return false, nil
	}

	a, err := e.stores.Catalog.Get(achievementID)
	if err != nil {
		return false, err
	}
	if a == nil || !a.HasReward() {
		return false, nil
	}

	if err := e.stores.Wallets.Credit(playerID, a.RewardPoints); err != nil {
		return false, err
	}

	rec.Claimed = true
	rec.LastUpdate = e.now()
	if err := e.stores.Progress.Put(rec); err != nil {
		return false, err
	}

	tx, err := e.stores.Transactions.FindCompleted(playerID, achievementID)
	if err != nil {
		return false, err
	}
	if tx != nil {
		if err := e.stores.Transactions.MarkClaimed(tx.ID); err != nil {
			return false, err
		}
	}

	log.Printf("[ENGINE] player=%s achievement=%s claimed %s points", playerID, achievementID, a.RewardPoints)
	return true, nil
}
