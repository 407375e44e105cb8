package services

import (
	"math"

	"gamify/models"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// accumulation is the outcome of one trigger rule for one achievement.
// resolved rules carry their own percent and bypass the generic
// current/target formula; non-resolved rules let the evaluator compute
// it, and only when apply is set and target is positive.
type accumulation struct {
	current  decimal.Decimal
	target   decimal.Decimal
	percent  float64
	resolved bool
	apply    bool
}

func priorValue(rec *models.ProgressRecord) decimal.Decimal {
	if rec == nil {
		return decimal.Zero
	}
	return rec.CurrentValue
}

func priorTarget(rec *models.ProgressRecord) decimal.Decimal {
	if rec == nil {
		return decimal.Zero
	}
	return rec.TargetValue
}

func countTarget(n, fallback int) decimal.Decimal {
	if n <= 0 {
		n = fallback
	}
	return decimal.NewFromInt(int64(n))
}

func percentOf(current, target decimal.Decimal) float64 {
	return math.Min(100, current.Div(target).InexactFloat64()*100)
}

// accumulate applies the trigger-kind rule for one event against the
// player's prior record (nil when the player has no history yet).
func accumulate(cfg models.TriggerConfig, prior *models.ProgressRecord, ev *models.ActionEvent) accumulation {
	switch cfg.Type {
	case models.TriggerLoginStreak:
		// Each matching event counts as one daily tick.
		return accumulation{
			current: priorValue(prior).Add(one),
			target:  countTarget(cfg.Days, 1),
			apply:   true,
		}

	case models.TriggerGameTurnover:
		if ev.Amount == nil || ev.Amount.LessThan(cfg.MinimumAmount) {
			return accumulation{}
		}
		target := cfg.Quantity
		if !target.IsPositive() {
			target = cfg.MinimumAmount
		}
		return accumulation{
			current: priorValue(prior).Add(*ev.Amount),
			target:  target,
			apply:   target.IsPositive(),
		}

	case models.TriggerGameTransaction:
		if ev.Amount == nil || ev.Amount.LessThan(cfg.MinimumAmount) {
			return accumulation{}
		}
		target := cfg.Quantity
		if !target.IsPositive() {
			target = one
		}
		return accumulation{
			current: priorValue(prior).Add(one),
			target:  target,
			apply:   true,
		}

	case models.TriggerDeposit:
		// Counts deposits; the amount itself is not accumulated.
		if ev.Amount == nil {
			return accumulation{}
		}
		return accumulation{
			current: priorValue(prior).Add(one),
			target:  countTarget(cfg.NumberOfDeposits, 1),
			apply:   true,
		}

	case models.TriggerUserVerification:
		if ev.VerificationType != cfg.VerificationType {
			return accumulation{}
		}
		return accumulation{current: one, target: one, apply: true}

	case models.TriggerWinningBetsCount:
		if !ev.Won() {
			return accumulation{}
		}
		return accumulation{
			current: priorValue(prior).Add(one),
			target:  countTarget(cfg.WinningBetsTarget, 1),
			apply:   true,
		}

	case models.TriggerTotalWinAmount:
		if !ev.Won() || ev.WinAmount == nil {
			return accumulation{}
		}
		return accumulation{
			current: priorValue(prior).Add(*ev.WinAmount),
			target:  cfg.TotalWinAmountTarget,
			apply:   cfg.TotalWinAmountTarget.IsPositive(),
		}

	case models.TriggerMaxSingleWin:
		// Tracks the running maximum; completion needs one event at or
		// above the threshold and short-circuits to 100%.
		if !ev.Won() || ev.WinAmount == nil {
			return accumulation{}
		}
		current := decimal.Max(priorValue(prior), *ev.WinAmount)
		target := cfg.MaxSingleWinMinimum
		if target.IsPositive() && current.GreaterThanOrEqual(target) {
			return accumulation{current: current, target: target, percent: 100, resolved: true, apply: true}
		}
		return accumulation{current: current, target: target, apply: target.IsPositive()}

	case models.TriggerConsecutiveWins:
		if ev.IsWin == nil {
			return accumulation{}
		}
		current := decimal.Zero
		if *ev.IsWin {
			current = priorValue(prior).Add(one)
		}
		return accumulation{
			current: current,
			target:  countTarget(cfg.WinStreakTarget, 1),
			apply:   true,
		}

	case models.TriggerSpecificGameEngagement:
		targetID := cfg.SpecificGameID
		if targetID == "" {
			targetID = cfg.SpecificEventID
		}
		if targetID != "" && ev.GameID != targetID && ev.EventID != targetID {
			return accumulation{}
		}
		return accumulation{
			current: priorValue(prior).Add(one),
			target:  countTarget(cfg.SpecificGameTargetCount, 1),
			apply:   true,
		}

	case models.TriggerMarketSpecificBets:
		if cfg.MarketTypeRequired != "" && ev.MarketType != cfg.MarketTypeRequired {
			return accumulation{}
		}
		target := cfg.Quantity
		if !target.IsPositive() {
			target = one
		}
		return accumulation{
			current: priorValue(prior).Add(one),
			target:  target,
			apply:   true,
		}

	case models.TriggerTotalDepositAmount:
		if ev.Amount == nil {
			return accumulation{}
		}
		return accumulation{
			current: priorValue(prior).Add(*ev.Amount),
			target:  cfg.TotalDepositAmountTarget,
			apply:   cfg.TotalDepositAmountTarget.IsPositive(),
		}

	case models.TriggerWithdrawal:
		return accumulateWithdrawal(cfg, prior, ev)

	case models.TriggerReferralCount:
		increment := ev.Referrals
		if increment <= 0 {
			increment = 1
		}
		return accumulation{
			current: priorValue(prior).Add(decimal.NewFromInt(int64(increment))),
			target:  countTarget(cfg.ReferralCountTarget, 1),
			apply:   true,
		}

	case models.TriggerAccountLongevity:
		if ev.AccountAgeDays == nil {
			return accumulation{}
		}
		target := countTarget(cfg.AccountAgeDaysTarget, 0)
		return accumulation{
			// Absolute age, not cumulative.
			current: decimal.NewFromInt(int64(*ev.AccountAgeDays)),
			target:  target,
			apply:   target.IsPositive(),
		}

	case models.TriggerProfileCompletion:
		if !ev.ProfileCompleted {
			return accumulation{}
		}
		return accumulation{current: one, target: one, apply: true}

	case models.TriggerNetResult:
		return accumulateNetResult(cfg, prior, ev)
	}

	return accumulation{}
}

// accumulateWithdrawal tracks a count and a running amount at once. The
// running amount is stashed in the record's TargetValue slot between
// events; the better of the two partial percentages wins, and the raw
// value behind the winning criterion is what gets stored.
func accumulateWithdrawal(cfg models.TriggerConfig, prior *models.ProgressRecord, ev *models.ActionEvent) accumulation {
	if !ev.IsWithdrawal {
		return accumulation{}
	}

	countTgt := countTarget(cfg.WithdrawalCountTarget, 0)
	amountTgt := cfg.WithdrawalAmountTarget
	if !countTgt.IsPositive() && !amountTgt.IsPositive() {
		return accumulation{}
	}

	nextCount := priorValue(prior).Add(one)
	nextAmount := priorTarget(prior)
	if ev.Amount != nil {
		nextAmount = nextAmount.Add(*ev.Amount)
	}

	byCount, byAmount := -1.0, -1.0
	if countTgt.IsPositive() {
		byCount = percentOf(nextCount, countTgt)
	}
	if amountTgt.IsPositive() {
		byAmount = percentOf(nextAmount, amountTgt)
	}

	acc := accumulation{resolved: true, apply: true}
	if byAmount >= byCount {
		acc.percent = byAmount
		acc.current = nextAmount
		acc.target = amountTgt
	} else {
		acc.percent = byCount
		acc.current = nextCount
		acc.target = countTgt
	}
	return acc
}

// accumulateNetResult accumulates a signed running result. A positive
// win target completes when the total reaches it, a negative loss
// target when the total falls to it; either way completion snaps the
// percent to 100.
func accumulateNetResult(cfg models.TriggerConfig, prior *models.ProgressRecord, ev *models.ActionEvent) accumulation {
	if ev.NetDelta == nil {
		return accumulation{}
	}

	winTgt := cfg.NetWinTarget
	lossTgt := cfg.NetLossTarget
	hasWin := winTgt.IsPositive()
	hasLoss := lossTgt.IsNegative()
	if !hasWin && !hasLoss {
		return accumulation{}
	}

	current := priorValue(prior).Add(*ev.NetDelta)
	completed := (hasWin && current.GreaterThanOrEqual(winTgt)) ||
		(hasLoss && current.LessThanOrEqual(lossTgt))

	target := winTgt
	if !hasWin {
		target = lossTgt
	}

	percent := 100.0
	if !completed {
		percent = math.Min(100, math.Abs(current.Div(target).InexactFloat64()*100))
	}
	return accumulation{current: current, target: target, percent: percent, resolved: true, apply: true}
}
