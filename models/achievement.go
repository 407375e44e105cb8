package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TriggerType string

const (
	TriggerLoginStreak            TriggerType = "login_streak"
	TriggerGameTurnover           TriggerType = "game_turnover"
	TriggerGameTransaction        TriggerType = "game_transaction"
	TriggerUserVerification       TriggerType = "user_verification"
	TriggerDeposit                TriggerType = "deposit"
	TriggerWinningBetsCount       TriggerType = "winning_bets_count"
	TriggerTotalWinAmount         TriggerType = "total_win_amount"
	TriggerMaxSingleWin           TriggerType = "max_single_win"
	TriggerConsecutiveWins        TriggerType = "consecutive_wins"
	TriggerSpecificGameEngagement TriggerType = "specific_game_engagement"
	TriggerMarketSpecificBets     TriggerType = "market_specific_bets"
	TriggerTotalDepositAmount     TriggerType = "total_deposit_amount"
	TriggerWithdrawal             TriggerType = "withdrawal"
	TriggerReferralCount          TriggerType = "referral_count"
	TriggerAccountLongevity       TriggerType = "account_longevity"
	TriggerProfileCompletion      TriggerType = "profile_completion"
	TriggerNetResult              TriggerType = "net_result"
)

type Vertical string

const (
	VerticalCasino        Vertical = "casino"
	VerticalSportsbook    Vertical = "sportsbook"
	VerticalLiveCasino    Vertical = "live_casino"
	VerticalCrossVertical Vertical = "cross_vertical"
)

type VerificationType string

const (
	VerificationEmail VerificationType = "email"
	VerificationPhone VerificationType = "phone"
	VerificationKYC   VerificationType = "kyc"
)

type AchievementStatus string

const (
	AchievementActive   AchievementStatus = "active"
	AchievementInactive AchievementStatus = "inactive"
)

// TriggerConfig carries the parameters for every trigger kind in one
// JSON-serialized blob; which fields are meaningful depends on Type.
type TriggerConfig struct {
	Type TriggerType `json:"type"`

	// login_streak
	Days int `json:"days,omitempty"`

	// game_turnover / game_transaction / market_specific_bets
	Quantity      decimal.Decimal `json:"quantity,omitempty"`
	MinimumAmount decimal.Decimal `json:"minimum_amount,omitempty"`

	// deposit
	NumberOfDeposits     int             `json:"number_of_deposits,omitempty"`
	DepositMinimumAmount decimal.Decimal `json:"deposit_minimum_amount,omitempty"`

	// user_verification
	VerificationType VerificationType `json:"verification_type,omitempty"`

	// game-dependent metrics
	WinningBetsTarget       int             `json:"winning_bets_target,omitempty"`
	TotalWinAmountTarget    decimal.Decimal `json:"total_win_amount_target,omitempty"`
	MaxSingleWinMinimum     decimal.Decimal `json:"max_single_win_minimum,omitempty"`
	WinStreakTarget         int             `json:"win_streak_target,omitempty"`
	SpecificGameID          string          `json:"specific_game_id,omitempty"`
	SpecificEventID         string          `json:"specific_event_id,omitempty"`
	SpecificGameTargetCount int             `json:"specific_game_target_count,omitempty"`
	MarketTypeRequired      string          `json:"market_type_required,omitempty"`

	// non-game-dependent metrics
	TotalDepositAmountTarget  decimal.Decimal `json:"total_deposit_amount_target,omitempty"`
	WithdrawalCountTarget     int             `json:"withdrawal_count_target,omitempty"`
	WithdrawalAmountTarget    decimal.Decimal `json:"withdrawal_amount_target,omitempty"`
	ReferralCountTarget       int             `json:"referral_count_target,omitempty"`
	AccountAgeDaysTarget      int             `json:"account_age_days_target,omitempty"`
	ProfileCompletionRequired bool            `json:"profile_completion_required,omitempty"`
	NetWinTarget              decimal.Decimal `json:"net_win_target,omitempty"`
	NetLossTarget             decimal.Decimal `json:"net_loss_target,omitempty"`
}

type CasinoFilters struct {
	Providers      []string `json:"providers,omitempty"`
	GameCategories []string `json:"game_categories,omitempty"`
	Games          []string `json:"games,omitempty"`
}

type SportsbookFilters struct {
	SportTypes  []string `json:"sport_types,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	Leagues     []string `json:"leagues,omitempty"`
	Events      []string `json:"events,omitempty"`
	MarketTypes []string `json:"market_types,omitempty"`
}

type CrossVerticalFilters struct {
	Casino *CasinoFilters     `json:"casino,omitempty"`
	Sports *SportsbookFilters `json:"sports,omitempty"`
}

// FilterSet is the vertical-scoped filter variant. The achievement's
// Vertical decides which branch applies: casino and live_casino read
// Casino, sportsbook reads Sportsbook, cross_vertical reads Cross.
type FilterSet struct {
	Casino     *CasinoFilters        `json:"casino,omitempty"`
	Sportsbook *SportsbookFilters    `json:"sportsbook,omitempty"`
	Cross      *CrossVerticalFilters `json:"cross_vertical,omitempty"`
}

func (f FilterSet) Empty() bool {
	return f.Casino == nil && f.Sportsbook == nil && f.Cross == nil
}

type Achievement struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"size:1024" json:"description"`

	Trigger  datatypes.JSONType[TriggerConfig] `json:"trigger"`
	Vertical Vertical                          `gorm:"size:16;index" json:"vertical"`
	Filters  datatypes.JSONType[FilterSet]     `json:"filters"`

	RewardPoints    decimal.Decimal   `gorm:"type:numeric(20,2)" json:"reward_points"`
	BonusTemplateID string            `gorm:"size:64" json:"bonus_template_id,omitempty"`
	Status          AchievementStatus `gorm:"size:16;index" json:"status"`
	Priority        int               `json:"priority"`
	Icon            string            `json:"icon,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Achievement) TriggerConfig() TriggerConfig {
	return a.Trigger.Data()
}

func (a *Achievement) FilterSet() FilterSet {
	return a.Filters.Data()
}

// HasReward reports whether completing the achievement pays anything,
// either loyalty points or a bonus template grant.
func (a *Achievement) HasReward() bool {
	return a.RewardPoints.IsPositive() || a.BonusTemplateID != ""
}
