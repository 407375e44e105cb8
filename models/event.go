package models

import "github.com/shopspring/decimal"

// ActionEvent is one player action as reported by the verticals. Every
// field except Type is optional; pointer fields distinguish "absent"
// from a legitimate zero value (an amount of 0, a lost bet).
type ActionEvent struct {
	Type     TriggerType `json:"type"`
	Vertical Vertical    `json:"vertical,omitempty"`

	Amount           *decimal.Decimal `json:"amount,omitempty"`
	VerificationType VerificationType `json:"verification_type,omitempty"`

	IsWin     *bool            `json:"is_win,omitempty"`
	WinAmount *decimal.Decimal `json:"win_amount,omitempty"`

	Provider   string `json:"provider,omitempty"`
	Category   string `json:"category,omitempty"`
	GameID     string `json:"game_id,omitempty"`
	SportType  string `json:"sport_type,omitempty"`
	Country    string `json:"country,omitempty"`
	League     string `json:"league,omitempty"`
	EventID    string `json:"event_id,omitempty"`
	MarketType string `json:"market_type,omitempty"`

	IsWithdrawal     bool             `json:"is_withdrawal,omitempty"`
	Referrals        int              `json:"referrals,omitempty"`
	ProfileCompleted bool             `json:"profile_completed,omitempty"`
	AccountAgeDays   *int             `json:"account_age_days,omitempty"`
	NetDelta         *decimal.Decimal `json:"net_delta,omitempty"`
}

func (e *ActionEvent) Won() bool {
	return e.IsWin != nil && *e.IsWin
}
