package domain

import (
	"context"
	"errors"
)

// SettleRequest carries one confirmed gateway payment. The donor identity
// comes from the request context, not the payload; presence of PaymentID is
// trusted to mean the gateway completed the payment (verification happens
// upstream).
type SettleRequest struct {
	CampaignID    string
	Amount        int64
	PaymentMethod string
	PaymentID     string
	IsAnonymous   bool
	Message       string
}

// SettleResult reports the settlement outcome. IsDuplicate marks a replayed
// payment id; PointsEarned is zero both for duplicates and when the reward
// step degraded.
type SettleResult struct {
	IsDuplicate  bool  `json:"is_duplicate"`
	PointsEarned int64 `json:"points_earned"`
	TotalPoints  int64 `json:"total_points"`
}

type Service interface {
	Settle(context.Context, SettleRequest) (SettleResult, error)
}

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrCampaignRequired    = errors.New("invalid_campaign_id")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrPaymentIDRequired   = errors.New("invalid_payment_id")
	ErrMessageTooLong      = errors.New("invalid_message")
	ErrCampaignNotApproved = errors.New("campaign_not_approved")
	ErrGoalAlreadyReached  = errors.New("goal_already_reached")
)
