package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/pkg/db/pagination"
)

// RewardReason classifies why points were credited.
type RewardReason string

const (
	ReasonDonation        RewardReason = "donation"
	ReasonBonus           RewardReason = "bonus"
	ReasonAdminAdjustment RewardReason = "admin_adjustment"
)

// RewardTransaction is one immutable ledger row per point-earning event.
// Rows are never updated or deleted; the donor's running total is mutable
// state that this ledger can always re-derive.
type RewardTransaction struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	DonorID        snowflake.ID  `gorm:"not null;index" json:"donor_id"`
	CampaignID     *snowflake.ID `gorm:"index" json:"campaign_id,omitempty"`
	DonationID     *snowflake.ID `gorm:"index" json:"donation_id,omitempty"`
	DonationAmount int64         `gorm:"not null;default:0" json:"donation_amount"`
	PointsEarned   int64         `gorm:"not null;default:0" json:"points_earned"`
	BonusPoints    int64         `gorm:"not null;default:0" json:"bonus_points"`
	Reason         RewardReason  `gorm:"type:text;not null" json:"reason"`
	Note           string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (RewardTransaction) TableName() string { return "reward_transactions" }

type HistoryRequest struct {
	pagination.Pagination
}

type HistoryResponse struct {
	pagination.PageInfo
	Transactions []RewardTransaction `json:"transactions"`
}

type GrantBonusRequest struct {
	DonorID string
	Points  int64
	Note    string
}

type GrantBonusResponse struct {
	TotalPoints int64 `json:"total_points"`
}

type RecalculateRequest struct {
	DonorID string
}

type RecalculateResponse struct {
	PreviousPoints int64 `json:"previous_points"`
	Points         int64 `json:"points"`
}

type TierStatusResponse struct {
	Points       int64   `json:"points"`
	CurrentTier  Tier    `json:"current_tier"`
	NextTier     *Tier   `json:"next_tier,omitempty"`
	ProgressPct  float64 `json:"progress_pct"`
	PointsToNext int64   `json:"points_to_next"`
	AmountToNext int64   `json:"amount_to_next"`
}

type Service interface {
	History(context.Context, HistoryRequest) (HistoryResponse, error)
	TierStatus(context.Context) (TierStatusResponse, error)
	GrantBonus(context.Context, GrantBonusRequest) (GrantBonusResponse, error)
	Recalculate(context.Context, RecalculateRequest) (RecalculateResponse, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidDonorID  = errors.New("invalid_donor_id")
	ErrInvalidPoints   = errors.New("invalid_points")
)
