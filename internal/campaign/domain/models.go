package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CampaignStatus follows the moderation lifecycle. Only approved campaigns
// accept donations.
type CampaignStatus string

const (
	StatusPending   CampaignStatus = "pending"
	StatusApproved  CampaignStatus = "approved"
	StatusRejected  CampaignStatus = "rejected"
	StatusCompleted CampaignStatus = "completed"
	StatusClosed    CampaignStatus = "closed"
)

type Campaign struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	CreatorID    snowflake.ID   `gorm:"not null;index" json:"creator_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	GoalAmount   int64          `gorm:"not null" json:"goal_amount"`
	RaisedAmount int64          `gorm:"not null;default:0" json:"raised_amount"`
	DonorCount   int64          `gorm:"not null;default:0" json:"donor_count"`
	Status       CampaignStatus `gorm:"type:text;not null;index" json:"status"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Campaign) TableName() string { return "campaigns" }

// ProgressPct returns funding progress as a 0-100 percentage.
func (c Campaign) ProgressPct() float64 {
	if c.GoalAmount <= 0 {
		return 0
	}
	pct := float64(c.RaisedAmount) / float64(c.GoalAmount) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
