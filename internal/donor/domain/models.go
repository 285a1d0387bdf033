package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Donor struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"not null;uniqueIndex:ux_donors_email" json:"email"`
	TotalDonated int64        `gorm:"not null;default:0" json:"total_donated"`
	RewardPoints int64        `gorm:"not null;default:0" json:"reward_points"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Donor) TableName() string { return "donors" }

var ErrNotFound = errors.New("donor_not_found")
