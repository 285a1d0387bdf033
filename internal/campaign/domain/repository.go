package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Campaign, error)
	// ApplyDonation atomically adds amount to raised_amount (capped at
	// goal_amount), bumps donor_count, and flips an approved campaign to
	// completed when the goal is reached. Returns the updated row, or nil
	// when the campaign no longer exists.
	ApplyDonation(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) (*Campaign, error)
}
