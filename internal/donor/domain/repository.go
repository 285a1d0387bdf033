package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, donor *Donor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donor, error)
	// ApplyDonation atomically adds the donated amount and earned points to
	// the donor's running totals.
	ApplyDonation(ctx context.Context, db *gorm.DB, id snowflake.ID, amount, points int64) error
	// AddPoints atomically credits bonus points.
	AddPoints(ctx context.Context, db *gorm.DB, id snowflake.ID, points int64) error
	// SetPoints overwrites the running total; used by the reconciliation
	// sweep that re-derives points from the reward ledger.
	SetPoints(ctx context.Context, db *gorm.DB, id snowflake.ID, points int64) error
}
