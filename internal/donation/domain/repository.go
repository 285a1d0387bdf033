package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Insert writes the donation. Returns ErrDuplicatePayment when another
	// record already holds the same payment id (unique index violation).
	Insert(ctx context.Context, db *gorm.DB, donation *Donation) error
	FindByPaymentID(ctx context.Context, db *gorm.DB, paymentID string) (*Donation, error)
	// Delete is best-effort cleanup for the narrow campaign-deleted race.
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
