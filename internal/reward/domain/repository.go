package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	// Append inserts one ledger row. The table is append-only; there is no
	// update or delete path.
	Append(ctx context.Context, db *gorm.DB, txn *RewardTransaction) error
	ListByDonor(ctx context.Context, db *gorm.DB, donorID snowflake.ID, cursor *pagination.Cursor, limit int) ([]*RewardTransaction, error)
	// SumPointsByDonor re-derives the donor's total from the ledger.
	SumPointsByDonor(ctx context.Context, db *gorm.DB, donorID snowflake.ID) (int64, error)
}
