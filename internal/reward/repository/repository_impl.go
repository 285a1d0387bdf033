package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/reward/domain"
	"github.com/nepfund/platform/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Append(ctx context.Context, db *gorm.DB, txn *domain.RewardTransaction) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO reward_transactions (id, donor_id, campaign_id, donation_id, donation_amount, points_earned, bonus_points, reason, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		txn.DonorID,
		txn.CampaignID,
		txn.DonationID,
		txn.DonationAmount,
		txn.PointsEarned,
		txn.BonusPoints,
		txn.Reason,
		txn.Note,
		txn.CreatedAt,
	).Error
}

func (r *repo) ListByDonor(ctx context.Context, db *gorm.DB, donorID snowflake.ID, cursor *pagination.Cursor, limit int) ([]*domain.RewardTransaction, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.RewardTransaction{}).
		Where("donor_id = ?", donorID)
	if cursor != nil && cursor.CreatedAt != "" && cursor.ID != "" {
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var txns []*domain.RewardTransaction
	err := stmt.
		Order("created_at desc, id desc").
		Limit(limit + 1).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repo) SumPointsByDonor(ctx context.Context, db *gorm.DB, donorID snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(points_earned + bonus_points), 0)
		 FROM reward_transactions WHERE donor_id = ?`,
		donorID,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
