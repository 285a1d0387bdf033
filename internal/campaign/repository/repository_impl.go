package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/campaign/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, campaign *domain.Campaign) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO campaigns (id, creator_id, title, description, goal_amount, raised_amount, donor_count, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		campaign.ID,
		campaign.CreatorID,
		campaign.Title,
		campaign.Description,
		campaign.GoalAmount,
		campaign.RaisedAmount,
		campaign.DonorCount,
		campaign.Status,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := db.WithContext(ctx).Raw(
		`SELECT id, creator_id, title, description, goal_amount, raised_amount, donor_count, status, created_at, updated_at
		 FROM campaigns WHERE id = ?`,
		id,
	).Scan(&campaign).Error
	if err != nil {
		return nil, err
	}
	if campaign.ID == 0 {
		return nil, nil
	}
	return &campaign, nil
}

// ApplyDonation runs the increment inside the database so that concurrent
// settlements on the same campaign never lose an update. The CASE arithmetic
// caps raised_amount at goal_amount and promotes approved -> completed in the
// same statement.
func (r *repo) ApplyDonation(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) (*domain.Campaign, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE campaigns
		 SET raised_amount = CASE WHEN raised_amount + ? >= goal_amount THEN goal_amount ELSE raised_amount + ? END,
		     status = CASE WHEN raised_amount + ? >= goal_amount AND status = ? THEN ? ELSE status END,
		     donor_count = donor_count + 1,
		     updated_at = ?
		 WHERE id = ?`,
		amount,
		amount,
		amount,
		domain.StatusApproved,
		domain.StatusCompleted,
		time.Now().UTC(),
		id,
	)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, db, id)
}
