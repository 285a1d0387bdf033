package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/donor/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, donor *domain.Donor) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO donors (id, name, email, total_donated, reward_points, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		donor.ID,
		donor.Name,
		donor.Email,
		donor.TotalDonated,
		donor.RewardPoints,
		donor.CreatedAt,
		donor.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donor, error) {
	var donor domain.Donor
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, total_donated, reward_points, created_at, updated_at
		 FROM donors WHERE id = ?`,
		id,
	).Scan(&donor).Error
	if err != nil {
		return nil, err
	}
	if donor.ID == 0 {
		return nil, nil
	}
	return &donor, nil
}

func (r *repo) ApplyDonation(ctx context.Context, db *gorm.DB, id snowflake.ID, amount, points int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE donors
		 SET total_donated = total_donated + ?, reward_points = reward_points + ?, updated_at = ?
		 WHERE id = ?`,
		amount,
		points,
		time.Now().UTC(),
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) AddPoints(ctx context.Context, db *gorm.DB, id snowflake.ID, points int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE donors SET reward_points = reward_points + ?, updated_at = ? WHERE id = ?`,
		points,
		time.Now().UTC(),
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) SetPoints(ctx context.Context, db *gorm.DB, id snowflake.ID, points int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE donors SET reward_points = ?, updated_at = ? WHERE id = ?`,
		points,
		time.Now().UTC(),
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
