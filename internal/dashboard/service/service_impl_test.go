package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDashboard(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS campaigns (
			id BIGINT PRIMARY KEY,
			creator_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			goal_amount BIGINT NOT NULL,
			raised_amount BIGINT NOT NULL DEFAULT 0,
			donor_count BIGINT NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS donors (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			total_donated BIGINT NOT NULL DEFAULT 0,
			reward_points BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS donations (
			id BIGINT PRIMARY KEY,
			campaign_id BIGINT NOT NULL,
			donor_id BIGINT NOT NULL,
			amount BIGINT NOT NULL,
			payment_method TEXT NOT NULL,
			payment_id TEXT NOT NULL,
			receipt_number TEXT NOT NULL,
			status TEXT NOT NULL,
			is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
			message TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return db, node
}

func TestStatsAggregates(t *testing.T) {
	db, node := setupDashboard(t)
	svc := New(Params{DB: db, Log: zap.NewNop()})

	insertCampaign := func(status string) {
		require.NoError(t, db.Exec(
			`INSERT INTO campaigns (id, creator_id, title, goal_amount, raised_amount, donor_count, status, created_at, updated_at)
			 VALUES (?, ?, 'c', 1000, 0, 0, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			node.Generate(), node.Generate(), status,
		).Error)
	}
	insertCampaign("approved")
	insertCampaign("approved")
	insertCampaign("pending")
	insertCampaign("completed")

	donorA := node.Generate()
	donorB := node.Generate()
	for _, id := range []snowflake.ID{donorA, donorB, node.Generate()} {
		require.NoError(t, db.Exec(
			`INSERT INTO donors (id, name, email, total_donated, reward_points, created_at, updated_at)
			 VALUES (?, 'd', ?, 0, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			id, fmt.Sprintf("d+%d@example.com", id),
		).Error)
	}

	insertDonation := func(donor snowflake.ID, amount int64, status string) {
		require.NoError(t, db.Exec(
			`INSERT INTO donations (id, campaign_id, donor_id, amount, payment_method, payment_id, receipt_number, status, is_anonymous, created_at)
			 VALUES (?, ?, ?, ?, 'esewa', ?, 'r', ?, FALSE, CURRENT_TIMESTAMP)`,
			node.Generate(), node.Generate(), donor, amount, fmt.Sprintf("txn-%d", node.Generate()), status,
		).Error)
	}
	insertDonation(donorA, 500, "completed")
	insertDonation(donorA, 300, "completed")
	insertDonation(donorB, 200, "completed")
	insertDonation(donorB, 999, "refunded")

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalCampaigns)
	assert.Equal(t, int64(2), stats.ApprovedCampaigns)
	assert.Equal(t, int64(1), stats.PendingCampaigns)
	assert.Equal(t, int64(1), stats.CompletedCampaigns)
	assert.Equal(t, int64(3), stats.TotalDonors)
	assert.Equal(t, int64(2), stats.ContributingDonors)
	assert.Equal(t, int64(3), stats.DonationCount)
	assert.Equal(t, int64(1000), stats.DonationTotal)
}

func TestStatsEmptyPlatform(t *testing.T) {
	db, _ := setupDashboard(t)
	svc := New(Params{DB: db, Log: zap.NewNop()})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalCampaigns)
	assert.Equal(t, int64(0), stats.DonationTotal)
}
