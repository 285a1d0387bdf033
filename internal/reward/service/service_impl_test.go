package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nepfund/platform/internal/config"
	"github.com/nepfund/platform/internal/donorctx"
	donordomain "github.com/nepfund/platform/internal/donor/domain"
	donorrepo "github.com/nepfund/platform/internal/donor/repository"
	"github.com/nepfund/platform/internal/reward/domain"
	rewardrepo "github.com/nepfund/platform/internal/reward/repository"
	"github.com/nepfund/platform/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type rewardFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupReward(t *testing.T) *rewardFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS donors (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			total_donated BIGINT NOT NULL DEFAULT 0,
			reward_points BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reward_transactions (
			id BIGINT PRIMARY KEY,
			donor_id BIGINT NOT NULL,
			campaign_id BIGINT,
			donation_id BIGINT,
			donation_amount BIGINT NOT NULL DEFAULT 0,
			points_earned BIGINT NOT NULL DEFAULT 0,
			bonus_points BIGINT NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			note TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      rewardrepo.Provide(),
		Donors:    donorrepo.Provide(),
		RewardCfg: config.NewStaticRewardConfigHolder(config.DefaultRewardConfig()),
	})

	return &rewardFixture{svc: svc, db: db, node: node}
}

func (f *rewardFixture) seedDonor(t *testing.T, points int64) *donordomain.Donor {
	t.Helper()

	now := time.Now().UTC()
	donor := &donordomain.Donor{
		ID:           f.node.Generate(),
		Name:         "Bikash Shrestha",
		Email:        fmt.Sprintf("bikash+%d@example.com", f.node.Generate()),
		RewardPoints: points,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, donorrepo.Provide().Insert(context.Background(), f.db, donor))
	return donor
}

func (f *rewardFixture) appendLedger(t *testing.T, donorID snowflake.ID, earned, bonus int64, at time.Time) {
	t.Helper()

	require.NoError(t, rewardrepo.Provide().Append(context.Background(), f.db, &domain.RewardTransaction{
		ID:           f.node.Generate(),
		DonorID:      donorID,
		PointsEarned: earned,
		BonusPoints:  bonus,
		Reason:       domain.ReasonDonation,
		CreatedAt:    at,
	}))
}

func TestGrantBonus(t *testing.T) {
	f := setupReward(t)
	donor := f.seedDonor(t, 10)

	resp, err := f.svc.GrantBonus(context.Background(), domain.GrantBonusRequest{
		DonorID: donor.ID.String(),
		Points:  100,
		Note:    "festival promotion",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(110), resp.TotalPoints)

	reloaded, err := donorrepo.Provide().FindByID(context.Background(), f.db, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), reloaded.RewardPoints)

	var row struct {
		BonusPoints int64
		Reason      string
		Note        string
	}
	require.NoError(t, f.db.Raw(
		`SELECT bonus_points, reason, note FROM reward_transactions WHERE donor_id = ?`,
		donor.ID,
	).Scan(&row).Error)
	assert.Equal(t, int64(100), row.BonusPoints)
	assert.Equal(t, string(domain.ReasonBonus), row.Reason)
	assert.Equal(t, "festival promotion", row.Note)
}

func TestGrantBonusValidation(t *testing.T) {
	f := setupReward(t)
	donor := f.seedDonor(t, 0)

	_, err := f.svc.GrantBonus(context.Background(), domain.GrantBonusRequest{Points: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidDonorID)

	_, err = f.svc.GrantBonus(context.Background(), domain.GrantBonusRequest{DonorID: "abc", Points: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidDonorID)

	_, err = f.svc.GrantBonus(context.Background(), domain.GrantBonusRequest{DonorID: donor.ID.String(), Points: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPoints)

	_, err = f.svc.GrantBonus(context.Background(), domain.GrantBonusRequest{DonorID: f.node.Generate().String(), Points: 10})
	assert.ErrorIs(t, err, donordomain.ErrNotFound)
}

func TestRecalculateRepairsDrift(t *testing.T) {
	f := setupReward(t)

	// Running total drifted to zero while the ledger holds 75 points, the
	// shape left behind by a failed donor increment during settlement.
	donor := f.seedDonor(t, 0)
	now := time.Now().UTC()
	f.appendLedger(t, donor.ID, 50, 0, now.Add(-2*time.Minute))
	f.appendLedger(t, donor.ID, 0, 25, now.Add(-time.Minute))

	resp, err := f.svc.Recalculate(context.Background(), domain.RecalculateRequest{
		DonorID: donor.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.PreviousPoints)
	assert.Equal(t, int64(75), resp.Points)

	reloaded, err := donorrepo.Provide().FindByID(context.Background(), f.db, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(75), reloaded.RewardPoints)
}

func TestRecalculateNoDrift(t *testing.T) {
	f := setupReward(t)
	donor := f.seedDonor(t, 50)
	f.appendLedger(t, donor.ID, 50, 0, time.Now().UTC())

	resp, err := f.svc.Recalculate(context.Background(), domain.RecalculateRequest{
		DonorID: donor.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.PreviousPoints)
	assert.Equal(t, int64(50), resp.Points)
}

func TestTierStatus(t *testing.T) {
	f := setupReward(t)
	donor := f.seedDonor(t, 1200)
	ctx := donorctx.WithDonorID(context.Background(), donor.ID)

	status, err := f.svc.TierStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1200), status.Points)
	assert.Equal(t, "Silver", status.CurrentTier.Name)
	if assert.NotNil(t, status.NextTier) {
		assert.Equal(t, "Gold", status.NextTier.Name)
	}
	assert.Equal(t, int64(1300), status.PointsToNext)
	assert.Equal(t, int64(13000), status.AmountToNext)
}

func TestTierStatusRequiresDonor(t *testing.T) {
	f := setupReward(t)

	_, err := f.svc.TierStatus(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestHistoryFirstPage(t *testing.T) {
	f := setupReward(t)
	donor := f.seedDonor(t, 0)
	other := f.seedDonor(t, 0)
	ctx := donorctx.WithDonorID(context.Background(), donor.ID)

	now := time.Now().UTC()
	f.appendLedger(t, donor.ID, 10, 0, now.Add(-3*time.Minute))
	f.appendLedger(t, donor.ID, 20, 0, now.Add(-2*time.Minute))
	f.appendLedger(t, donor.ID, 30, 0, now.Add(-time.Minute))
	f.appendLedger(t, other.ID, 99, 0, now)

	resp, err := f.svc.History(ctx, domain.HistoryRequest{
		Pagination: pagination.Pagination{PageSize: 2},
	})
	require.NoError(t, err)

	require.Len(t, resp.Transactions, 2)
	assert.True(t, resp.HasMore)
	assert.NotEmpty(t, resp.NextPageToken)
	// Newest first, scoped to the requesting donor.
	assert.Equal(t, int64(30), resp.Transactions[0].PointsEarned)
	assert.Equal(t, int64(20), resp.Transactions[1].PointsEarned)
}

func TestHistoryRejectsBadToken(t *testing.T) {
	f := setupReward(t)
	donor := f.seedDonor(t, 0)
	ctx := donorctx.WithDonorID(context.Background(), donor.ID)

	_, err := f.svc.History(ctx, domain.HistoryRequest{
		Pagination: pagination.Pagination{PageToken: "%%%not-base64%%%", PageSize: 10},
	})
	assert.Error(t, err)
}
