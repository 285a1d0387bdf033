package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/nepfund/platform/internal/broadcast"
	campaigndomain "github.com/nepfund/platform/internal/campaign/domain"
	"github.com/nepfund/platform/internal/config"
	dashboarddomain "github.com/nepfund/platform/internal/dashboard/domain"
	donationdomain "github.com/nepfund/platform/internal/donation/domain"
	"github.com/nepfund/platform/internal/donorctx"
	donordomain "github.com/nepfund/platform/internal/donor/domain"
	obsmetrics "github.com/nepfund/platform/internal/observability/metrics"
	rewarddomain "github.com/nepfund/platform/internal/reward/domain"
	"github.com/nepfund/platform/internal/settlement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Campaigns   campaigndomain.Repository
	Donors      donordomain.Repository
	Donations   donationdomain.Repository
	Rewards     rewarddomain.Repository
	RewardCfg   *config.RewardConfigHolder
	Broadcaster broadcast.Broadcaster
	Dashboard   dashboarddomain.Service
	Metrics     *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	campaigns   campaigndomain.Repository
	donors      donordomain.Repository
	donations   donationdomain.Repository
	rewards     rewarddomain.Repository
	rewardCfg   *config.RewardConfigHolder
	broadcaster broadcast.Broadcaster
	dashboard   dashboarddomain.Service
	metrics     *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("settlement.service"),
		genID:       p.GenID,
		campaigns:   p.Campaigns,
		donors:      p.Donors,
		donations:   p.Donations,
		rewards:     p.Rewards,
		rewardCfg:   p.RewardCfg,
		broadcaster: p.Broadcaster,
		dashboard:   p.Dashboard,
		metrics:     p.Metrics,
	}
}

// Settle converts one confirmed payment into durable platform state. The
// donation insert is the commit point: every precondition failure before it
// aborts the call, every failure after it degrades gracefully. Reward
// bookkeeping that drops here is reconcilable from the ledger and donation
// history via the admin recalculation sweep.
func (s *Service) Settle(ctx context.Context, req domain.SettleRequest) (domain.SettleResult, error) {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.SettleResult{}, domain.ErrUnauthenticated
	}

	campaignRaw := strings.TrimSpace(req.CampaignID)
	if campaignRaw == "" {
		return domain.SettleResult{}, domain.ErrCampaignRequired
	}
	campaignID, err := snowflake.ParseString(campaignRaw)
	if err != nil {
		return domain.SettleResult{}, domain.ErrCampaignRequired
	}
	if req.Amount <= 0 {
		return domain.SettleResult{}, domain.ErrInvalidAmount
	}
	paymentID := strings.TrimSpace(req.PaymentID)
	if paymentID == "" {
		return domain.SettleResult{}, domain.ErrPaymentIDRequired
	}
	message := strings.TrimSpace(req.Message)
	if len(message) > donationdomain.MaxMessageLen {
		return domain.SettleResult{}, domain.ErrMessageTooLong
	}

	campaign, err := s.campaigns.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return domain.SettleResult{}, err
	}
	if campaign == nil {
		return domain.SettleResult{}, campaigndomain.ErrNotFound
	}
	if campaign.Status != campaigndomain.StatusApproved {
		s.countRejected()
		return domain.SettleResult{}, domain.ErrCampaignNotApproved
	}
	if campaign.RaisedAmount >= campaign.GoalAmount {
		s.countRejected()
		return domain.SettleResult{}, domain.ErrGoalAlreadyReached
	}

	// Replay pre-check. The unique index on payment_id is the real guard;
	// this just avoids the insert round-trip for the common retry case.
	if existing, err := s.donations.FindByPaymentID(ctx, s.db, paymentID); err != nil {
		return domain.SettleResult{}, err
	} else if existing != nil {
		return s.duplicateResult(ctx, donorID, paymentID), nil
	}

	donation := &donationdomain.Donation{
		ID:            s.genID.Generate(),
		CampaignID:    campaignID,
		DonorID:       donorID,
		Amount:        req.Amount,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		PaymentID:     paymentID,
		ReceiptNumber: uuid.NewString(),
		Status:        donationdomain.StatusCompleted,
		IsAnonymous:   req.IsAnonymous,
		Message:       message,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.donations.Insert(ctx, s.db, donation); err != nil {
		if errors.Is(err, donationdomain.ErrDuplicatePayment) {
			// Lost the insert race to a concurrent retry; same outcome as
			// the pre-check hit.
			return s.duplicateResult(ctx, donorID, paymentID), nil
		}
		return domain.SettleResult{}, err
	}

	// From here on the donation is the financial source of truth and the
	// call reports success no matter what degrades below.

	updated, err := s.campaigns.ApplyDonation(ctx, s.db, campaignID, req.Amount)
	if err != nil {
		s.log.Error("campaign update failed after donation recorded",
			zap.String("campaign_id", campaignID.String()),
			zap.String("donation_id", donation.ID.String()),
			zap.Int64("amount", req.Amount),
			zap.Error(err),
		)
		s.countSoftFailure("campaign_update")
	} else if updated == nil {
		// Campaign vanished between the precondition read and the update.
		// Roll the donation back; its failure is only logged.
		s.log.Warn("campaign deleted mid-settlement, rolling back donation",
			zap.String("campaign_id", campaignID.String()),
			zap.String("donation_id", donation.ID.String()),
		)
		if delErr := s.donations.Delete(ctx, s.db, donation.ID); delErr != nil {
			s.log.Error("donation rollback failed",
				zap.String("donation_id", donation.ID.String()),
				zap.Error(delErr),
			)
		}
		return domain.SettleResult{}, campaigndomain.ErrNotFound
	}

	cfg := s.rewardCfg.Get()
	pointsEarned := rewarddomain.PointsFor(req.Amount, cfg.PointsPerUnit)

	pointsCredited := true
	if err := s.donors.ApplyDonation(ctx, s.db, donorID, req.Amount, pointsEarned); err != nil {
		s.log.Error("donor reward increment failed",
			zap.String("donor_id", donorID.String()),
			zap.String("donation_id", donation.ID.String()),
			zap.Int64("points", pointsEarned),
			zap.Error(err),
		)
		s.countSoftFailure("donor_increment")
		pointsCredited = false
	}

	totalPoints := int64(0)
	if donor, err := s.donors.FindByID(ctx, s.db, donorID); err == nil && donor != nil {
		totalPoints = donor.RewardPoints
	}

	// The ledger row always records the points this donation earned, even
	// when the running-total increment failed: the recalculation sweep
	// re-derives totals from the ledger, so a skipped append would make the
	// drift permanent.
	if err := s.rewards.Append(ctx, s.db, &rewarddomain.RewardTransaction{
		ID:             s.genID.Generate(),
		DonorID:        donorID,
		CampaignID:     &campaignID,
		DonationID:     &donation.ID,
		DonationAmount: req.Amount,
		PointsEarned:   pointsEarned,
		Reason:         rewarddomain.ReasonDonation,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		s.log.Error("reward ledger append failed",
			zap.String("donor_id", donorID.String()),
			zap.String("donation_id", donation.ID.String()),
			zap.Int64("points", pointsEarned),
			zap.Error(err),
		)
		s.countSoftFailure("ledger_append")
	}

	if updated != nil {
		s.publishUpdates(ctx, updated)
	}

	reportedPoints := pointsEarned
	if !pointsCredited {
		reportedPoints = 0
	}

	if s.metrics != nil {
		s.metrics.SettlementsTotal.WithLabelValues(obsmetrics.OutcomeSettled).Inc()
		s.metrics.SettledAmount.Add(float64(req.Amount))
		s.metrics.RewardPointsTotal.Add(float64(reportedPoints))
	}

	s.log.Info("donation settled",
		zap.String("campaign_id", campaignID.String()),
		zap.String("donor_id", donorID.String()),
		zap.String("payment_id", paymentID),
		zap.Int64("amount", req.Amount),
		zap.Int64("points", reportedPoints),
	)

	return domain.SettleResult{
		IsDuplicate:  false,
		PointsEarned: reportedPoints,
		TotalPoints:  totalPoints,
	}, nil
}

// duplicateResult is the replay path: no mutation, current points reported
// best-effort.
func (s *Service) duplicateResult(ctx context.Context, donorID snowflake.ID, paymentID string) domain.SettleResult {
	totalPoints := int64(0)
	if donor, err := s.donors.FindByID(ctx, s.db, donorID); err == nil && donor != nil {
		totalPoints = donor.RewardPoints
	}

	if s.metrics != nil {
		s.metrics.SettlementsTotal.WithLabelValues(obsmetrics.OutcomeDuplicate).Inc()
	}

	s.log.Info("duplicate payment collapsed",
		zap.String("donor_id", donorID.String()),
		zap.String("payment_id", paymentID),
	)

	return domain.SettleResult{
		IsDuplicate:  true,
		PointsEarned: 0,
		TotalPoints:  totalPoints,
	}
}

func (s *Service) publishUpdates(ctx context.Context, campaign *campaigndomain.Campaign) {
	s.broadcaster.Publish(broadcast.TopicCampaignUpdated, map[string]any{
		"campaign_id":   campaign.ID.String(),
		"raised_amount": campaign.RaisedAmount,
		"goal_amount":   campaign.GoalAmount,
		"donor_count":   campaign.DonorCount,
		"status":        campaign.Status,
		"progress_pct":  campaign.ProgressPct(),
	})

	stats, err := s.dashboard.Stats(ctx)
	if err != nil {
		s.log.Warn("dashboard stats recompute failed", zap.Error(err))
		s.countSoftFailure("dashboard_stats")
		return
	}
	s.broadcaster.Publish(broadcast.TopicDashboardStats, stats)
}

func (s *Service) countRejected() {
	if s.metrics != nil {
		s.metrics.SettlementsTotal.WithLabelValues(obsmetrics.OutcomeRejected).Inc()
	}
}

func (s *Service) countSoftFailure(step string) {
	if s.metrics != nil {
		s.metrics.SoftFailures.WithLabelValues(step).Inc()
	}
}
