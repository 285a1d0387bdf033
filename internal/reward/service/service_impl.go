package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/config"
	"github.com/nepfund/platform/internal/donorctx"
	donordomain "github.com/nepfund/platform/internal/donor/domain"
	"github.com/nepfund/platform/internal/reward/domain"
	"github.com/nepfund/platform/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Donors    donordomain.Repository
	RewardCfg *config.RewardConfigHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	donors    donordomain.Repository
	rewardCfg *config.RewardConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("reward.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		donors:    p.Donors,
		rewardCfg: p.RewardCfg,
	}
}

// Tiers converts the active policy config into the ordered tier ladder.
func Tiers(cfg config.RewardConfig) []domain.Tier {
	tiers := make([]domain.Tier, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, domain.Tier{
			Name:      t.Name,
			MinPoints: t.MinPoints,
			MaxPoints: t.MaxPoints,
		})
	}
	return tiers
}

func (s *Service) History(ctx context.Context, req domain.HistoryRequest) (domain.HistoryResponse, error) {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.HistoryResponse{}, domain.ErrUnauthenticated
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var cursor *pagination.Cursor
	if token := strings.TrimSpace(req.PageToken); token != "" {
		decoded, err := pagination.DecodeCursor(token)
		if err != nil {
			return domain.HistoryResponse{}, err
		}
		cursor = decoded
	}

	txns, err := s.repo.ListByDonor(ctx, s.db, donorID, cursor, limit)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	pageInfo, txns := pagination.BuildCursorPageInfo(txns, limit, func(t *domain.RewardTransaction) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        t.ID.String(),
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		return token
	})

	out := make([]domain.RewardTransaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, *t)
	}

	return domain.HistoryResponse{
		PageInfo:     *pageInfo,
		Transactions: out,
	}, nil
}

func (s *Service) TierStatus(ctx context.Context) (domain.TierStatusResponse, error) {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.TierStatusResponse{}, domain.ErrUnauthenticated
	}

	donor, err := s.donors.FindByID(ctx, s.db, donorID)
	if err != nil {
		return domain.TierStatusResponse{}, err
	}
	if donor == nil {
		return domain.TierStatusResponse{}, donordomain.ErrNotFound
	}

	cfg := s.rewardCfg.Get()
	progress := domain.ProgressFor(donor.RewardPoints, Tiers(cfg), cfg.PointsPerUnit)

	return domain.TierStatusResponse{
		Points:       donor.RewardPoints,
		CurrentTier:  progress.Current,
		NextTier:     progress.Next,
		ProgressPct:  progress.ProgressPct,
		PointsToNext: progress.PointsToNext,
		AmountToNext: progress.AmountToNext,
	}, nil
}

func (s *Service) GrantBonus(ctx context.Context, req domain.GrantBonusRequest) (domain.GrantBonusResponse, error) {
	raw := strings.TrimSpace(req.DonorID)
	if raw == "" {
		return domain.GrantBonusResponse{}, domain.ErrInvalidDonorID
	}
	donorID, err := snowflake.ParseString(raw)
	if err != nil {
		return domain.GrantBonusResponse{}, domain.ErrInvalidDonorID
	}
	if req.Points <= 0 {
		return domain.GrantBonusResponse{}, domain.ErrInvalidPoints
	}

	donor, err := s.donors.FindByID(ctx, s.db, donorID)
	if err != nil {
		return domain.GrantBonusResponse{}, err
	}
	if donor == nil {
		return domain.GrantBonusResponse{}, donordomain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Append(ctx, tx, &domain.RewardTransaction{
			ID:          s.genID.Generate(),
			DonorID:     donorID,
			BonusPoints: req.Points,
			Reason:      domain.ReasonBonus,
			Note:        strings.TrimSpace(req.Note),
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}
		return s.donors.AddPoints(ctx, tx, donorID, req.Points)
	})
	if err != nil {
		return domain.GrantBonusResponse{}, err
	}

	s.log.Info("bonus points granted",
		zap.String("donor_id", donorID.String()),
		zap.Int64("points", req.Points),
	)

	return domain.GrantBonusResponse{TotalPoints: donor.RewardPoints + req.Points}, nil
}

// Recalculate re-derives the donor's running total from the reward ledger.
// This is the manual reconciliation path for drift introduced by a failed
// donor increment during settlement.
func (s *Service) Recalculate(ctx context.Context, req domain.RecalculateRequest) (domain.RecalculateResponse, error) {
	raw := strings.TrimSpace(req.DonorID)
	if raw == "" {
		return domain.RecalculateResponse{}, domain.ErrInvalidDonorID
	}
	donorID, err := snowflake.ParseString(raw)
	if err != nil {
		return domain.RecalculateResponse{}, domain.ErrInvalidDonorID
	}

	donor, err := s.donors.FindByID(ctx, s.db, donorID)
	if err != nil {
		return domain.RecalculateResponse{}, err
	}
	if donor == nil {
		return domain.RecalculateResponse{}, donordomain.ErrNotFound
	}

	total, err := s.repo.SumPointsByDonor(ctx, s.db, donorID)
	if err != nil {
		return domain.RecalculateResponse{}, err
	}

	if total != donor.RewardPoints {
		if err := s.donors.SetPoints(ctx, s.db, donorID, total); err != nil {
			return domain.RecalculateResponse{}, err
		}
		s.log.Info("reward points reconciled",
			zap.String("donor_id", donorID.String()),
			zap.Int64("previous", donor.RewardPoints),
			zap.Int64("points", total),
		)
	}

	return domain.RecalculateResponse{
		PreviousPoints: donor.RewardPoints,
		Points:         total,
	}, nil
}
