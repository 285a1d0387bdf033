package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/campaign/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("campaign.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCampaignRequest) (domain.CampaignView, error) {
	raw := strings.TrimSpace(req.ID)
	if raw == "" {
		return domain.CampaignView{}, domain.ErrInvalidID
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return domain.CampaignView{}, domain.ErrInvalidID
	}

	campaign, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.CampaignView{}, err
	}
	if campaign == nil {
		return domain.CampaignView{}, domain.ErrNotFound
	}

	return domain.CampaignView{
		Campaign: *campaign,
		Progress: campaign.ProgressPct(),
	}, nil
}
