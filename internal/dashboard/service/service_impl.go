package service

import (
	"context"

	"github.com/nepfund/platform/internal/dashboard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

type statsRow struct {
	TotalCampaigns     int64 `gorm:"column:total_campaigns"`
	ApprovedCampaigns  int64 `gorm:"column:approved_campaigns"`
	PendingCampaigns   int64 `gorm:"column:pending_campaigns"`
	CompletedCampaigns int64 `gorm:"column:completed_campaigns"`
	TotalDonors        int64 `gorm:"column:total_donors"`
	ContributingDonors int64 `gorm:"column:contributing_donors"`
	DonationCount      int64 `gorm:"column:donation_count"`
	DonationTotal      int64 `gorm:"column:donation_total"`
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	var row statsRow
	query := `
		SELECT
			(SELECT COUNT(*) FROM campaigns) AS total_campaigns,
			(SELECT COUNT(*) FROM campaigns WHERE status = 'approved') AS approved_campaigns,
			(SELECT COUNT(*) FROM campaigns WHERE status = 'pending') AS pending_campaigns,
			(SELECT COUNT(*) FROM campaigns WHERE status = 'completed') AS completed_campaigns,
			(SELECT COUNT(*) FROM donors) AS total_donors,
			(SELECT COUNT(DISTINCT donor_id) FROM donations WHERE status = 'completed') AS contributing_donors,
			(SELECT COUNT(*) FROM donations WHERE status = 'completed') AS donation_count,
			(SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status = 'completed') AS donation_total`

	if err := s.db.WithContext(ctx).Raw(query).Scan(&row).Error; err != nil {
		return domain.Stats{}, err
	}

	return domain.Stats{
		TotalCampaigns:     row.TotalCampaigns,
		ApprovedCampaigns:  row.ApprovedCampaigns,
		PendingCampaigns:   row.PendingCampaigns,
		CompletedCampaigns: row.CompletedCampaigns,
		TotalDonors:        row.TotalDonors,
		ContributingDonors: row.ContributingDonors,
		DonationCount:      row.DonationCount,
		DonationTotal:      row.DonationTotal,
	}, nil
}
