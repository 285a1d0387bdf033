package domain

import (
	"context"
	"errors"
)

type GetCampaignRequest struct {
	ID string
}

type CampaignView struct {
	Campaign
	Progress float64 `json:"progress_pct"`
}

type Service interface {
	GetByID(context.Context, GetCampaignRequest) (CampaignView, error)
}

var (
	ErrInvalidID = errors.New("invalid_campaign_id")
	ErrNotFound  = errors.New("campaign_not_found")
)
