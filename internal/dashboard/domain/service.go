package domain

import "context"

// Stats is the aggregate snapshot pushed to the admin dashboard after each
// settlement and served on demand.
type Stats struct {
	TotalCampaigns     int64 `json:"total_campaigns"`
	ApprovedCampaigns  int64 `json:"approved_campaigns"`
	PendingCampaigns   int64 `json:"pending_campaigns"`
	CompletedCampaigns int64 `json:"completed_campaigns"`
	TotalDonors        int64 `json:"total_donors"`
	ContributingDonors int64 `json:"contributing_donors"`
	DonationCount      int64 `json:"donation_count"`
	DonationTotal      int64 `json:"donation_total"`
}

type Service interface {
	Stats(context.Context) (Stats, error)
}
