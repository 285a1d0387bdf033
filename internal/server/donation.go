package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settlementdomain "github.com/nepfund/platform/internal/settlement/domain"
)

type createDonationRequest struct {
	CampaignID    string `json:"campaign_id"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	PaymentID     string `json:"payment_id"`
	IsAnonymous   bool   `json:"is_anonymous"`
	Message       string `json:"message"`
}

type rewardInfo struct {
	PointsEarned int64 `json:"points_earned"`
	TotalPoints  int64 `json:"total_points"`
}

type createDonationResponse struct {
	Success     bool       `json:"success"`
	IsDuplicate bool       `json:"is_duplicate"`
	Reward      rewardInfo `json:"reward"`
}

// CreateDonation is the settlement entry point. The payment has already been
// confirmed by the gateway verification collaborator; this endpoint converts
// it into durable platform state.
func (s *Server) CreateDonation(c *gin.Context) {
	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.settlementSvc.Settle(c.Request.Context(), settlementdomain.SettleRequest{
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
		IsAnonymous:   req.IsAnonymous,
		Message:       req.Message,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsDuplicate {
		status = http.StatusOK
	}
	c.JSON(status, createDonationResponse{
		Success:     true,
		IsDuplicate: result.IsDuplicate,
		Reward: rewardInfo{
			PointsEarned: result.PointsEarned,
			TotalPoints:  result.TotalPoints,
		},
	})
}
