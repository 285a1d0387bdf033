package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rewarddomain "github.com/nepfund/platform/internal/reward/domain"
)

func (s *Server) GetRewardStatus(c *gin.Context) {
	status, err := s.rewardSvc.TierStatus(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) ListRewardHistory(c *gin.Context) {
	var req rewarddomain.HistoryRequest
	if err := c.ShouldBindQuery(&req.Pagination); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	history, err := s.rewardSvc.History(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

type grantBonusRequest struct {
	DonorID string `json:"donor_id"`
	Points  int64  `json:"points"`
	Note    string `json:"note"`
}

func (s *Server) GrantBonus(c *gin.Context) {
	var req grantBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.rewardSvc.GrantBonus(c.Request.Context(), rewarddomain.GrantBonusRequest{
		DonorID: req.DonorID,
		Points:  req.Points,
		Note:    req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type recalculateRequest struct {
	DonorID string `json:"donor_id"`
}

func (s *Server) RecalculateRewards(c *gin.Context) {
	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.rewardSvc.Recalculate(c.Request.Context(), rewarddomain.RecalculateRequest{
		DonorID: req.DonorID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
