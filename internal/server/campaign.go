package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/nepfund/platform/internal/campaign/domain"
)

func (s *Server) GetCampaign(c *gin.Context) {
	view, err := s.campaignSvc.GetByID(c.Request.Context(), campaigndomain.GetCampaignRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
