package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/nepfund/platform/internal/donorctx"
)

// Session issuance lives in the auth gateway in front of this service; by
// the time a request arrives here the donor identity has been validated and
// forwarded in X-Donor-ID.
const donorHeader = "X-Donor-ID"

const adminHeader = "X-Admin-Token"

func (s *Server) RequireDonor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(donorHeader))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := donorctx.WithDonorID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(adminHeader))
		if s.cfg.AdminToken == "" || token != s.cfg.AdminToken {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
