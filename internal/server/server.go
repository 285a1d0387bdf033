package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/nepfund/platform/internal/broadcast"
	"github.com/nepfund/platform/internal/campaign"
	campaigndomain "github.com/nepfund/platform/internal/campaign/domain"
	"github.com/nepfund/platform/internal/config"
	"github.com/nepfund/platform/internal/dashboard"
	dashboarddomain "github.com/nepfund/platform/internal/dashboard/domain"
	"github.com/nepfund/platform/internal/donation"
	"github.com/nepfund/platform/internal/donor"
	obsmetrics "github.com/nepfund/platform/internal/observability/metrics"
	obstracing "github.com/nepfund/platform/internal/observability/tracing"
	"github.com/nepfund/platform/internal/reward"
	rewarddomain "github.com/nepfund/platform/internal/reward/domain"
	"github.com/nepfund/platform/internal/settlement"
	settlementdomain "github.com/nepfund/platform/internal/settlement/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	broadcast.Module,
	campaign.Module,
	donor.Module,
	donation.Module,
	reward.Module,
	dashboard.Module,
	settlement.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	DB            *gorm.DB
	GenID         *snowflake.Node
	CampaignSvc   campaigndomain.Service
	SettlementSvc settlementdomain.Service
	RewardSvc     rewarddomain.Service
	DashboardSvc  dashboarddomain.Service
	Hub           *broadcast.Hub
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	db            *gorm.DB
	genID         *snowflake.Node
	campaignSvc   campaigndomain.Service
	settlementSvc settlementdomain.Service
	rewardSvc     rewarddomain.Service
	dashboardSvc  dashboarddomain.Service
	hub           *broadcast.Hub
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		log:           p.Log.Named("http.server"),
		db:            p.DB,
		genID:         p.GenID,
		campaignSvc:   p.CampaignSvc,
		settlementSvc: p.SettlementSvc,
		rewardSvc:     p.RewardSvc,
		dashboardSvc:  p.DashboardSvc,
		hub:           p.Hub,
	}
}

func registerRoutes(s *Server) {
	v1 := s.engine.Group("/v1")

	v1.GET("/campaigns/:id", s.GetCampaign)
	v1.GET("/live/campaigns", s.StreamCampaignUpdates)

	authed := v1.Group("")
	authed.Use(s.RequireDonor())
	authed.POST("/donations", s.CreateDonation)
	authed.GET("/rewards/me", s.GetRewardStatus)
	authed.GET("/rewards/history", s.ListRewardHistory)

	admin := v1.Group("/admin")
	admin.Use(s.RequireAdmin())
	admin.GET("/dashboard", s.GetDashboardStats)
	admin.GET("/live/dashboard", s.StreamDashboardStats)
	admin.POST("/rewards/bonus", s.GrantBonus)
	admin.POST("/rewards/recalculate", s.RecalculateRewards)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
