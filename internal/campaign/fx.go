package campaign

import (
	"github.com/nepfund/platform/internal/campaign/repository"
	"github.com/nepfund/platform/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
