package reward

import (
	"github.com/nepfund/platform/internal/reward/repository"
	"github.com/nepfund/platform/internal/reward/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reward.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
