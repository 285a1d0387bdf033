package donation

import (
	"github.com/nepfund/platform/internal/donation/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("donation.repository",
	fx.Provide(repository.Provide),
)
