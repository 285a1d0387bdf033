package donor

import (
	"github.com/nepfund/platform/internal/donor/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("donor.repository",
	fx.Provide(repository.Provide),
)
