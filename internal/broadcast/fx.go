package broadcast

import (
	"context"

	"github.com/nepfund/platform/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("broadcast",
	fx.Provide(NewHub),
	fx.Provide(NewRedisClient),
	fx.Provide(NewFanout),
)

// NewRedisClient returns nil when no Redis address is configured; the fanout
// then runs in-process only.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("redis unreachable, live fanout degraded", zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client
}

type FanoutParams struct {
	fx.In

	Hub   *Hub
	Redis *redis.Client `optional:"true"`
	Log   *zap.Logger
}

// Fanout publishes to the in-process hub and, when configured, mirrors to
// Redis for other instances.
type Fanout struct {
	hub   *Hub
	redis *RedisPublisher
}

func NewFanout(p FanoutParams) Broadcaster {
	f := &Fanout{hub: p.Hub}
	if p.Redis != nil {
		f.redis = NewRedisPublisher(p.Redis, p.Log)
	}
	return f
}

func (f *Fanout) Publish(topic string, payload any) {
	f.hub.Publish(topic, payload)
	if f.redis != nil {
		f.redis.Publish(topic, payload)
	}
}
