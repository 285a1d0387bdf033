package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "nepfund.live."

// RedisPublisher mirrors hub events onto a Redis channel so that viewers
// connected to other instances see the same deltas. Delivery is best-effort;
// a down Redis only costs cross-instance fanout.
type RedisPublisher struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisPublisher(client *redis.Client, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		log:    log.Named("broadcast.redis"),
	}
}

func (p *RedisPublisher) Publish(topic string, payload any) {
	if p == nil || p.client == nil {
		return
	}

	data, err := json.Marshal(Event{Topic: topic, At: time.Now().UTC(), Payload: payload})
	if err != nil {
		p.log.Warn("marshal live event failed", zap.String("topic", topic), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.client.Publish(ctx, channelPrefix+topic, data).Err(); err != nil {
		p.log.Warn("redis publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
