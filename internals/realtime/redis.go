// file: internals/realtime/redis.go
package realtime

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sekolahku_backend/internals/constants"
)

// RedisPublisher mem-publish payload lewat Redis pub/sub.
// Timeout pendek: publish yang lambat tidak boleh menahan response HTTP.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &RedisPublisher{client: client}
}

// NewRedisPublisherWithClient dipakai saat client di-manage caller (tes, pool bersama).
func NewRedisPublisherWithClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, userID uuid.UUID, payload NotificationPayload) error {
	body, err := sonic.Marshal(Envelope{
		Event: constants.RealtimeEventName,
		Data:  payload,
	})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, ChannelName(userID), body).Err()
}

// Healthy memverifikasi konektivitas redis.
func (p *RedisPublisher) Healthy(ctx context.Context) bool {
	if p == nil || p.client == nil {
		return false
	}
	return p.client.Ping(ctx).Err() == nil
}
