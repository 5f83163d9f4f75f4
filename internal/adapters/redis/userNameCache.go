package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// UserNameCacheRedis implements userPort.NameCache on plain string keys.
type UserNameCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewUserNameCacheRedis(client *redis.Client, ttl time.Duration) *UserNameCacheRedis {
	return &UserNameCacheRedis{
		Client: client,
		TTL:    ttl,
	}
}

func userNameKey(userID string) string {
	return "user:name:" + userID
}

func (c *UserNameCacheRedis) GetName(ctx context.Context, userID string) (string, bool, error) {
	name, err := c.Client.Get(ctx, userNameKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (c *UserNameCacheRedis) SetName(ctx context.Context, userID, name string) error {
	return c.Client.Set(ctx, userNameKey(userID), name, c.TTL).Err()
}

func (c *UserNameCacheRedis) SetNameIfAbsent(ctx context.Context, userID, name string) error {
	return c.Client.SetNX(ctx, userNameKey(userID), name, c.TTL).Err()
}

func (c *UserNameCacheRedis) Forget(ctx context.Context, userID string) error {
	return c.Client.Del(ctx, userNameKey(userID)).Err()
}
