package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const cacheKeyPrefix = "reservations:"

// RedisBackend кэш в Redis, общий для нескольких экземпляров сервиса
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend создает кэш в Redis
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func listKey(domainName string) string {
	return fmt.Sprintf("%s%s", cacheKeyPrefix, domainName)
}

func (b *RedisBackend) Get(ctx context.Context, domainName string) ([]*domain.Reservation, bool, error) {
	data, err := b.client.Get(ctx, listKey(domainName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var list []*domain.Reservation
	if err := json.Unmarshal(data, &list); err != nil {
		// Повреждённая запись считается промахом
		return nil, false, nil
	}
	return list, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, domainName string, list []*domain.Reservation, ttl time.Duration) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, listKey(domainName), data, ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, domainName string) error {
	return b.client.Del(ctx, listKey(domainName)).Err()
}
