package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kochi-guide/bot/internal/agent/model"
	errx "github.com/kochi-guide/bot/internal/core/error"
	logx "github.com/kochi-guide/bot/pkg/logger"
)

// RedisLocationRepository keeps the last shared coordinates per user.
// SET overwrites unconditionally, so last write wins.
type RedisLocationRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisLocationRepository(rdb redis.Cmdable, ttl time.Duration) *RedisLocationRepository {
	return &RedisLocationRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisLocationRepository) locationKey(userID string) string {
	return fmt.Sprintf("user:%s:location", userID)
}

func (r *RedisLocationRepository) Save(ctx context.Context, userID string, coords model.Coordinates) error {
	b, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("marshal coordinates: %w", err)
	}
	key := r.locationKey(userID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store location in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisLocationRepository) Load(ctx context.Context, userID string) (*model.Coordinates, error) {
	key := r.locationKey(userID)
	s, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load location from redis")
		return nil, errx.WrapRedis(err)
	}

	var coords model.Coordinates
	if err := json.Unmarshal([]byte(s), &coords); err != nil {
		return nil, fmt.Errorf("unmarshal coordinates: %w", err)
	}
	return &coords, nil
}

func (r *RedisLocationRepository) Clear(ctx context.Context, userID string) error {
	key := r.locationKey(userID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete location from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.LocationRepository = (*RedisLocationRepository)(nil)
