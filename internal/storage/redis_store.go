package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/room-viewer/internal/room"
)

const (
	terrainKeyPrefix = "terrain:"

	// DefaultTerrainExpiration 地形缓存默认过期时间
	DefaultTerrainExpiration = 7 * 24 * time.Hour
)

// RedisStore 把地形存到 Redis，多个客户端可以共用
type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
}

// NewRedisStore 创建 Redis 缓存，expiration 为 0 时使用默认值
func NewRedisStore(client *redis.Client, expiration time.Duration) *RedisStore {
	if expiration <= 0 {
		expiration = DefaultTerrainExpiration
	}
	return &RedisStore{client: client, expiration: expiration}
}

// Ping 检查连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

func (rs *RedisStore) LoadTerrain(ctx context.Context, server string, id room.ID) (*room.Terrain, error) {
	encoded, err := rs.client.Get(ctx, terrainKey(server, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	t, err := room.ParseTerrain(id, encoded)
	if err != nil {
		// 损坏的缓存直接删除，下次从服务器重新获取
		if delErr := rs.DeleteTerrain(ctx, server, id); delErr != nil {
			return nil, fmt.Errorf("decoding cached terrain: %w (delete: %v)", err, delErr)
		}
		return nil, fmt.Errorf("decoding cached terrain: %w", err)
	}
	return t, nil
}

func (rs *RedisStore) SaveTerrain(ctx context.Context, server string, t *room.Terrain) error {
	if t == nil {
		return nil
	}
	return rs.client.Set(ctx, terrainKey(server, t.ID), t.Encode(), rs.expiration).Err()
}

// DeleteTerrain 删除一个房间的缓存，LoadTerrain 遇到无法解码的数据时调用
func (rs *RedisStore) DeleteTerrain(ctx context.Context, server string, id room.ID) error {
	return rs.client.Del(ctx, terrainKey(server, id)).Err()
}
