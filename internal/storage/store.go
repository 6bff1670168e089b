// Package storage 缓存房间地形，同一房间的地形不会变化。
package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/palemoky/room-viewer/internal/room"
)

// TerrainStore 按服务器和房间保存地形
type TerrainStore interface {
	// LoadTerrain 未缓存时返回 nil, nil
	LoadTerrain(ctx context.Context, server string, id room.ID) (*room.Terrain, error)
	SaveTerrain(ctx context.Context, server string, t *room.Terrain) error
}

// MemoryStore 进程内的 TerrainStore
type MemoryStore struct {
	mu      sync.RWMutex
	terrain map[string]string
}

// NewMemoryStore 创建空缓存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{terrain: make(map[string]string)}
}

func (m *MemoryStore) LoadTerrain(_ context.Context, server string, id room.ID) (*room.Terrain, error) {
	m.mu.RLock()
	encoded, ok := m.terrain[terrainKey(server, id)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return room.ParseTerrain(id, encoded)
}

func (m *MemoryStore) SaveTerrain(_ context.Context, server string, t *room.Terrain) error {
	m.mu.Lock()
	m.terrain[terrainKey(server, t.ID)] = t.Encode()
	m.mu.Unlock()
	return nil
}

// TerrainFetcher 从服务器获取地形
type TerrainFetcher interface {
	RoomTerrain(ctx context.Context, id room.ID) (*room.Terrain, error)
}

// CachedTerrain 优先读缓存，未命中时请求服务器。
// 缓存读写失败只记录日志，不影响查询结果。
type CachedTerrain struct {
	fetcher TerrainFetcher
	store   TerrainStore
	server  string
}

// NewCachedTerrain 创建带缓存的地形源
func NewCachedTerrain(fetcher TerrainFetcher, store TerrainStore, server string) *CachedTerrain {
	return &CachedTerrain{fetcher: fetcher, store: store, server: server}
}

func (c *CachedTerrain) RoomTerrain(ctx context.Context, id room.ID) (*room.Terrain, error) {
	t, err := c.store.LoadTerrain(ctx, c.server, id)
	if err != nil {
		slog.Warn("⚠️ 读取地形缓存失败", "room", id, "error", err)
	} else if t != nil {
		slog.Debug("地形缓存命中", "room", id)
		return t, nil
	}

	t, err = c.fetcher.RoomTerrain(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveTerrain(ctx, c.server, t); err != nil {
		slog.Warn("⚠️ 写入地形缓存失败", "room", id, "error", err)
	}
	return t, nil
}

func terrainKey(server string, id room.ID) string {
	return terrainKeyPrefix + server + "|" + id.Shard + "/" + id.Name.String()
}
