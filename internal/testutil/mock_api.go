//go:build !production

// Package testutil 提供会话测试用的 mock 与假连接。
package testutil

import (
	"context"
	"net/url"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/room-viewer/internal/network/api"
	"github.com/palemoky/room-viewer/internal/room"
)

// MockAPI 实现 session.API 和 session.TerrainSource 的 mock。
// URL、Token 和 SetToken 是真实实现，不需要设置期望。
type MockAPI struct {
	mock.Mock

	base  *url.URL
	mu    sync.Mutex
	token string
}

// NewMockAPI 创建指向 rawURL 的 mock
func NewMockAPI(rawURL, token string) *MockAPI {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return &MockAPI{base: u, token: token}
}

func (m *MockAPI) MyInfo(ctx context.Context) (api.MyInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(api.MyInfo), args.Error(1)
}

func (m *MockAPI) ShardStartRoom(ctx context.Context, shard string) (room.ID, error) {
	args := m.Called(ctx, shard)
	return args.Get(0).(room.ID), args.Error(1)
}

func (m *MockAPI) WorldStartRoom(ctx context.Context) (room.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(room.ID), args.Error(1)
}

func (m *MockAPI) ShardNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockAPI) RoomTerrain(ctx context.Context, id room.ID) (*room.Terrain, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, room.ID) *room.Terrain); ok {
		return fn(ctx, id), args.Error(1)
	}
	t, _ := args.Get(0).(*room.Terrain)
	return t, args.Error(1)
}

func (m *MockAPI) URL() *url.URL {
	u := *m.base
	return &u
}

func (m *MockAPI) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MockAPI) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}
