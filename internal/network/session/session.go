// Package session 维护与服务器的长连接：认证、订阅房间、合并更新并推送到 UI。
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/palemoky/room-viewer/internal/apperrors"
	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/network/api"
	"github.com/palemoky/room-viewer/internal/network/protocol"
	"github.com/palemoky/room-viewer/internal/network/transport"
	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
	"github.com/palemoky/room-viewer/internal/ui/update"
)

const (
	dialInitialInterval = 500 * time.Millisecond
	dialMaxInterval     = 30 * time.Second
)

// API 会话用到的 HTTP 接口
type API interface {
	MyInfo(ctx context.Context) (api.MyInfo, error)
	ShardStartRoom(ctx context.Context, shard string) (room.ID, error)
	WorldStartRoom(ctx context.Context) (room.ID, error)
	ShardNames(ctx context.Context) ([]string, error)
	URL() *url.URL
	Token() string
	SetToken(token string)
}

// TerrainSource 获取房间地形
type TerrainSource interface {
	RoomTerrain(ctx context.Context, id room.ID) (*room.Terrain, error)
}

// UI 接收会话推送的更新，Dispatch 不能阻塞太久
type UI interface {
	Dispatch(msg update.Msg)
}

// Config 会话配置
type Config struct {
	// Shard 为空表示服务器没有分片
	Shard string
	// Room 为 nil 时向服务器查询起始房间
	Room *room.Name
	// RankOrder 同一格子内对象的叠放顺序，nil 使用默认顺序
	RankOrder []room.ObjectType
	// NewBackOff 拨号失败时的重试策略，nil 使用无上限的指数退避
	NewBackOff func() backoff.BackOff
}

// Deps 会话依赖的外部组件
type Deps struct {
	API      API
	Terrain  TerrainSource
	Dialer   transport.Dialer
	UI       UI
	Commands *command.Queue
}

// Session 单个房间的观察会话，所有状态只在 Run 所在的 goroutine 中修改
type Session struct {
	cfg      Config
	api      API
	terrain  TerrainSource
	dialer   transport.Dialer
	ui       UI
	commands *command.Queue
	builder  *visual.Builder

	roomID  room.ID
	replica *room.Replica
	shard   string
	state   room.ConnectionState
}

// New 创建会话
func New(cfg Config, deps Deps) *Session {
	if cfg.NewBackOff == nil {
		cfg.NewBackOff = defaultBackOff
	}
	commands := deps.Commands
	if commands == nil {
		commands = command.NewQueue()
	}
	return &Session{
		cfg:      cfg,
		api:      deps.API,
		terrain:  deps.Terrain,
		dialer:   deps.Dialer,
		ui:       deps.UI,
		commands: commands,
		builder:  visual.NewBuilder(cfg.RankOrder),
		shard:    cfg.Shard,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = dialInitialInterval
	b.MaxInterval = dialMaxInterval
	b.MaxElapsedTime = 0
	return b
}

// Commands 返回命令队列，UI 通过它发送命令
func (s *Session) Commands() *command.Queue {
	return s.commands
}

// Run 运行会话直到 ctx 取消（返回 nil）或遇到致命错误。
// 致命错误会先以 Error 状态和 FatalMsg 通知 UI。
func (s *Session) Run(ctx context.Context) error {
	err := s.run(ctx)
	if err == nil || ctx.Err() != nil {
		return nil
	}

	slog.Error("❌ 会话异常终止", "error", err)
	s.setState(room.Error)
	s.ui.Dispatch(update.FatalMsg{Err: err})
	return err
}

func (s *Session) run(ctx context.Context) error {
	if err := s.start(ctx); err != nil {
		return err
	}

	for {
		conn, err := s.dial(ctx)
		if err != nil {
			return err
		}

		err = s.serve(ctx, conn)
		_ = conn.Close()
		if err != nil {
			var terr *transport.Error
			if !errors.As(err, &terr) {
				return err
			}
			slog.Warn("📴 连接中断", "error", err)
		}

		s.setState(room.Disconnected)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Info("🔄 正在重连", "room", s.roomID)
	}
}

// start 完成连接前的一次性准备：用户信息、初始房间和地形。
func (s *Session) start(ctx context.Context) error {
	if _, err := protocol.SocketURL(s.api.URL()); err != nil {
		return apperrors.New(apperrors.KindConfig, "无效的服务器地址", err)
	}
	s.ui.Dispatch(update.ServerMsg{URL: s.api.URL().String()})

	user, err := s.api.MyInfo(ctx)
	if err != nil {
		return apperrors.New(apperrors.KindAPI, "获取用户信息失败", err)
	}
	slog.Info("✅ 认证成功", "user", user.Username)
	s.ui.Dispatch(update.UserMsg{Username: user.Username})

	id, err := s.initialRoom(ctx)
	if err != nil {
		return err
	}
	slog.Debug("初始房间", "room", id)

	terrain, err := s.terrain.RoomTerrain(ctx, id)
	if err != nil {
		return apperrors.New(apperrors.KindAPI, fmt.Sprintf("获取房间 %s 地形失败", id), err)
	}
	s.roomID = id
	s.replica = room.NewReplica(terrain)

	if id.HasShard() {
		s.shard = id.Shard
		s.ui.Dispatch(update.ShardMsg{Shard: id.Shard})
	}
	s.ui.Dispatch(update.CommandSenderMsg{Sender: s.commands})
	s.pushRoom()
	return nil
}

// initialRoom 按配置选择起始房间：显式房间优先，其次分片起始房间，最后全局起始房间。
func (s *Session) initialRoom(ctx context.Context) (room.ID, error) {
	switch {
	case s.cfg.Room != nil:
		return room.NewID(s.cfg.Shard, *s.cfg.Room), nil
	case s.cfg.Shard != "":
		id, err := s.api.ShardStartRoom(ctx, s.cfg.Shard)
		if err != nil {
			return room.ID{}, apperrors.New(apperrors.KindAPI, fmt.Sprintf("获取分片 %s 起始房间失败", s.cfg.Shard), err)
		}
		return id, nil
	default:
		id, err := s.api.WorldStartRoom(ctx)
		if err != nil {
			return room.ID{}, apperrors.New(apperrors.KindAPI, "获取起始房间失败", err)
		}
		return id, nil
	}
}

// dial 建立连接，失败时按退避策略重试直到成功或 ctx 取消。
// 拨号失败有意不作为致命错误：服务器暂时不可达时会话继续等待，
// 只有无法生成 socket 地址才会立即返回。已建立的连接断开后不经过退避，直接重连。
func (s *Session) dial(ctx context.Context) (transport.Conn, error) {
	var conn transport.Conn
	op := func() error {
		u, err := protocol.SocketURL(s.api.URL())
		if err != nil {
			return backoff.Permanent(err)
		}
		c, err := s.dialer.Dial(ctx, u)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}
	notify := func(err error, next time.Duration) {
		slog.Warn("⚠️ 连接服务器失败，稍后重试", "error", err, "retry_in", next)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(s.cfg.NewBackOff(), ctx), notify)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperrors.New(apperrors.KindConfig, "无法连接服务器", err)
	}
	return conn, nil
}
