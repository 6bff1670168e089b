// Package ui 把会话的更新送到界面。
package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/ui/update"
)

// Sender 接收 tea 消息，*tea.Program 满足该接口
type Sender interface {
	Send(msg tea.Msg)
}

// Dispatcher 把更新转发给 bubbletea 程序
type Dispatcher struct {
	program Sender
}

// NewDispatcher 创建转发到 program 的 Dispatcher
func NewDispatcher(program Sender) *Dispatcher {
	return &Dispatcher{program: program}
}

// Dispatch 实现 session.UI
func (d *Dispatcher) Dispatch(msg update.Msg) {
	d.program.Send(msg)
}

// LogDispatcher dry-run 模式下使用，只把更新写进日志
type LogDispatcher struct {
	logger *slog.Logger
	fatal  error
}

// NewLogDispatcher logger 为 nil 时使用 slog.Default()
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

// Dispatch 实现 session.UI
func (d *LogDispatcher) Dispatch(msg update.Msg) {
	switch msg := msg.(type) {
	case update.ServerMsg:
		d.logger.Info("🌐 服务器", "url", msg.URL)
	case update.ConnStateMsg:
		d.logger.Info("🔄 连接状态", "state", msg.State)
	case update.UserMsg:
		d.logger.Info("👤 用户", "username", msg.Username)
	case update.ShardMsg:
		d.logger.Info("🗺️ 分片", "shard", msg.Shard)
	case update.ShardNamesMsg:
		d.logger.Info("🗺️ 可用分片", "names", msg.Names)
	case update.RoomMsg:
		d.logRoom(msg)
	case update.CommandSenderMsg:
		d.logger.Debug("命令通道就绪")
	case update.ConsoleMsg:
		// 控制台内容本身来自日志
	case update.FatalMsg:
		d.fatal = msg.Err
		d.logger.Error("❌ 会话终止", "error", msg.Err)
	}
}

func (d *LogDispatcher) logRoom(msg update.RoomMsg) {
	r := msg.Room
	if r == nil {
		return
	}
	var tick int64
	if r.LastUpdateTime != nil {
		tick = *r.LastUpdateTime
	}
	entries := 0
	for x := range room.Size {
		for y := range room.Size {
			entries += len(r.Cell(x, y))
		}
	}
	d.logger.Info("🏠 房间更新", "room", r.ID, "tick", tick, "entries", entries, "users", len(r.Users))
}

// Fatal 返回收到的致命错误
func (d *LogDispatcher) Fatal() error {
	return d.fatal
}
