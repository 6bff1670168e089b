package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/palemoky/room-viewer/internal/apperrors"
	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/network/protocol"
	"github.com/palemoky/room-viewer/internal/network/transport"
	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/ui/update"
)

// serve 在一条连接上认证、订阅并分发消息。返回 nil 表示需要重连。
func (s *Session) serve(ctx context.Context, conn transport.Conn) error {
	s.setState(room.Authenticating)

	if err := s.send(conn, protocol.Authenticate(s.api.Token())); err != nil {
		return err
	}
	if err := s.send(conn, protocol.Subscribe(protocol.RoomChannel(s.roomID))); err != nil {
		return err
	}

	frames := conn.Frames()
	for {
		var (
			reconnect bool
			err       error
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-frames:
			if !ok {
				// 数据流结束等同于收到一条 Reconnect 命令
				slog.Debug("连接数据流结束")
				reconnect, err = s.handleCommand(ctx, conn, command.Command{Kind: command.Reconnect})
			} else {
				err = s.handleFrame(conn, f)
			}
		case <-s.commands.Ready():
			c, ok := s.commands.Pop()
			if !ok {
				continue
			}
			reconnect, err = s.handleCommand(ctx, conn, c)
		}
		if err != nil || reconnect {
			return err
		}
	}
}

func (s *Session) send(conn transport.Conn, data []byte) error {
	return s.sendFrame(conn, transport.Frame{Kind: transport.Text, Data: data})
}

func (s *Session) sendFrame(conn transport.Conn, f transport.Frame) error {
	if err := conn.Send(f); err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) {
			return err
		}
		return &transport.Error{Op: "send", Err: err}
	}
	return nil
}

func (s *Session) handleFrame(conn transport.Conn, f transport.Frame) error {
	switch f.Kind {
	case transport.Text:
		return s.handleText(f.Data)
	case transport.Ping:
		return s.sendFrame(conn, transport.Frame{Kind: transport.Pong, Data: f.Data})
	case transport.Binary:
		slog.Warn("忽略二进制消息", "bytes", len(f.Data))
	case transport.Close:
		slog.Info("服务器关闭连接", "reason", string(f.Data))
	case transport.Pong:
	}
	return nil
}

func (s *Session) handleText(data []byte) error {
	frame, err := protocol.ParseFrame(data)
	if err != nil {
		return apperrors.New(apperrors.KindProtocol, fmt.Sprintf("解析 SockJS 消息 %q 失败", data), err)
	}

	switch frame.Type {
	case protocol.FrameOpen:
		slog.Debug("SockJS 连接已打开")
	case protocol.FrameHeartbeat:
		slog.Debug("SockJS 心跳")
	case protocol.FrameClose:
		slog.Debug("SockJS 连接已关闭", "code", frame.CloseCode, "reason", frame.CloseReason)
	case protocol.FrameMessages:
		for _, text := range frame.Messages {
			msg, err := protocol.ParseMessage(text)
			if err != nil {
				return apperrors.New(apperrors.KindProtocol, "解析服务器消息失败", err)
			}
			if err := s.handleMessage(msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) handleMessage(msg protocol.Message) error {
	switch msg.Type {
	case protocol.MsgAuthFailed:
		return apperrors.ErrAuthFailed
	case protocol.MsgAuthOk:
		if msg.Token != "" {
			s.api.SetToken(msg.Token)
		}
		s.setState(room.Connected)
	case protocol.MsgRoomDetail:
		if msg.Room != s.roomID {
			slog.Warn("⚠️ 收到非当前房间的更新", "expected", s.roomID, "found", msg.Room)
			return nil
		}
		if err := s.replica.Apply(msg.Update); err != nil {
			return apperrors.New(apperrors.KindMerge, fmt.Sprintf("处理房间 %s 更新失败", msg.Room), err)
		}
		s.pushRoom()
	case protocol.MsgChannelUpdate:
		slog.Debug("忽略频道消息", "channel", msg.Channel)
	case protocol.MsgServerTime, protocol.MsgServerProtocol, protocol.MsgServerPackage:
		slog.Debug("服务器信息", "type", msg.Type, "value", msg.Value)
	default:
		slog.Warn("未知消息类型", "message", msg.Raw)
	}
	return nil
}

// handleCommand 处理一条命令，返回 true 表示需要重连。
func (s *Session) handleCommand(ctx context.Context, conn transport.Conn, c command.Command) (bool, error) {
	slog.Debug("收到命令", "command", c)

	switch c.Kind {
	case command.Reconnect:
		return true, nil
	case command.ChangeRoom:
		return false, s.changeRoom(ctx, conn, c.Room)
	case command.ChangeShard:
		s.changeShard(ctx, c.Shard)
	case command.FetchShardNames:
		if names, ok := s.shardNames(ctx); ok {
			s.ui.Dispatch(update.ShardNamesMsg{Names: names})
		}
	default:
		slog.Warn("未知命令", "command", c)
	}
	return false, nil
}

// changeRoom 切换到新房间，不重连。未指定分片时使用当前分片，地形获取失败是致命错误。
func (s *Session) changeRoom(ctx context.Context, conn transport.Conn, id room.ID) error {
	if !id.HasShard() {
		id.Shard = s.shard
	}
	terrain, err := s.terrain.RoomTerrain(ctx, id)
	if err != nil {
		return apperrors.New(apperrors.KindAPI, fmt.Sprintf("获取房间 %s 地形失败", id), err)
	}

	old := s.roomID
	slog.Info("🏠 切换房间", "from", old, "to", id)

	s.roomID = id
	s.replica = room.NewReplica(terrain)
	s.pushRoom()

	if err := s.send(conn, protocol.Unsubscribe(protocol.RoomChannel(old))); err != nil {
		return err
	}
	return s.send(conn, protocol.Subscribe(protocol.RoomChannel(id)))
}

// changeShard 更新默认分片，当前房间的订阅不受影响。
func (s *Session) changeShard(ctx context.Context, shard string) {
	names, ok := s.shardNames(ctx)
	if !ok {
		return
	}
	if !slices.Contains(names, shard) {
		slog.Warn("⚠️ 分片不存在", "shard", shard, "available", names)
		return
	}
	s.shard = shard
	slog.Info("切换分片", "shard", shard)
	s.ui.Dispatch(update.ShardMsg{Shard: shard})
}

func (s *Session) shardNames(ctx context.Context) ([]string, bool) {
	names, err := s.api.ShardNames(ctx)
	if err != nil {
		slog.Warn("⚠️ 获取分片列表失败", "error", err)
		return nil, false
	}
	return names, true
}

func (s *Session) setState(state room.ConnectionState) {
	slog.Debug("连接状态变化", "from", s.state, "to", state)
	s.state = state
	s.ui.Dispatch(update.ConnStateMsg{State: state})
}

func (s *Session) pushRoom() {
	s.ui.Dispatch(update.RoomMsg{Room: s.builder.Build(s.replica)})
}
