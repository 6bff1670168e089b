// Package transport 在 WebSocket 连接上收发帧。
package transport

import (
	"context"
	"fmt"
)

// FrameKind 帧的 WebSocket 消息类型
type FrameKind int

const (
	Text FrameKind = iota
	Binary
	Ping
	Pong
	Close
)

func (k FrameKind) String() string {
	switch k {
	case Text:
		return "text"
	case Binary:
		return "binary"
	case Ping:
		return "ping"
	case Pong:
		return "pong"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Frame 一条 WebSocket 消息
type Frame struct {
	Kind FrameKind
	Data []byte
}

// Dialer 建立连接
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// Conn 一条已建立的连接。数据流结束时 Frames 会被关闭；
// Send 同一时间只能由一个 goroutine 调用
type Conn interface {
	Send(f Frame) error
	Frames() <-chan Frame
	Close() error
}

// Error 连接本身的错误，会话遇到后重连而不是退出
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
