package transport

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/room-viewer/internal/logger"
)

const (
	handshakeTimeout = 10 * time.Second
	frameBuffer      = 256
)

// WebsocketDialer 基于 gorilla/websocket 的拨号器
type WebsocketDialer struct {
	dialer websocket.Dialer
}

// NewWebsocketDialer 创建拨号器，使用默认握手超时
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{
		dialer: websocket.Dialer{
			HandshakeTimeout:  handshakeTimeout,
			EnableCompression: false,
		},
	}
}

// Dial 建立连接并启动读循环
func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	ws, _, err := d.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, &Error{Op: "dial", Err: err}
	}

	c := &wsConn{
		ws:     ws,
		frames: make(chan Frame, frameBuffer),
		done:   make(chan struct{}),
	}
	ws.SetPingHandler(func(data string) error {
		c.push(Frame{Kind: Ping, Data: []byte(data)})
		return nil
	})
	go c.readPump()
	return c, nil
}

type wsConn struct {
	ws     *websocket.Conn
	frames chan Frame
	done   chan struct{}

	closeOnce sync.Once
}

func (c *wsConn) Frames() <-chan Frame { return c.frames }

// push 把帧交给读取方，连接关闭中则丢弃
func (c *wsConn) push(f Frame) bool {
	select {
	case c.frames <- f:
		return true
	case <-c.done:
		return false
	}
}

// readPump 转发收到的帧直到连接出错。
// 服务器主动关闭时先转发一个 Close 帧再结束数据流
func (c *wsConn) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		close(c.frames)
	}()

	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				c.push(Frame{Kind: Close, Data: []byte(closeErr.Text)})
			} else {
				select {
				case <-c.done:
				default:
					slog.Warn("⚠️ WebSocket 读取失败", "error", err)
				}
			}
			return
		}

		f := Frame{Kind: Text, Data: data}
		if kind == websocket.BinaryMessage {
			f.Kind = Binary
		}
		if !c.push(f) {
			return
		}
	}
}

func (c *wsConn) Send(f Frame) error {
	var err error
	switch f.Kind {
	case Text:
		err = c.ws.WriteMessage(websocket.TextMessage, f.Data)
	case Binary:
		err = c.ws.WriteMessage(websocket.BinaryMessage, f.Data)
	case Ping:
		err = c.ws.WriteControl(websocket.PingMessage, f.Data, time.Time{})
	case Pong:
		err = c.ws.WriteControl(websocket.PongMessage, f.Data, time.Time{})
	case Close:
		err = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(f.Data)), time.Time{})
	}
	if err != nil {
		return &Error{Op: "send " + f.Kind.String(), Err: err}
	}
	return nil
}

func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.ws.Close()
	})
	return err
}
