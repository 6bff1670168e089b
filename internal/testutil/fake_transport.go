//go:build !production

package testutil

import (
	"context"
	"sync"

	"github.com/palemoky/room-viewer/internal/network/transport"
)

// FakeConn 内存中的连接，测试通过 Push 模拟服务器消息，通过 Sent 读取客户端发出的帧
type FakeConn struct {
	frames chan transport.Frame
	sent   chan transport.Frame
	closed chan struct{}

	endOnce   sync.Once
	closeOnce sync.Once

	mu      sync.Mutex
	sendErr error
}

// NewFakeConn 创建连接
func NewFakeConn() *FakeConn {
	return &FakeConn{
		frames: make(chan transport.Frame, 64),
		sent:   make(chan transport.Frame, 256),
		closed: make(chan struct{}),
	}
}

func (c *FakeConn) Send(f transport.Frame) error {
	c.mu.Lock()
	err := c.sendErr
	c.mu.Unlock()
	if err != nil {
		return &transport.Error{Op: "send", Err: err}
	}
	c.sent <- f
	return nil
}

func (c *FakeConn) Frames() <-chan transport.Frame { return c.frames }

func (c *FakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// FailSends 让之后的 Send 都返回 err
func (c *FakeConn) FailSends(err error) {
	c.mu.Lock()
	c.sendErr = err
	c.mu.Unlock()
}

// Push 模拟收到一帧
func (c *FakeConn) Push(f transport.Frame) {
	c.frames <- f
}

// PushText 模拟收到一条文本帧
func (c *FakeConn) PushText(text string) {
	c.Push(transport.Frame{Kind: transport.Text, Data: []byte(text)})
}

// EndStream 模拟连接断开
func (c *FakeConn) EndStream() {
	c.endOnce.Do(func() { close(c.frames) })
}

// Sent 客户端发出的帧
func (c *FakeConn) Sent() <-chan transport.Frame { return c.sent }

// Closed 在 Close 被调用后关闭
func (c *FakeConn) Closed() <-chan struct{} { return c.closed }

// FakeDialer 按顺序交出预先放入的连接。没有可用连接时阻塞到 ctx 取消。
type FakeDialer struct {
	conns chan *FakeConn

	mu   sync.Mutex
	errs []error
	urls []string
}

// NewFakeDialer 创建拨号器
func NewFakeDialer() *FakeDialer {
	return &FakeDialer{conns: make(chan *FakeConn, 16)}
}

// Add 放入下一条可用的连接
func (d *FakeDialer) Add(c *FakeConn) {
	d.conns <- c
}

// FailNext 让下一次拨号失败
func (d *FakeDialer) FailNext(err error) {
	d.mu.Lock()
	d.errs = append(d.errs, err)
	d.mu.Unlock()
}

func (d *FakeDialer) Dial(ctx context.Context, url string) (transport.Conn, error) {
	d.mu.Lock()
	d.urls = append(d.urls, url)
	if len(d.errs) > 0 {
		err := d.errs[0]
		d.errs = d.errs[1:]
		d.mu.Unlock()
		return nil, err
	}
	d.mu.Unlock()

	select {
	case c := <-d.conns:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// URLs 所有拨号请求的地址
func (d *FakeDialer) URLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}
