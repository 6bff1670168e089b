// Package command 把用户命令从界面传给会话。
package command

import (
	"fmt"
	"sync"

	"github.com/palemoky/room-viewer/internal/room"
)

// Kind 命令类型
type Kind int

const (
	Reconnect Kind = iota
	ChangeRoom
	ChangeShard
	FetchShardNames
)

// Command 发给会话的一条命令。ChangeRoom 使用 Room，ChangeShard 使用 Shard
type Command struct {
	Kind  Kind
	Room  room.ID
	Shard string
}

// NewChangeRoom 创建切换房间命令
func NewChangeRoom(id room.ID) Command { return Command{Kind: ChangeRoom, Room: id} }

// NewChangeShard 创建切换分片命令
func NewChangeShard(shard string) Command { return Command{Kind: ChangeShard, Shard: shard} }

func (c Command) String() string {
	switch c.Kind {
	case Reconnect:
		return "reconnect"
	case ChangeRoom:
		return fmt.Sprintf("change-room %s", c.Room)
	case ChangeShard:
		return fmt.Sprintf("change-shard %s", c.Shard)
	case FetchShardNames:
		return "fetch-shard-names"
	default:
		return fmt.Sprintf("Command(%d)", int(c.Kind))
	}
}

// Sender 交给界面的发送端
type Sender interface {
	Send(Command)
}

// Queue 无界先进先出队列，多个生产者、一个消费者。Send 不会阻塞
type Queue struct {
	mu    sync.Mutex
	items []Command
	ready chan struct{}
}

// NewQueue 创建空队列
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Send 追加一条命令
func (q *Queue) Send(c Command) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()
	q.signal()
}

// Ready 队列可能非空时可读，消费者每次读到后都应调用 Pop
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Pop 取出最早的命令
func (q *Queue) Pop() (Command, bool) {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return Command{}, false
	}
	c := q.items[0]
	q.items[0] = Command{}
	q.items = q.items[1:]
	more := len(q.items) > 0
	q.mu.Unlock()

	if more {
		q.signal()
	}
	return c, true
}

// Len 队列中的命令数
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
