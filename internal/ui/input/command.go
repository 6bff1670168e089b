// Package input parses the command line typed after ":".
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/room"
)

// ActionKind 命令行解析结果
type ActionKind int

const (
	ActionCommand ActionKind = iota // 发送给会话
	ActionQuit                      // 退出程序
	ActionHelp                      // 显示命令帮助
)

// Action is one parsed command line.
type Action struct {
	Kind    ActionKind
	Command command.Command
}

// Usage 命令帮助
const Usage = ":room [shard/]W1N1 切换房间 | :shard NAME 切换分片 | :shards 列出分片 | :reconnect | :quit"

var errEmpty = errors.New("空命令")

// Parse 解析一行命令，开头的 ":" 可选
func Parse(line string) (Action, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return Action{}, errEmpty
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "room", "r":
		if len(args) != 1 {
			return Action{}, errors.New("用法: :room [shard/]W1N1")
		}
		id, err := room.ParseID(args[0])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionCommand, Command: command.NewChangeRoom(id)}, nil
	case "shard":
		if len(args) != 1 {
			return Action{}, errors.New("用法: :shard NAME")
		}
		return Action{Kind: ActionCommand, Command: command.NewChangeShard(args[0])}, nil
	case "shards":
		return Action{Kind: ActionCommand, Command: command.Command{Kind: command.FetchShardNames}}, nil
	case "reconnect":
		return Action{Kind: ActionCommand, Command: command.Command{Kind: command.Reconnect}}, nil
	case "q", "quit":
		return Action{Kind: ActionQuit}, nil
	case "help", "h", "?":
		return Action{Kind: ActionHelp}, nil
	default:
		return Action{}, fmt.Errorf("未知命令 %q", name)
	}
}
