package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
	"github.com/palemoky/room-viewer/internal/ui/common"
)

// Status 侧边栏显示的会话信息
type Status struct {
	Server   string
	Username string
	Shard    string
	State    room.ConnectionState
	Room     *visual.Room
	CursorX  int
	CursorY  int
	Fatal    error
}

// Sidebar 渲染状态和光标所在格的详细信息，每行不超过 width 列
func Sidebar(s Status, width int) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("Room Viewer"))
	sb.WriteString("\n\n")

	field := func(label, value string) {
		sb.WriteString(common.LabelStyle.Render(label))
		sb.WriteString(value)
		sb.WriteByte('\n')
	}
	field("server: ", s.Server)
	field("user:   ", s.Username)
	if s.Shard != "" {
		field("shard:  ", s.Shard)
	}
	field("state:  ", common.StateStyle(s.State).Render(s.State.String()))

	if s.Room != nil {
		field("room:   ", s.Room.ID.String())
		if s.Room.LastUpdateTime != nil {
			field("tick:   ", fmt.Sprint(*s.Room.LastUpdateTime))
		}
		field("users:  ", usernames(s.Room.Users))
	}
	field("cursor: ", fmt.Sprintf("%d,%d", s.CursorX, s.CursorY))

	if s.Fatal != nil {
		sb.WriteByte('\n')
		sb.WriteString(common.ErrorStyle.Render("❌ " + s.Fatal.Error()))
		sb.WriteByte('\n')
	}

	if info := Info(s.Room, s.CursorX, s.CursorY); info != "" {
		sb.WriteByte('\n')
		sb.WriteString(info)
	}

	return lipgloss.NewStyle().Width(width).Render(common.Truncate(strings.TrimRight(sb.String(), "\n"), width))
}

// Info 描述一个格子中的所有元素，最上层的在前
func Info(r *visual.Room, x, y int) string {
	if r == nil {
		return ""
	}
	cell := r.Cell(x, y)
	if len(cell) == 0 {
		return ""
	}

	var gameTime int64
	if r.LastUpdateTime != nil {
		gameTime = *r.LastUpdateTime
	}

	var sb strings.Builder
	for i := len(cell) - 1; i >= 0; i-- {
		sb.WriteString(visual.Describe(cell[i], gameTime, r.Users))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func usernames(users map[string]*room.User) string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
