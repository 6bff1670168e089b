// Package model contains the bubbletea model of the room viewer.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
	"github.com/palemoky/room-viewer/internal/sound"
	"github.com/palemoky/room-viewer/internal/ui/common"
	"github.com/palemoky/room-viewer/internal/ui/input"
	"github.com/palemoky/room-viewer/internal/ui/update"
	"github.com/palemoky/room-viewer/internal/ui/view"
)

// FatalQuitDelay 致命错误显示多久后退出
const FatalQuitDelay = 3 * time.Second

const (
	minSidebarWidth = 24
	minConsoleLines = 3
)

// SoundPlayer 播放连接状态提示音
type SoundPlayer interface {
	Play(cue sound.Cue)
}

// Model 界面状态，只在 bubbletea 的 Update 中修改
type Model struct {
	keys    keyMap
	help    help.Model
	input   textinput.Model
	console viewport.Model
	lines   []string
	sound   SoundPlayer

	server   string
	username string
	shard    string
	shards   []string
	state    room.ConnectionState
	room     *visual.Room
	sender   command.Sender
	fatal    error

	cursorX, cursorY int
	width, height    int
}

// New 创建界面，player 可以为 nil
func New(player SoundPlayer) *Model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "room shard0/W1N1"
	ti.CharLimit = 64

	return &Model{
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
		console: viewport.New(0, minConsoleLines),
		sound:   player,
		cursorX: room.Size / 2,
		cursorY: room.Size / 2,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case update.ServerMsg:
		m.server = msg.URL
	case update.ConnStateMsg:
		m.setState(msg.State)
	case update.UserMsg:
		m.username = msg.Username
	case update.RoomMsg:
		m.room = msg.Room
	case update.ConsoleMsg:
		m.appendConsole(msg.Line)
	case update.CommandSenderMsg:
		m.sender = msg.Sender
	case update.ShardMsg:
		m.shard = msg.Shard
	case update.ShardNamesMsg:
		m.shards = msg.Names
		m.appendConsole("可用分片: " + strings.Join(msg.Names, ", "))
	case update.FatalMsg:
		m.fatal = msg.Err
		m.appendConsole(fmt.Sprintf("❌ %v，%s 后退出", msg.Err, FatalQuitDelay))
		return m, tea.Tick(FatalQuitDelay, func(time.Time) tea.Msg { return tea.Quit() })

	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) setState(state room.ConnectionState) {
	if state == m.state {
		return
	}
	m.state = state
	if cue, ok := sound.CueFor(state); ok && m.sound != nil {
		m.sound.Play(cue)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// 命令行输入中
	if m.input.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			m.input.Blur()
			return m, m.execute(line)
		case tea.KeyEsc:
			m.input.Reset()
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Command):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Reconnect):
		m.send(command.Command{Kind: command.Reconnect})
	case key.Matches(msg, m.keys.Shards):
		m.send(command.Command{Kind: command.FetchShardNames})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.console, cmd = m.console.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if x, y, ok := view.CellAt(msg.X, msg.Y); ok {
			m.cursorX, m.cursorY = x, y
		}
	case tea.MouseButtonWheelUp:
		m.console.ScrollUp(1)
	case tea.MouseButtonWheelDown:
		m.console.ScrollDown(1)
	}
}

func (m *Model) moveCursor(dx, dy int) {
	m.cursorX = common.Clamp(m.cursorX+dx, 0, room.Size-1)
	m.cursorY = common.Clamp(m.cursorY+dy, 0, room.Size-1)
}

// execute 执行一行命令
func (m *Model) execute(line string) tea.Cmd {
	action, err := input.Parse(line)
	if err != nil {
		m.appendConsole("⚠️ " + err.Error())
		return nil
	}
	switch action.Kind {
	case input.ActionQuit:
		return tea.Quit
	case input.ActionHelp:
		m.appendConsole(input.Usage)
	case input.ActionCommand:
		m.send(action.Command)
	}
	return nil
}

// send 把命令交给会话；没有指定分片的房间使用当前分片
func (m *Model) send(c command.Command) {
	if m.sender == nil {
		m.appendConsole("⚠️ 会话尚未就绪，无法执行 " + c.String())
		return
	}
	if c.Kind == command.ChangeRoom && !c.Room.HasShard() {
		c.Room.Shard = m.shard
	}
	m.sender.Send(c)
	m.appendConsole("→ " + c.String())
}

// resize 按窗口大小分配控制台高度
func (m *Model) resize() {
	footer := lipgloss.Height(m.footerView())
	height := m.height - view.GridHeight - footer - 2
	m.console.Width = max(m.width-2, 0)
	m.console.Height = max(height, minConsoleLines)
	m.input.Width = max(m.width-4, 10)
}

// View renders the model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	grid := view.Grid(m.room, m.cursorX, m.cursorY)
	sidebar := view.Sidebar(view.Status{
		Server:   m.server,
		Username: m.username,
		Shard:    m.shard,
		State:    m.state,
		Room:     m.room,
		CursorX:  m.cursorX,
		CursorY:  m.cursorY,
		Fatal:    m.fatal,
	}, max(m.width-view.GridWidth-1, minSidebarWidth))

	top := lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", sidebar)
	console := common.BoxStyle.Render(common.ConsoleStyle.Render(m.console.View()))
	return lipgloss.JoinVertical(lipgloss.Left, top, console, m.footerView())
}

func (m *Model) footerView() string {
	if m.input.Focused() {
		return m.input.View()
	}
	return common.HintStyle.Render(m.help.View(m.keys))
}

// --- accessors for tests and the dry-run dispatcher ---

// State 当前连接状态
func (m *Model) State() room.ConnectionState { return m.state }

// Room 当前显示的房间
func (m *Model) Room() *visual.Room { return m.room }

// Cursor 光标位置
func (m *Model) Cursor() (x, y int) { return m.cursorX, m.cursorY }

// Fatal 结束会话的错误
func (m *Model) Fatal() error { return m.fatal }
