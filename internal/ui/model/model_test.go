package model

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
	"github.com/palemoky/room-viewer/internal/sound"
	"github.com/palemoky/room-viewer/internal/ui/update"
)

type recordingSender struct {
	sent []command.Command
}

func (s *recordingSender) Send(c command.Command) { s.sent = append(s.sent, c) }

type recordingPlayer struct {
	cues []sound.Cue
}

func (p *recordingPlayer) Play(c sound.Cue) { p.cues = append(p.cues, c) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, *recordingSender) {
	t.Helper()
	m := New(nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 80})
	sender := &recordingSender{}
	m.Update(update.CommandSenderMsg{Sender: sender})
	return m, sender
}

func typeLine(m *Model, line string) tea.Cmd {
	m.Update(runes(":"))
	for _, r := range line {
		m.Update(runes(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func testRoom() *visual.Room {
	id := room.NewID("shard0", room.MustParseName("W1N1"))
	r := room.NewReplica(room.NewTerrain(id))
	r.Objects["c1"] = &room.Object{ID: "c1", Type: room.TypeCreep, X: 10, Y: 10, Name: "bob"}
	return visual.NewBuilder(nil).Build(r)
}

func TestModel_AppliesUpdates(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	m.Update(update.ServerMsg{URL: "https://screeps.com/api/"})
	m.Update(update.UserMsg{Username: "alice"})
	m.Update(update.ShardMsg{Shard: "shard0"})
	m.Update(update.ConnStateMsg{State: room.Connected})
	m.Update(update.RoomMsg{Room: testRoom()})
	m.Update(update.ConsoleMsg{Line: "[12:00:00][INFO] hello"})

	assert.Equal(t, room.Connected, m.State())
	require.NotNil(t, m.Room())

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "https://screeps.com/api/")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "shard0:W1N1")
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "⚬")
}

func TestModel_ViewBeforeResize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Loading...", New(nil).View())
}

func TestModel_SoundCues(t *testing.T) {
	t.Parallel()
	player := &recordingPlayer{}
	m := New(player)

	for _, s := range []room.ConnectionState{
		room.Authenticating, room.Connected, room.Connected, room.Disconnected, room.Authenticating, room.Error,
	} {
		m.Update(update.ConnStateMsg{State: s})
	}
	assert.Equal(t, []sound.Cue{sound.CueConnected, sound.CueDisconnected, sound.CueError}, player.cues)
}

func TestModel_CursorKeys(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	x, y := m.Cursor()
	assert.Equal(t, 25, x)
	assert.Equal(t, 25, y)

	m.Update(runes("l"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	x, y = m.Cursor()
	assert.Equal(t, 26, x)
	assert.Equal(t, 26, y)

	for range 60 {
		m.Update(runes("h"))
		m.Update(runes("k"))
	}
	x, y = m.Cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestModel_MouseSelectsCell(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	m.Update(tea.MouseMsg{X: 11, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	x, y := m.Cursor()
	assert.Equal(t, 10, x)
	assert.Equal(t, 10, y)

	// Clicks outside the grid are ignored.
	m.Update(tea.MouseMsg{X: 90, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	x, y = m.Cursor()
	assert.Equal(t, 10, x)
	assert.Equal(t, 10, y)
}

func TestModel_CommandLine(t *testing.T) {
	t.Parallel()
	m, sender := newTestModel(t)
	m.Update(update.ShardMsg{Shard: "shard2"})

	assert.Nil(t, typeLine(m, "room W5N5"))
	assert.Nil(t, typeLine(m, "room shard3/E1S1"))
	assert.Nil(t, typeLine(m, "shard shard1"))
	assert.Nil(t, typeLine(m, "shards"))

	assert.Equal(t, []command.Command{
		command.NewChangeRoom(room.NewID("shard2", room.MustParseName("W5N5"))),
		command.NewChangeRoom(room.NewID("shard3", room.MustParseName("E1S1"))),
		command.NewChangeShard("shard1"),
		{Kind: command.FetchShardNames},
	}, sender.sent)
}

func TestModel_CommandLineErrors(t *testing.T) {
	t.Parallel()
	m, sender := newTestModel(t)

	typeLine(m, "room nowhere")
	assert.Empty(t, sender.sent)
	lines := m.ConsoleLines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "⚠️")

	// Esc abandons the line.
	m.Update(runes(":"))
	m.Update(runes("q"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Empty(t, sender.sent)
}

func TestModel_QuitCommand(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	cmd := typeLine(m, "quit")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ShortcutKeys(t *testing.T) {
	t.Parallel()
	m, sender := newTestModel(t)

	m.Update(runes("r"))
	m.Update(runes("s"))
	assert.Equal(t, []command.Command{
		{Kind: command.Reconnect},
		{Kind: command.FetchShardNames},
	}, sender.sent)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CommandsBeforeSession(t *testing.T) {
	t.Parallel()
	m := New(nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 80})

	m.Update(runes("r"))
	lines := m.ConsoleLines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "reconnect")
}

func TestModel_ConsoleCap(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	for i := range MaxConsoleLines + 100 {
		m.Update(update.ConsoleMsg{Line: fmt.Sprintf("line %d", i)})
	}
	lines := m.ConsoleLines()
	require.Len(t, lines, MaxConsoleLines)
	assert.Equal(t, "line 100", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", MaxConsoleLines+99), lines[len(lines)-1])
}

func TestModel_ShardNames(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	m.Update(update.ShardNamesMsg{Names: []string{"shard0", "shard1"}})
	lines := m.ConsoleLines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "shard0, shard1")
}

func TestModel_Fatal(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	err := errors.New("authentication failed")
	_, cmd := m.Update(update.FatalMsg{Err: err})
	assert.NotNil(t, cmd)
	assert.Equal(t, err, m.Fatal())
	assert.Contains(t, ansi.Strip(m.View()), "authentication failed")
}
