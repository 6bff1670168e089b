package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
)

var testRoomID = room.NewID("shard0", room.MustParseName("W1N1"))

func testRoom(t *testing.T) *visual.Room {
	t.Helper()
	terrain := room.NewTerrain(testRoomID)
	terrain.Set(0, 0, room.Wall)
	r := room.NewReplica(terrain)
	gameTime := int64(500)
	r.LastUpdateTime = &gameTime
	r.Objects["c1"] = &room.Object{ID: "c1", Type: room.TypeCreep, X: 3, Y: 4, Name: "bob", User: "u1", Hits: 100, HitsMax: 100}
	r.Users["u1"] = &room.User{Username: "alice"}
	return visual.NewBuilder(nil).Build(r)
}

func TestCellAt(t *testing.T) {
	t.Parallel()

	x, y, ok := CellAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y, ok = CellAt(50, 50)
	require.True(t, ok)
	assert.Equal(t, 49, x)
	assert.Equal(t, 49, y)

	_, _, ok = CellAt(0, 5)
	assert.False(t, ok)
	_, _, ok = CellAt(51, 5)
	assert.False(t, ok)
}

func TestGrid(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(Grid(testRoom(t), 3, 4))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, GridHeight)
	for _, line := range lines {
		assert.Equal(t, GridWidth, ansi.StringWidth(line))
	}

	// Rows start after the border.
	assert.True(t, strings.HasPrefix(lines[1], "│█"))
	assert.Equal(t, "⚬", string([]rune(lines[5])[4]))
}

func TestGrid_NilRoom(t *testing.T) {
	t.Parallel()

	lines := strings.Split(ansi.Strip(Grid(nil, 0, 0)), "\n")
	require.Len(t, lines, GridHeight)
	assert.Equal(t, "│"+strings.Repeat(" ", room.Size)+"│", lines[1])
}

func TestInfo(t *testing.T) {
	t.Parallel()

	r := testRoom(t)
	info := Info(r, 3, 4)
	assert.Contains(t, info, "[alice]")
	assert.Contains(t, info, "bob")
	assert.Contains(t, info, "c1")

	assert.Contains(t, Info(r, 0, 0), "wall")
	assert.Empty(t, Info(r, 20, 20))
	assert.Empty(t, Info(nil, 3, 4))
}

func TestSidebar(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(Sidebar(Status{
		Server:   "https://screeps.com/api/",
		Username: "alice",
		Shard:    "shard0",
		State:    room.Connected,
		Room:     testRoom(t),
		CursorX:  3,
		CursorY:  4,
		Fatal:    errors.New("boom"),
	}, 40))

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "shard0")
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "shard0:W1N1")
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "3,4")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "bob")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}
