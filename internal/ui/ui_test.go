package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
	"github.com/palemoky/room-viewer/internal/ui/update"
)

type recordingProgram struct {
	msgs []tea.Msg
}

func (p *recordingProgram) Send(msg tea.Msg) { p.msgs = append(p.msgs, msg) }

func TestDispatcher_ForwardsToProgram(t *testing.T) {
	t.Parallel()
	p := &recordingProgram{}
	d := NewDispatcher(p)

	d.Dispatch(update.UserMsg{Username: "alice"})
	d.Dispatch(update.ConnStateMsg{State: room.Connected})

	assert.Equal(t, []tea.Msg{
		update.UserMsg{Username: "alice"},
		update.ConnStateMsg{State: room.Connected},
	}, p.msgs)
}

func TestLogDispatcher(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := NewLogDispatcher(slog.New(slog.NewTextHandler(&buf, nil)))

	id := room.NewID("shard0", room.MustParseName("W1N1"))
	replica := room.NewReplica(room.NewTerrain(id))
	replica.Objects["c1"] = &room.Object{ID: "c1", Type: room.TypeCreep, X: 1, Y: 1}
	tick := int64(42)
	replica.LastUpdateTime = &tick

	d.Dispatch(update.UserMsg{Username: "alice"})
	d.Dispatch(update.RoomMsg{Room: visual.NewBuilder(nil).Build(replica)})
	assert.NoError(t, d.Fatal())

	err := errors.New("authentication failed")
	d.Dispatch(update.FatalMsg{Err: err})

	out := buf.String()
	assert.Contains(t, out, "username=alice")
	assert.Contains(t, out, "room=shard0:W1N1")
	assert.Contains(t, out, "tick=42")
	assert.Contains(t, out, "entries=1")
	assert.Contains(t, out, "authentication failed")
	assert.Equal(t, err, d.Fatal())
}
