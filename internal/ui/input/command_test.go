package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/room"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Action
	}{
		{":room W5N5", Action{Kind: ActionCommand, Command: command.NewChangeRoom(room.NewID("", room.MustParseName("W5N5")))}},
		{"room shard2/e3s7", Action{Kind: ActionCommand, Command: command.NewChangeRoom(room.NewID("shard2", room.MustParseName("E3S7")))}},
		{":r shard1:W1N1", Action{Kind: ActionCommand, Command: command.NewChangeRoom(room.NewID("shard1", room.MustParseName("W1N1")))}},
		{":shard shard3", Action{Kind: ActionCommand, Command: command.NewChangeShard("shard3")}},
		{":shards", Action{Kind: ActionCommand, Command: command.Command{Kind: command.FetchShardNames}}},
		{"  :reconnect  ", Action{Kind: ActionCommand, Command: command.Command{Kind: command.Reconnect}}},
		{":q", Action{Kind: ActionQuit}},
		{":QUIT", Action{Kind: ActionQuit}},
		{":help", Action{Kind: ActionHelp}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", ":", ":room", ":room X9Y9", ":room a b", ":shard", ":teleport W1N1"} {
		t.Run(line, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(line)
			assert.Error(t, err)
		})
	}
}
