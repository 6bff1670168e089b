package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/room-viewer/internal/room"
)

func TestCueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state room.ConnectionState
		want  Cue
		ok    bool
	}{
		{room.Connected, CueConnected, true},
		{room.Disconnected, CueDisconnected, true},
		{room.Error, CueError, true},
		{room.Authenticating, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			t.Parallel()
			got, ok := CueFor(tt.state)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayer_PlayWithoutInit(t *testing.T) {
	t.Parallel()

	p := NewPlayer(t.TempDir())
	assert.NotPanics(t, func() {
		p.Play(CueConnected)
		p.Close()
	})
}
