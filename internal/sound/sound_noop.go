//go:build ci

package sound

// Player CI 环境下没有音频设备，所有操作为空
type Player struct{}

func NewPlayer(dir string) *Player {
	return &Player{}
}

func (p *Player) Init() error {
	return nil
}

func (p *Player) Has(cue Cue) bool {
	return false
}

func (p *Player) Play(cue Cue) {
	// No-op
}

func (p *Player) Close() {
	// No-op
}
