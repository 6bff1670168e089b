// Package sound 在连接状态变化时播放提示音。
package sound

import "github.com/palemoky/room-viewer/internal/room"

// Cue 提示音名称，对应声音目录中同名的 mp3/wav 文件
type Cue string

const (
	CueConnected    Cue = "connected"
	CueDisconnected Cue = "disconnected"
	CueError        Cue = "error"
)

// CueFor 返回进入 state 时的提示音；Authenticating 没有提示音
func CueFor(state room.ConnectionState) (Cue, bool) {
	switch state {
	case room.Connected:
		return CueConnected, true
	case room.Disconnected:
		return CueDisconnected, true
	case room.Error:
		return CueError, true
	default:
		return "", false
	}
}
