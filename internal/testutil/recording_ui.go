//go:build !production

package testutil

import "github.com/palemoky/room-viewer/internal/ui/update"

// RecordingUI 按顺序记录会话推送的更新
type RecordingUI struct {
	msgs chan update.Msg
}

// NewRecordingUI 创建记录器
func NewRecordingUI() *RecordingUI {
	return &RecordingUI{msgs: make(chan update.Msg, 1024)}
}

func (u *RecordingUI) Dispatch(msg update.Msg) {
	u.msgs <- msg
}

// Messages 已收到的更新
func (u *RecordingUI) Messages() <-chan update.Msg { return u.msgs }
