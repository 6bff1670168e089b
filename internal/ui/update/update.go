// Package update defines the messages the session sends to the UI. Every
// message is a value the UI applies on its own goroutine.
package update

import (
	"github.com/palemoky/room-viewer/internal/command"
	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
)

// Msg is any UI update.
type Msg interface {
	isUpdate()
}

// ServerMsg sets the server address shown in the sidebar.
type ServerMsg struct{ URL string }

// ConnStateMsg reports a connection state transition.
type ConnStateMsg struct{ State room.ConnectionState }

// UserMsg sets the authenticated username.
type UserMsg struct{ Username string }

// RoomMsg replaces the displayed room. Room is never mutated after sending.
type RoomMsg struct{ Room *visual.Room }

// ConsoleMsg appends one line to the console pane.
type ConsoleMsg struct{ Line string }

// CommandSenderMsg hands the UI its producer handle for commands.
type CommandSenderMsg struct{ Sender command.Sender }

// ShardMsg reports the selected shard.
type ShardMsg struct{ Shard string }

// ShardNamesMsg lists the shards known to the server.
type ShardNamesMsg struct{ Names []string }

// FatalMsg reports the error that ended the session.
type FatalMsg struct{ Err error }

func (ServerMsg) isUpdate()        {}
func (ConnStateMsg) isUpdate()     {}
func (UserMsg) isUpdate()          {}
func (RoomMsg) isUpdate()          {}
func (ConsoleMsg) isUpdate()       {}
func (CommandSenderMsg) isUpdate() {}
func (ShardMsg) isUpdate()         {}
func (ShardNamesMsg) isUpdate()    {}
func (FatalMsg) isUpdate()         {}
