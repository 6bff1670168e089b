package protocol

import (
	"strings"

	"github.com/palemoky/room-viewer/internal/room"
)

const roomChannelPrefix = "room:"

// RoomChannel is the detail feed of one room: "room:W1N1" or
// "room:shard0/W1N1".
func RoomChannel(id room.ID) string {
	if id.HasShard() {
		return roomChannelPrefix + id.Shard + "/" + id.Name.String()
	}
	return roomChannelPrefix + id.Name.String()
}

// parseRoomChannel is the inverse of RoomChannel.
func parseRoomChannel(channel string) (room.ID, bool) {
	rest, ok := strings.CutPrefix(channel, roomChannelPrefix)
	if !ok {
		return room.ID{}, false
	}
	shard, name := "", rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		shard, name = rest[:i], rest[i+1:]
	}
	n, err := room.ParseName(name)
	if err != nil {
		return room.ID{}, false
	}
	return room.NewID(shard, n), true
}

// Authenticate is the SockJS text that authenticates the socket.
func Authenticate(token string) []byte {
	return encodeSend("auth " + token)
}

// Subscribe is the SockJS text that subscribes to a channel.
func Subscribe(channel string) []byte {
	return encodeSend("subscribe " + channel)
}

// Unsubscribe is the SockJS text that cancels a subscription.
func Unsubscribe(channel string) []byte {
	return encodeSend("unsubscribe " + channel)
}
