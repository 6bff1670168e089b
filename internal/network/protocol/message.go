package protocol

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/palemoky/room-viewer/internal/room"
)

const (
	// compressedPrefix marks a base64 zlib payload.
	compressedPrefix = "gz:"
	// maxInflatedSize caps a decompressed message.
	maxInflatedSize = 32 << 20
)

// MessageType is the kind of an application message.
type MessageType int

const (
	MsgOther MessageType = iota
	MsgAuthOk
	MsgAuthFailed
	MsgServerTime
	MsgServerProtocol
	MsgServerPackage
	MsgRoomDetail
	MsgChannelUpdate
)

func (t MessageType) String() string {
	switch t {
	case MsgAuthOk:
		return "auth_ok"
	case MsgAuthFailed:
		return "auth_failed"
	case MsgServerTime:
		return "time"
	case MsgServerProtocol:
		return "protocol"
	case MsgServerPackage:
		return "package"
	case MsgRoomDetail:
		return "room_detail"
	case MsgChannelUpdate:
		return "channel_update"
	default:
		return "other"
	}
}

// Message is one decoded application message.
type Message struct {
	Type MessageType

	// Token is the refreshed token of MsgAuthOk.
	Token string
	// Value is the argument of time/protocol/package messages.
	Value string

	// Channel is set for MsgRoomDetail and MsgChannelUpdate.
	Channel string
	// Room and Update are set for MsgRoomDetail.
	Room   room.ID
	Update room.Update
	// Raw is the unparsed payload of MsgChannelUpdate and the whole text of
	// MsgOther.
	Raw string
}

// roomPayload is the JSON body of a room detail update.
type roomPayload struct {
	GameTime *int64                     `json:"gameTime"`
	Objects  map[string]json.RawMessage `json:"objects"`
	Flags    string                     `json:"flags"`
	Users    map[string]json.RawMessage `json:"users"`
}

// ParseMessage decodes one application message. Text prefixed with "gz:" is
// inflated first. Unknown text is returned as MsgOther; only malformed
// compressed or channel payloads are errors.
func ParseMessage(text string) (Message, error) {
	if encoded, ok := strings.CutPrefix(text, compressedPrefix); ok {
		plain, err := inflate(encoded)
		if err != nil {
			return Message{}, fmt.Errorf("decompressing message: %w", err)
		}
		text = plain
	}

	if strings.HasPrefix(text, "[") {
		return parseChannelMessage(text)
	}

	word, arg, _ := strings.Cut(text, " ")
	switch word {
	case "auth":
		status, token, _ := strings.Cut(arg, " ")
		switch status {
		case "ok":
			return Message{Type: MsgAuthOk, Token: token}, nil
		case "failed":
			return Message{Type: MsgAuthFailed}, nil
		}
	case "time":
		return Message{Type: MsgServerTime, Value: arg}, nil
	case "protocol":
		return Message{Type: MsgServerProtocol, Value: arg}, nil
	case "package":
		return Message{Type: MsgServerPackage, Value: arg}, nil
	}
	return Message{Type: MsgOther, Raw: text}, nil
}

func parseChannelMessage(text string) (Message, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal([]byte(text), &parts); err != nil {
		return Message{}, fmt.Errorf("parsing channel message: %w", err)
	}
	if len(parts) != 2 {
		return Message{}, fmt.Errorf("parsing channel message: expected 2 elements, got %d", len(parts))
	}
	var channel string
	if err := json.Unmarshal(parts[0], &channel); err != nil {
		return Message{}, fmt.Errorf("parsing channel name: %w", err)
	}

	id, ok := parseRoomChannel(channel)
	if !ok {
		return Message{Type: MsgChannelUpdate, Channel: channel, Raw: string(parts[1])}, nil
	}

	var payload roomPayload
	if err := json.Unmarshal(parts[1], &payload); err != nil {
		return Message{}, fmt.Errorf("parsing %s update: %w", channel, err)
	}
	flags, err := room.ParseFlags(payload.Flags)
	if err != nil {
		return Message{}, fmt.Errorf("parsing %s flags: %w", channel, err)
	}

	return Message{
		Type:    MsgRoomDetail,
		Channel: channel,
		Room:    id,
		Update: room.Update{
			GameTime: payload.GameTime,
			Objects:  payload.Objects,
			Flags:    flags,
			Users:    payload.Users,
		},
	}, nil
}

// inflate decodes a base64 zlib payload.
func inflate(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(io.LimitReader(zr, maxInflatedSize+1))
	if err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}
	if len(data) > maxInflatedSize {
		return "", fmt.Errorf("inflated message exceeds %d bytes", maxInflatedSize)
	}
	return string(data), nil
}
