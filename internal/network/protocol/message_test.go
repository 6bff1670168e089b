package protocol

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/room-viewer/internal/room"
)

func TestParseMessage_Simple(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Message
	}{
		{"auth ok abc123", Message{Type: MsgAuthOk, Token: "abc123"}},
		{"auth failed", Message{Type: MsgAuthFailed}},
		{"time 4021", Message{Type: MsgServerTime, Value: "4021"}},
		{"protocol 14", Message{Type: MsgServerProtocol, Value: "14"}},
		{"package 120", Message{Type: MsgServerPackage, Value: "120"}},
		{"gibberish here", Message{Type: MsgOther, Raw: "gibberish here"}},
		{"auth maybe", Message{Type: MsgOther, Raw: "auth maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMessage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMessage_RoomDetail(t *testing.T) {
	t.Parallel()

	text := `["room:shard1/W2N2",{"gameTime":77,"objects":{"abc":{"type":"creep","x":1,"y":2},"gone":null},"flags":"F~1~1~3~4","users":{"u1":{"username":"bob"}}}]`

	msg, err := ParseMessage(text)
	require.NoError(t, err)

	assert.Equal(t, MsgRoomDetail, msg.Type)
	assert.Equal(t, room.NewID("shard1", room.MustParseName("W2N2")), msg.Room)
	require.NotNil(t, msg.Update.GameTime)
	assert.Equal(t, int64(77), *msg.Update.GameTime)
	assert.Len(t, msg.Update.Objects, 2)
	assert.JSONEq(t, "null", string(msg.Update.Objects["gone"]))
	assert.Equal(t, []room.Flag{{Name: "F", Color: 1, SecondaryColor: 1, X: 3, Y: 4}}, msg.Update.Flags)
	assert.Contains(t, msg.Update.Users, "u1")
}

func TestParseMessage_UnshardedRoom(t *testing.T) {
	t.Parallel()

	msg, err := ParseMessage(`["room:E1S1",{"objects":{}}]`)
	require.NoError(t, err)
	assert.Equal(t, MsgRoomDetail, msg.Type)
	assert.Equal(t, room.NewID("", room.MustParseName("E1S1")), msg.Room)
	assert.Nil(t, msg.Update.GameTime)
}

func TestParseMessage_OtherChannel(t *testing.T) {
	t.Parallel()

	msg, err := ParseMessage(`["user:5a/cpu",{"cpu":12,"memory":3000}]`)
	require.NoError(t, err)
	assert.Equal(t, MsgChannelUpdate, msg.Type)
	assert.Equal(t, "user:5a/cpu", msg.Channel)
	assert.JSONEq(t, `{"cpu":12,"memory":3000}`, msg.Raw)
}

func TestParseMessage_Malformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		`["room:W1N1"`,
		`["room:W1N1"]`,
		`[1,{}]`,
		`["room:W1N1",{"objects":[1]}]`,
		`["room:W1N1",{"flags":"bad"}]`,
		"gz:not base64!",
		"gz:" + base64.StdEncoding.EncodeToString([]byte("plain, not zlib")),
	} {
		_, err := ParseMessage(input)
		assert.Error(t, err, input)
	}
}

func compressed(t *testing.T, text string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return compressedPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestParseMessage_Compressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, msg Message)
	}{
		{
			name:  "room detail",
			input: `["room:shard0/W1N1",{"gameTime":5,"objects":{"abc":{"type":"creep","x":1,"y":2}}}]`,
			check: func(t *testing.T, msg Message) {
				assert.Equal(t, MsgRoomDetail, msg.Type)
				assert.Equal(t, room.NewID("shard0", room.MustParseName("W1N1")), msg.Room)
				require.NotNil(t, msg.Update.GameTime)
				assert.Equal(t, int64(5), *msg.Update.GameTime)
				assert.Contains(t, msg.Update.Objects, "abc")
			},
		},
		{
			name:  "auth ok",
			input: "auth ok tok2",
			check: func(t *testing.T, msg Message) {
				assert.Equal(t, Message{Type: MsgAuthOk, Token: "tok2"}, msg)
			},
		},
		{
			name:  "other channel",
			input: `["user:5a/cpu",{"cpu":1}]`,
			check: func(t *testing.T, msg Message) {
				assert.Equal(t, MsgChannelUpdate, msg.Type)
				assert.Equal(t, "user:5a/cpu", msg.Channel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, err := ParseMessage(compressed(t, tt.input))
			require.NoError(t, err)
			tt.check(t, msg)
		})
	}
}

func TestOutboundFrames(t *testing.T) {
	t.Parallel()

	id := room.NewID("shard0", room.MustParseName("W1N1"))
	assert.Equal(t, "room:shard0/W1N1", RoomChannel(id))
	assert.Equal(t, "room:W1N1", RoomChannel(room.NewID("", id.Name)))

	assert.Equal(t, `["auth tok"]`, string(Authenticate("tok")))
	assert.Equal(t, `["subscribe room:shard0/W1N1"]`, string(Subscribe(RoomChannel(id))))
	assert.Equal(t, `["unsubscribe room:shard0/W1N1"]`, string(Unsubscribe(RoomChannel(id))))

	parsed, ok := parseRoomChannel(RoomChannel(id))
	require.True(t, ok)
	assert.Equal(t, id, parsed)
}
