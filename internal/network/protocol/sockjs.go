// Package protocol decodes and encodes the server's websocket protocol:
// SockJS framing around plain text application messages.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FrameType is the kind of SockJS frame.
type FrameType int

const (
	FrameOpen FrameType = iota
	FrameHeartbeat
	FrameClose
	FrameMessages
)

// Frame is one decoded SockJS frame. Messages holds the inner application
// messages for FrameMessages (a single "m" frame is normalised to one).
type Frame struct {
	Type        FrameType
	Messages    []string
	CloseCode   int
	CloseReason string
}

var errEmptyFrame = errors.New("empty sockjs frame")

// ParseFrame decodes one SockJS text frame.
func ParseFrame(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, errEmptyFrame
	}

	body := data[1:]
	switch data[0] {
	case 'o':
		return Frame{Type: FrameOpen}, nil
	case 'h':
		return Frame{Type: FrameHeartbeat}, nil
	case 'c':
		var closing []json.RawMessage
		if err := json.Unmarshal(body, &closing); err != nil {
			return Frame{}, fmt.Errorf("parsing sockjs close frame: %w", err)
		}
		f := Frame{Type: FrameClose}
		if len(closing) > 0 {
			_ = json.Unmarshal(closing[0], &f.CloseCode)
		}
		if len(closing) > 1 {
			_ = json.Unmarshal(closing[1], &f.CloseReason)
		}
		return f, nil
	case 'a':
		var msgs []string
		if err := json.Unmarshal(body, &msgs); err != nil {
			return Frame{}, fmt.Errorf("parsing sockjs message array: %w", err)
		}
		return Frame{Type: FrameMessages, Messages: msgs}, nil
	case 'm':
		var msg string
		if err := json.Unmarshal(body, &msg); err != nil {
			return Frame{}, fmt.Errorf("parsing sockjs message: %w", err)
		}
		return Frame{Type: FrameMessages, Messages: []string{msg}}, nil
	default:
		return Frame{}, fmt.Errorf("unknown sockjs frame type %q", data[0])
	}
}

// encodeSend wraps outgoing messages the way SockJS clients send them: a
// JSON array of strings.
func encodeSend(msgs ...string) []byte {
	data, _ := json.Marshal(msgs)
	return data
}
