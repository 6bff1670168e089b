package room

// ConnectionState is the session's connection status as shown to the user.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Authenticating
	Connected
	Error
)

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Authenticating:
		return "authenticating"
	case Connected:
		return "connected"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
