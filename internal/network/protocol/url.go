package protocol

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// SocketURL derives the SockJS websocket endpoint from the API root:
// https://host/api/ becomes wss://host/socket/<server>/<session>/websocket.
// The server and session ids are random, as SockJS clients pick them.
func SocketURL(apiURL *url.URL) (string, error) {
	u := *apiURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("cannot derive websocket url from scheme %q", u.Scheme)
	}

	prefix := strings.TrimSuffix(u.Path, "/")
	prefix = strings.TrimSuffix(prefix, "/api")

	session := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	u.Path = fmt.Sprintf("%s/socket/%03d/%s/websocket", prefix, rand.IntN(1000), session)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
