package protocol

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		api  string
		want string
	}{
		{"https://screeps.com/api/", `^wss://screeps\.com/socket/\d{3}/[0-9a-f]{8}/websocket$`},
		{"http://localhost:21025/api/", `^ws://localhost:21025/socket/\d{3}/[0-9a-f]{8}/websocket$`},
		{"https://example.com/season/api/", `^wss://example\.com/season/socket/\d{3}/[0-9a-f]{8}/websocket$`},
	}

	for _, tt := range tests {
		t.Run(tt.api, func(t *testing.T) {
			t.Parallel()
			u, err := url.Parse(tt.api)
			require.NoError(t, err)

			got, err := SocketURL(u)
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(tt.want), got)
		})
	}

	u, _ := url.Parse("ftp://x/")
	_, err := SocketURL(u)
	assert.Error(t, err)
}

func TestSocketURL_FreshSession(t *testing.T) {
	t.Parallel()

	u, _ := url.Parse("https://screeps.com/api/")
	a, _ := SocketURL(u)
	b, _ := SocketURL(u)
	assert.NotEqual(t, a, b)
}
