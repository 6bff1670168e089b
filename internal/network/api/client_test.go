package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/room-viewer/internal/room"
)

// newTestClient serves routes keyed by path; every request must carry tok.
func newTestClient(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/api", "tok")
	require.NoError(t, err)
	return c
}

func reply(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	c, err := NewClient("", "t")
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, c.URL().String())

	c, err = NewClient("http://localhost:21025/api", "t")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:21025/api/", c.URL().String())

	_, err = NewClient("ftp://example.com/", "t")
	assert.Error(t, err)
}

func TestClient_MyInfo(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/auth/me": reply(`{"ok":1,"_id":"u1","username":"alice","gcl":100}`),
	})

	info, err := c.MyInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MyInfo{UserID: "u1", Username: "alice"}, info)

	c.SetToken("other")
	_, err = c.MyInfo(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "unauthorized", apiErr.Message)
}

func TestClient_RoomTerrain(t *testing.T) {
	t.Parallel()

	encoded := "1" + strings.Repeat("0", room.Size*room.Size-1)
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/game/room-terrain": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "W7N3", r.URL.Query().Get("room"))
			assert.Equal(t, "1", r.URL.Query().Get("encoded"))
			assert.Equal(t, "shard2", r.URL.Query().Get("shard"))
			_, _ = w.Write([]byte(`{"ok":1,"terrain":[{"room":"W7N3","terrain":"` + encoded + `","type":"terrain"}]}`))
		},
	})

	id := room.NewID("shard2", room.MustParseName("W7N3"))
	terrain, err := c.RoomTerrain(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, terrain.ID)
	assert.Equal(t, room.Wall, terrain.At(0, 0))
}

func TestClient_RoomTerrain_Empty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/game/room-terrain": reply(`{"ok":1,"terrain":[]}`),
	})
	_, err := c.RoomTerrain(context.Background(), room.NewID("", room.MustParseName("E1S1")))
	assert.Error(t, err)
}

func TestClient_StartRooms(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/user/world-start-room": func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("shard") {
			case "":
				_, _ = w.Write([]byte(`{"ok":1,"room":["shard3/W9N9"]}`))
			case "shard1":
				_, _ = w.Write([]byte(`{"ok":1,"room":["E4S4"]}`))
			default:
				_, _ = w.Write([]byte(`{"ok":1,"room":[]}`))
			}
		},
	})

	id, err := c.WorldStartRoom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, room.NewID("shard3", room.MustParseName("W9N9")), id)

	id, err = c.ShardStartRoom(context.Background(), "shard1")
	require.NoError(t, err)
	assert.Equal(t, room.NewID("shard1", room.MustParseName("E4S4")), id)

	_, err = c.ShardStartRoom(context.Background(), "nowhere")
	assert.ErrorIs(t, err, errNoStartRoom)
}

func TestClient_ShardNames(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/game/shards/info": reply(`{"ok":1,"shards":[{"name":"shard0","rooms":100},{"name":"shard1"}]}`),
	})

	names, err := c.ShardNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"shard0", "shard1"}, names)
}

func TestClient_NotOK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/auth/me": reply(`{"error":"token expired"}`),
	})
	_, err := c.MyInfo(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "token expired", apiErr.Message)
}
