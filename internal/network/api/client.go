// Package api is a small client for the server's HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/palemoky/room-viewer/internal/room"
)

// DefaultURL is the official server's API root.
const DefaultURL = "https://screeps.com/api/"

// MyInfo is the authenticated user.
type MyInfo struct {
	UserID   string `json:"_id"`
	Username string `json:"username"`
}

// ShardInfo describes one shard of the world.
type ShardInfo struct {
	Name  string  `json:"name"`
	Rooms int     `json:"rooms"`
	Users int     `json:"users"`
	Tick  float64 `json:"tick"`
}

// Client talks to one server. It is safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient parses rawURL (DefaultURL when empty) as the API root.
func NewClient(rawURL, token string) (*Client, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url %q: %w", rawURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", rawURL)
	}
	return &Client{
		base:  base,
		http:  &http.Client{},
		token: token,
	}, nil
}

// URL returns the API root.
func (c *Client) URL() *url.URL {
	u := *c.base
	return &u
}

// Token returns the token used for requests.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the token used for requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// APIError is a request the server answered with an error.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s: %s (status %d)", e.Path, e.Message, e.Status)
	}
	return fmt.Sprintf("api %s: status %d", e.Path, e.Status)
}

// envelope is the common part of every response.
type envelope struct {
	OK    int    `json:"ok"`
	Error string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	token := c.Token()
	req.Header.Set("X-Token", token)
	req.Header.Set("X-Username", token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api %s: reading body: %w", path, err)
	}

	var env envelope
	_ = json.Unmarshal(body, &env)
	if resp.StatusCode != http.StatusOK || env.Error != "" {
		return &APIError{Path: path, Status: resp.StatusCode, Message: env.Error}
	}
	if env.OK != 1 {
		return &APIError{Path: path, Status: resp.StatusCode, Message: "response not ok"}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api %s: decoding response: %w", path, err)
	}
	return nil
}

// MyInfo fetches the user the token belongs to.
func (c *Client) MyInfo(ctx context.Context) (MyInfo, error) {
	var info MyInfo
	if err := c.get(ctx, "auth/me", nil, &info); err != nil {
		return MyInfo{}, err
	}
	return info, nil
}

type terrainResponse struct {
	Terrain []struct {
		Room    string `json:"room"`
		Terrain string `json:"terrain"`
	} `json:"terrain"`
}

// RoomTerrain fetches the encoded terrain of a room.
func (c *Client) RoomTerrain(ctx context.Context, id room.ID) (*room.Terrain, error) {
	q := url.Values{"room": {id.Name.String()}, "encoded": {"1"}}
	if id.HasShard() {
		q.Set("shard", id.Shard)
	}

	var resp terrainResponse
	if err := c.get(ctx, "game/room-terrain", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Terrain) == 0 {
		return nil, fmt.Errorf("api game/room-terrain: no terrain for %s", id)
	}
	return room.ParseTerrain(id, resp.Terrain[0].Terrain)
}

type startRoomResponse struct {
	Room []string `json:"room"`
}

var errNoStartRoom = errors.New("server returned no start room")

func (c *Client) startRoom(ctx context.Context, shard string) (room.ID, error) {
	q := url.Values{}
	if shard != "" {
		q.Set("shard", shard)
	}
	var resp startRoomResponse
	if err := c.get(ctx, "user/world-start-room", q, &resp); err != nil {
		return room.ID{}, err
	}
	if len(resp.Room) == 0 {
		return room.ID{}, errNoStartRoom
	}
	id, err := room.ParseID(resp.Room[0])
	if err != nil {
		return room.ID{}, fmt.Errorf("api user/world-start-room: %w", err)
	}
	if id.Shard == "" {
		id.Shard = shard
	}
	return id, nil
}

// ShardStartRoom returns the user's start room on one shard.
func (c *Client) ShardStartRoom(ctx context.Context, shard string) (room.ID, error) {
	return c.startRoom(ctx, shard)
}

// WorldStartRoom returns the user's start room, with the shard it is on
// when the server is sharded.
func (c *Client) WorldStartRoom(ctx context.Context) (room.ID, error) {
	return c.startRoom(ctx, "")
}

type shardsResponse struct {
	Shards []ShardInfo `json:"shards"`
}

// Shards lists the world's shards.
func (c *Client) Shards(ctx context.Context) ([]ShardInfo, error) {
	var resp shardsResponse
	if err := c.get(ctx, "game/shards/info", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Shards, nil
}

// ShardNames lists the names of the world's shards.
func (c *Client) ShardNames(ctx context.Context) ([]string, error) {
	shards, err := c.Shards(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(shards))
	for i, s := range shards {
		names[i] = s.Name
	}
	return names, nil
}
