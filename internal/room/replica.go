package room

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Update is one incremental change to a room. A JSON null patch removes
// the object or user with that id.
type Update struct {
	GameTime *int64
	Objects  map[string]json.RawMessage
	Flags    []Flag
	Users    map[string]json.RawMessage
}

// MergeError reports a patch that could not be merged or decoded.
type MergeError struct {
	Kind  string // "object" or "user"
	ID    string
	Patch json.RawMessage
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merging %s %s (patch %s): %v", e.Kind, e.ID, e.Patch, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// Replica is the local state of one room. It is created empty whenever the
// subscribed room changes and only ever mutated through Apply.
type Replica struct {
	LastUpdateTime *int64
	ID             ID
	Terrain        *Terrain
	Objects        map[string]*Object
	Flags          []Flag
	Users          map[string]*User
}

// NewReplica returns an empty replica for the room the terrain belongs to.
func NewReplica(terrain *Terrain) *Replica {
	return &Replica{
		ID:      terrain.ID,
		Terrain: terrain,
		Objects: make(map[string]*Object),
		Users:   make(map[string]*User),
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Apply merges u into the replica. The first failing patch aborts the call;
// patches already applied in the same call stay applied.
func (r *Replica) Apply(u Update) error {
	if u.GameTime != nil {
		t := *u.GameTime
		r.LastUpdateTime = &t
	}

	for id, raw := range u.Objects {
		if err := r.applyObject(id, raw); err != nil {
			return &MergeError{Kind: "object", ID: id, Patch: raw, Err: err}
		}
	}

	r.Flags = u.Flags

	for id, raw := range u.Users {
		if err := r.applyUser(id, raw); err != nil {
			return &MergeError{Kind: "user", ID: id, Patch: raw, Err: err}
		}
	}
	return nil
}

func (r *Replica) applyObject(id string, raw json.RawMessage) error {
	if isNull(raw) {
		delete(r.Objects, id)
		return nil
	}

	if obj, ok := r.Objects[id]; ok {
		var patch ObjectPatch
		if err := json.Unmarshal(raw, &patch); err != nil {
			return err
		}
		obj.Apply(&patch)
		return nil
	}

	obj := &Object{}
	if err := json.Unmarshal(raw, obj); err != nil {
		return err
	}
	if !hasKey(raw, "type") {
		return fmt.Errorf("new object without a type")
	}
	if obj.ID == "" {
		obj.ID = id
	}
	slog.Debug("新增房间对象", "room", r.ID, "id", id, "type", obj.Type)
	r.Objects[id] = obj
	return nil
}

func (r *Replica) applyUser(id string, raw json.RawMessage) error {
	if isNull(raw) {
		delete(r.Users, id)
		return nil
	}

	if user, ok := r.Users[id]; ok {
		var patch UserPatch
		if err := json.Unmarshal(raw, &patch); err != nil {
			return err
		}
		user.Apply(&patch)
		return nil
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return err
	}
	r.Users[id] = user
	return nil
}

func hasKey(raw json.RawMessage, key string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	_, ok := fields[key]
	return ok
}
