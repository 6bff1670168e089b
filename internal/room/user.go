package room

import "encoding/json"

// Badge is a user's badge as sent by the server. Type is either a number
// or a custom path object, so it is kept raw.
type Badge struct {
	Type   json.RawMessage `json:"type,omitempty"`
	Color1 string          `json:"color1,omitempty"`
	Color2 string          `json:"color2,omitempty"`
	Color3 string          `json:"color3,omitempty"`
	Param  float64         `json:"param,omitempty"`
	Flip   bool            `json:"flip,omitempty"`
}

// User is a player with objects in (or visible from) the room.
type User struct {
	Username string `json:"username,omitempty"`
	Badge    *Badge `json:"badge,omitempty"`
}

// UserPatch is an incremental update to a User.
type UserPatch struct {
	Username *string `json:"username"`
	Badge    *Badge  `json:"badge"`
}

// Apply merges p into u.
func (u *User) Apply(p *UserPatch) {
	set(&u.Username, p.Username)
	if p.Badge != nil {
		b := *p.Badge
		u.Badge = &b
	}
}

// Clone returns a copy that shares nothing mutable with u.
func (u *User) Clone() *User {
	c := *u
	if u.Badge != nil {
		b := *u.Badge
		b.Type = append(json.RawMessage(nil), u.Badge.Type...)
		c.Badge = &b
	}
	return &c
}
