// Package room holds the local replica of one subscribed room.
package room

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the width and height of every room.
const Size = 50

var errBadRoomName = errors.New("invalid room name")

// Name is a room coordinate. X counts east from E0 (W0 is -1), Y counts
// south from S0 (N0 is -1), so every room name maps to one point.
type Name struct {
	X int
	Y int
}

// ParseName parses names such as "W1N1" or "e12s3".
func ParseName(s string) (Name, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if len(upper) < 4 {
		return Name{}, fmt.Errorf("%w: %q", errBadRoomName, s)
	}

	h := upper[0]
	if h != 'W' && h != 'E' {
		return Name{}, fmt.Errorf("%w: %q", errBadRoomName, s)
	}
	v := strings.IndexAny(upper[1:], "NS")
	if v < 1 {
		return Name{}, fmt.Errorf("%w: %q", errBadRoomName, s)
	}
	v++

	x, err := strconv.Atoi(upper[1:v])
	if err != nil || x < 0 {
		return Name{}, fmt.Errorf("%w: %q", errBadRoomName, s)
	}
	y, err := strconv.Atoi(upper[v+1:])
	if err != nil || y < 0 {
		return Name{}, fmt.Errorf("%w: %q", errBadRoomName, s)
	}

	n := Name{X: x, Y: y}
	if h == 'W' {
		n.X = -x - 1
	}
	if upper[v] == 'N' {
		n.Y = -y - 1
	}
	return n, nil
}

// MustParseName is ParseName for constants; it panics on bad input.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	var b strings.Builder
	if n.X < 0 {
		b.WriteByte('W')
		b.WriteString(strconv.Itoa(-n.X - 1))
	} else {
		b.WriteByte('E')
		b.WriteString(strconv.Itoa(n.X))
	}
	if n.Y < 0 {
		b.WriteByte('N')
		b.WriteString(strconv.Itoa(-n.Y - 1))
	} else {
		b.WriteByte('S')
		b.WriteString(strconv.Itoa(n.Y))
	}
	return b.String()
}

// ID identifies one subscription target. An empty Shard means the server
// is not sharded.
type ID struct {
	Shard string
	Name  Name
}

// NewID builds an ID from an optional shard.
func NewID(shard string, name Name) ID {
	return ID{Shard: shard, Name: name}
}

// ParseID accepts "W1N1", "shard3/W1N1" and "shard3:W1N1".
func ParseID(s string) (ID, error) {
	shard, name := "", s
	if i := strings.IndexAny(s, "/:"); i >= 0 {
		shard, name = s[:i], s[i+1:]
	}
	n, err := ParseName(name)
	if err != nil {
		return ID{}, err
	}
	return ID{Shard: shard, Name: n}, nil
}

// HasShard reports whether the ID names a shard.
func (id ID) HasShard() bool { return id.Shard != "" }

// String renders "shard:room", or just "room" without a shard.
func (id ID) String() string {
	if id.Shard == "" {
		return id.Name.String()
	}
	return id.Shard + ":" + id.Name.String()
}
