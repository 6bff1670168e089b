package room

import (
	"fmt"
	"strings"
)

// TerrainKind is the static ground type of one cell.
type TerrainKind uint8

const (
	Plain TerrainKind = iota
	Wall
	Swamp
	SwampWall
)

func (k TerrainKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Wall:
		return "wall"
	case Swamp:
		return "swamp"
	case SwampWall:
		return "swamp-wall"
	default:
		return "unknown"
	}
}

// Terrain is the immutable ground layout of a room.
type Terrain struct {
	ID    ID
	cells [Size][Size]TerrainKind
}

// ParseTerrain decodes the server's 2500-digit encoding, row-major from
// the top-left cell.
func ParseTerrain(id ID, encoded string) (*Terrain, error) {
	if len(encoded) != Size*Size {
		return nil, fmt.Errorf("terrain for %s: expected %d cells, got %d", id, Size*Size, len(encoded))
	}
	t := &Terrain{ID: id}
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c < '0' || c > '3' {
			return nil, fmt.Errorf("terrain for %s: invalid cell %q at %d", id, c, i)
		}
		t.cells[i%Size][i/Size] = TerrainKind(c - '0')
	}
	return t, nil
}

// NewTerrain returns an all-plain terrain.
func NewTerrain(id ID) *Terrain {
	return &Terrain{ID: id}
}

// At returns the kind at x, y. Out-of-range coordinates read as Wall.
func (t *Terrain) At(x, y int) TerrainKind {
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return Wall
	}
	return t.cells[x][y]
}

// Set changes one cell; only used when constructing terrain.
func (t *Terrain) Set(x, y int, k TerrainKind) {
	t.cells[x][y] = k
}

// Encode is the inverse of ParseTerrain.
func (t *Terrain) Encode() string {
	var b strings.Builder
	b.Grow(Size * Size)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			b.WriteByte('0' + byte(t.cells[x][y]))
		}
	}
	return b.String()
}
