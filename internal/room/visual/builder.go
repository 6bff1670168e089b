package visual

import (
	"slices"
	"strings"

	"github.com/palemoky/room-viewer/internal/room"
)

// Blank is drawn for empty cells.
const Blank = " "

// Room is a disposable snapshot of a replica, safe to hand to another
// goroutine: it shares no mutable state with the replica.
type Room struct {
	LastUpdateTime *int64
	ID             room.ID
	Cells          [room.Size][room.Size][]Entry // indexed [x][y]
	Rows           []string
	Users          map[string]*room.User
}

// Cell returns the sorted entries at x, y.
func (r *Room) Cell(x, y int) []Entry {
	if x < 0 || y < 0 || x >= room.Size || y >= room.Size {
		return nil
	}
	return r.Cells[x][y]
}

// Top returns the highest entry of a cell.
func (r *Room) Top(x, y int) (Entry, bool) {
	cell := r.Cell(x, y)
	if len(cell) == 0 {
		return Entry{}, false
	}
	return cell[len(cell)-1], true
}

// Builder turns replicas into Rooms.
type Builder struct {
	ranks room.RankTable
}

// NewBuilder uses order to stack objects; nil means room.DefaultRankOrder.
func NewBuilder(order []room.ObjectType) *Builder {
	return &Builder{ranks: room.NewRankTable(order)}
}

// Build derives a fresh Room from r. It does not modify r.
func (b *Builder) Build(r *room.Replica) *Room {
	v := &Room{ID: r.ID}
	if r.LastUpdateTime != nil {
		t := *r.LastUpdateTime
		v.LastUpdateTime = &t
	}

	if r.Terrain != nil {
		for x := 0; x < room.Size; x++ {
			for y := 0; y < room.Size; y++ {
				switch r.Terrain.At(x, y) {
				case room.Swamp:
					v.add(x, y, Entry{Kind: KindTerrain, Terrain: TerrainSwamp, X: x, Y: y})
				case room.Wall, room.SwampWall:
					v.add(x, y, Entry{Kind: KindTerrain, Terrain: TerrainWall, X: x, Y: y})
				}
			}
		}
	}

	for _, f := range r.Flags {
		v.add(f.X, f.Y, Entry{Kind: KindFlag, Flag: f, X: f.X, Y: f.Y})
	}

	for _, obj := range r.Objects {
		v.add(obj.X, obj.Y, Entry{
			Kind:   KindObject,
			Object: obj.Clone(),
			X:      obj.X,
			Y:      obj.Y,
			rank:   b.ranks.Rank(obj.Type),
		})
	}

	v.Users = make(map[string]*room.User, len(r.Users))
	for id, u := range r.Users {
		v.Users[id] = u.Clone()
	}

	v.Rows = make([]string, room.Size)
	var row strings.Builder
	for y := 0; y < room.Size; y++ {
		row.Reset()
		for x := 0; x < room.Size; x++ {
			cell := v.Cells[x][y]
			slices.SortFunc(cell, Compare)
			if len(cell) == 0 {
				row.WriteString(Blank)
			} else {
				row.WriteString(cell[len(cell)-1].Glyph())
			}
		}
		v.Rows[y] = row.String()
	}
	return v
}

// add appends e to its cell. Entries outside the room are dropped.
func (r *Room) add(x, y int, e Entry) {
	if x < 0 || y < 0 || x >= room.Size || y >= room.Size {
		return
	}
	r.Cells[x][y] = append(r.Cells[x][y], e)
}
