// Package visual derives the renderable grid of a room from its replica.
package visual

import (
	"cmp"

	"github.com/palemoky/room-viewer/internal/room"
)

// EntryKind orders entries inside a cell: terrain below flags below objects.
type EntryKind int

const (
	KindTerrain EntryKind = iota
	KindFlag
	KindObject
)

// TerrainKind is the terrain worth drawing; plain ground is not an entry.
type TerrainKind int

const (
	TerrainSwamp TerrainKind = iota
	TerrainWall
)

func (k TerrainKind) String() string {
	if k == TerrainWall {
		return "wall"
	}
	return "swamp"
}

// Entry is one renderable item in a cell. Exactly one of the kind-specific
// fields is set.
type Entry struct {
	Kind EntryKind

	Terrain TerrainKind
	X, Y    int

	Flag room.Flag

	Object *room.Object
	rank   int
}

// Compare is the total order used to stack a cell.
func Compare(a, b Entry) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	switch a.Kind {
	case KindTerrain:
		if c := cmp.Compare(a.Terrain, b.Terrain); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	case KindFlag:
		return cmp.Compare(a.Flag.Name, b.Flag.Name)
	default:
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Object.ID, b.Object.ID)
	}
}

// Equal compares entries by identity: objects match on rank and id only,
// so an object stays the same entry while its other fields change.
func Equal(a, b Entry) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindTerrain:
		return a.Terrain == b.Terrain && a.X == b.X && a.Y == b.Y
	case KindFlag:
		return a.Flag == b.Flag
	default:
		return a.rank == b.rank && a.Object.ID == b.Object.ID
	}
}

// Glyph returns the single-cell symbol drawn for the entry.
func (e Entry) Glyph() string {
	switch e.Kind {
	case KindTerrain:
		if e.Terrain == TerrainWall {
			return "█"
		}
		return "~"
	case KindFlag:
		return "F"
	default:
		return objectGlyph(e.Object.Type)
	}
}

var objectGlyphs = map[room.ObjectType]string{
	room.TypeContainer:        "B",
	room.TypeController:       "C",
	room.TypeCreep:            "⚬",
	room.TypePowerCreep:       "◉",
	room.TypeExtension:        "E",
	room.TypeExtractor:        "X",
	room.TypeKeeperLair:       "K",
	room.TypeLab:              "L",
	room.TypeLink:             "I",
	room.TypeMineral:          "M",
	room.TypeDeposit:          "D",
	room.TypeNuker:            "N",
	room.TypeObserver:         "O",
	room.TypePortal:           "P",
	room.TypePowerBank:        "B",
	room.TypePowerSpawn:       "R",
	room.TypeRampart:          "[",
	room.TypeResource:         ".",
	room.TypeRoad:             "-",
	room.TypeSource:           "S",
	room.TypeSpawn:            "P",
	room.TypeStorage:          "O",
	room.TypeTerminal:         "T",
	room.TypeTower:            "♜",
	room.TypeTombstone:        "†",
	room.TypeRuin:             "r",
	room.TypeWall:             "W",
	room.TypeFactory:          "Y",
	room.TypeInvaderCore:      "!",
	room.TypeConstructionSite: "+",
}

func objectGlyph(t room.ObjectType) string {
	if g, ok := objectGlyphs[t]; ok {
		return g
	}
	return "?"
}
