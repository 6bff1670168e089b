package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/room-viewer/internal/room"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	users := map[string]*room.User{"u1": {Username: "alice"}}

	tests := []struct {
		name     string
		entry    Entry
		contains []string
	}{
		{
			name:     "terrain",
			entry:    Entry{Kind: KindTerrain, Terrain: TerrainSwamp},
			contains: []string{"terrain: swamp"},
		},
		{
			name:     "flag",
			entry:    Entry{Kind: KindFlag, Flag: room.Flag{Name: "home"}},
			contains: []string{"flag home"},
		},
		{
			name: "owned creep",
			entry: Entry{Kind: KindObject, Object: &room.Object{
				ID: "c1", Type: room.TypeCreep, User: "u1", Name: "Bob",
				Hits: 50, HitsMax: 100, AgeTime: 1500,
				Store: map[string]int{"energy": 20, "H": 0}, StoreCapacity: 50,
			}},
			contains: []string{"[alice] creep Bob:", " id: c1", " hits: 50/100", " life: 500", " capacity: 20/50", "  energy: 20"},
		},
		{
			name: "unknown owner",
			entry: Entry{Kind: KindObject, Object: &room.Object{
				ID: "s1", Type: room.TypeSpawn, User: "u9", Name: "Spawn1",
			}},
			contains: []string{"[user u9] spawn Spawn1:"},
		},
		{
			name: "source regen",
			entry: Entry{Kind: KindObject, Object: &room.Object{
				ID: "src", Type: room.TypeSource, Energy: 100, EnergyCapacity: 3000, NextRegenerationTime: 1010,
			}},
			contains: []string{"source:", " energy: 100/3000", "  regen in: 10"},
		},
		{
			name: "weak wall",
			entry: Entry{Kind: KindObject, Object: &room.Object{
				ID: "w", Type: room.TypeWall, Hits: 10, HitsMax: 300000000,
			}},
			contains: []string{"constructedWall:", " hits: 10\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text := Describe(tt.entry, 1000, users)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
		})
	}
}
