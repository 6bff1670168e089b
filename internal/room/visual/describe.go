package visual

import (
	"fmt"
	"slices"
	"strings"

	"github.com/palemoky/room-viewer/internal/room"
)

// Describe renders the multi-line info text for an entry. gameTime is used
// for relative timers; users resolves owner names.
func Describe(e Entry, gameTime int64, users map[string]*room.User) string {
	var b strings.Builder
	switch e.Kind {
	case KindTerrain:
		fmt.Fprintf(&b, "terrain: %s\n", e.Terrain)
	case KindFlag:
		fmt.Fprintf(&b, "flag %s\n", e.Flag.Name)
	default:
		describeObject(&b, e.Object, gameTime, users)
	}
	return b.String()
}

func describeObject(b *strings.Builder, o *room.Object, now int64, users map[string]*room.User) {
	if o.User != "" {
		fmt.Fprintf(b, "[%s] ", username(users, o.User))
	}

	switch o.Type {
	case room.TypeCreep, room.TypePowerCreep:
		fmt.Fprintf(b, "%s %s:\n", o.Type, o.Name)
	case room.TypeSpawn:
		fmt.Fprintf(b, "spawn %s:\n", o.Name)
	case room.TypeMineral:
		fmt.Fprintf(b, "mineral: %d %s\n", o.MineralAmount, o.MineralType)
	case room.TypeResource:
		fmt.Fprintf(b, "dropped %s:\n", o.ResourceType)
	case room.TypeConstructionSite:
		fmt.Fprintf(b, "construction site for %s\n", o.StructureType)
		fmt.Fprintf(b, " progress: %d/%d\n", o.Progress, o.ProgressTotal)
		return
	case room.TypeController:
		fmt.Fprintf(b, "controller level %d:\n", o.Level)
	default:
		fmt.Fprintf(b, "%s:\n", o.Type)
	}

	fmt.Fprintf(b, " id: %s\n", o.ID)

	if o.HitsMax > 0 {
		if o.Type == room.TypeWall || o.Type == room.TypeRampart {
			if float64(o.Hits) > float64(o.HitsMax)*0.9 {
				fmt.Fprintf(b, " hits: %d/%d\n", o.Hits, o.HitsMax)
			} else {
				fmt.Fprintf(b, " hits: %d\n", o.Hits)
			}
		} else {
			fmt.Fprintf(b, " hits: %d/%d\n", o.Hits, o.HitsMax)
		}
	}
	if o.Off {
		b.WriteString(" --disabled--\n")
	}

	switch o.Type {
	case room.TypeSource:
		fmt.Fprintf(b, " energy: %d/%d\n", o.Energy, o.EnergyCapacity)
		if o.Energy != o.EnergyCapacity && o.NextRegenerationTime > 0 {
			fmt.Fprintf(b, "  regen in: %d\n", o.NextRegenerationTime-now)
		}
	case room.TypeResource:
		if o.Energy > 0 {
			fmt.Fprintf(b, " amount: %d\n", o.Energy)
		}
	case room.TypeController:
		if o.ProgressTotal > 0 {
			fmt.Fprintf(b, " progress: %d/%d\n", o.Progress, o.ProgressTotal)
		}
		if o.DowngradeTime > 0 {
			fmt.Fprintf(b, " downgrade in: %d\n", o.DowngradeTime-now)
		}
	case room.TypeCreep, room.TypePowerCreep:
		if o.Fatigue != 0 {
			fmt.Fprintf(b, " fatigue: %d\n", o.Fatigue)
		}
		if o.AgeTime > 0 {
			fmt.Fprintf(b, " life: %d\n", o.AgeTime-now)
		}
	case room.TypeTombstone:
		b.WriteString(" creep:\n")
		fmt.Fprintf(b, "  id: %s\n", o.CreepID)
		fmt.Fprintf(b, "  name: %s\n", o.CreepName)
		fmt.Fprintf(b, "  ttl: %d\n", o.CreepTicksToLive)
		if o.DeathTime > 0 {
			fmt.Fprintf(b, " died: %d\n", now-o.DeathTime)
		}
	case room.TypeRampart:
		if o.Public {
			b.WriteString(" public\n")
		}
	case room.TypeLab, room.TypeLink, room.TypeFactory:
		if o.Cooldown != 0 {
			fmt.Fprintf(b, " cooldown: %d\n", o.Cooldown)
		}
	case room.TypeNuker:
		if o.CooldownTime < now {
			b.WriteString("--ready--\n")
		} else {
			fmt.Fprintf(b, " cooldown: %d\n", o.CooldownTime-now)
		}
	}

	if o.NextDecayTime > 0 {
		fmt.Fprintf(b, " decay in: %d\n", o.NextDecayTime-now)
	}
	if o.DecayTime > 0 {
		fmt.Fprintf(b, " decay in: %d\n", o.DecayTime-now)
	}

	if len(o.Store) > 0 {
		if o.StoreCapacity > 0 {
			fmt.Fprintf(b, " capacity: %d/%d\n", o.StoreTotal(), o.StoreCapacity)
		} else {
			b.WriteString(" contents:\n")
		}
		resources := make([]string, 0, len(o.Store))
		for r := range o.Store {
			resources = append(resources, r)
		}
		slices.Sort(resources)
		for _, r := range resources {
			if o.Store[r] > 0 {
				fmt.Fprintf(b, "  %s: %d\n", r, o.Store[r])
			}
		}
	}
}

func username(users map[string]*room.User, id string) string {
	if u, ok := users[id]; ok && u.Username != "" {
		return u.Username
	}
	return "user " + id
}
