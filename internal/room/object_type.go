package room

import (
	"encoding/json"
	"fmt"
)

// ObjectType is the closed set of room object kinds the viewer knows.
type ObjectType int

const (
	TypeSource ObjectType = iota
	TypeMineral
	TypeDeposit
	TypeSpawn
	TypeExtension
	TypeExtractor
	TypeWall
	TypeRoad
	TypeRampart
	TypeKeeperLair
	TypeController
	TypePortal
	TypeLink
	TypeStorage
	TypeTower
	TypeObserver
	TypePowerBank
	TypePowerSpawn
	TypeLab
	TypeTerminal
	TypeContainer
	TypeNuker
	TypeFactory
	TypeInvaderCore
	TypeRuin
	TypeTombstone
	TypeCreep
	TypePowerCreep
	TypeResource
	TypeConstructionSite

	numObjectTypes
)

var objectTypeNames = [numObjectTypes]string{
	TypeSource:           "source",
	TypeMineral:          "mineral",
	TypeDeposit:          "deposit",
	TypeSpawn:            "spawn",
	TypeExtension:        "extension",
	TypeExtractor:        "extractor",
	TypeWall:             "constructedWall",
	TypeRoad:             "road",
	TypeRampart:          "rampart",
	TypeKeeperLair:       "keeperLair",
	TypeController:       "controller",
	TypePortal:           "portal",
	TypeLink:             "link",
	TypeStorage:          "storage",
	TypeTower:            "tower",
	TypeObserver:         "observer",
	TypePowerBank:        "powerBank",
	TypePowerSpawn:       "powerSpawn",
	TypeLab:              "lab",
	TypeTerminal:         "terminal",
	TypeContainer:        "container",
	TypeNuker:            "nuker",
	TypeFactory:          "factory",
	TypeInvaderCore:      "invaderCore",
	TypeRuin:             "ruin",
	TypeTombstone:        "tombstone",
	TypeCreep:            "creep",
	TypePowerCreep:       "powerCreep",
	TypeResource:         "resource",
	TypeConstructionSite: "constructionSite",
}

// Dropped resources used to be sent with the resource name as their type.
var objectTypeAliases = map[string]ObjectType{
	"energy": TypeResource,
	"wall":   TypeWall,
}

// ParseObjectType maps a wire type name to an ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	for t, name := range objectTypeNames {
		if name == s {
			return ObjectType(t), nil
		}
	}
	if t, ok := objectTypeAliases[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown room object type %q", s)
}

func (t ObjectType) String() string {
	if t < 0 || t >= numObjectTypes {
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
	return objectTypeNames[t]
}

func (t ObjectType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ObjectType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseObjectType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DefaultRankOrder is the stacking order used when several objects share a
// cell: later types are drawn on top. It is display data, not protocol.
var DefaultRankOrder = []ObjectType{
	TypeRoad,
	TypeConstructionSite,
	TypeContainer,
	TypeSource,
	TypeMineral,
	TypeDeposit,
	TypeExtractor,
	TypeWall,
	TypeKeeperLair,
	TypeController,
	TypePortal,
	TypeSpawn,
	TypeExtension,
	TypeLink,
	TypeStorage,
	TypeTower,
	TypeObserver,
	TypePowerBank,
	TypePowerSpawn,
	TypeLab,
	TypeTerminal,
	TypeNuker,
	TypeFactory,
	TypeInvaderCore,
	TypeRuin,
	TypeTombstone,
	TypeResource,
	TypeRampart,
	TypeCreep,
	TypePowerCreep,
}

// RankTable assigns every ObjectType a stacking rank.
type RankTable [numObjectTypes]int

// NewRankTable ranks the given types in order. Types missing from order
// follow them in DefaultRankOrder order; duplicates keep their first rank.
func NewRankTable(order []ObjectType) RankTable {
	var table RankTable
	var seen [numObjectTypes]bool
	next := 0
	for _, list := range [][]ObjectType{order, DefaultRankOrder} {
		for _, t := range list {
			if t < 0 || t >= numObjectTypes || seen[t] {
				continue
			}
			seen[t] = true
			table[t] = next
			next++
		}
	}
	return table
}

// ParseRankOrder converts configured type names into an order.
func ParseRankOrder(names []string) ([]ObjectType, error) {
	order := make([]ObjectType, 0, len(names))
	for _, name := range names {
		t, err := ParseObjectType(name)
		if err != nil {
			return nil, err
		}
		order = append(order, t)
	}
	return order, nil
}

// Rank returns the stacking rank of t.
func (r *RankTable) Rank(t ObjectType) int {
	if t < 0 || t >= numObjectTypes {
		return len(r)
	}
	return r[t]
}
