package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectType(t *testing.T) {
	t.Parallel()

	for i := ObjectType(0); i < numObjectTypes; i++ {
		got, err := ParseObjectType(i.String())
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}

	got, err := ParseObjectType("energy")
	require.NoError(t, err)
	assert.Equal(t, TypeResource, got)

	_, err = ParseObjectType("nope")
	assert.Error(t, err)
}

func TestObjectType_JSON(t *testing.T) {
	t.Parallel()

	var typ ObjectType
	require.NoError(t, json.Unmarshal([]byte(`"constructedWall"`), &typ))
	assert.Equal(t, TypeWall, typ)

	data, err := json.Marshal(TypeKeeperLair)
	require.NoError(t, err)
	assert.Equal(t, `"keeperLair"`, string(data))
}

func TestRankTable(t *testing.T) {
	t.Parallel()

	def := NewRankTable(nil)
	assert.Less(t, def.Rank(TypeRoad), def.Rank(TypeSpawn))
	assert.Less(t, def.Rank(TypeSpawn), def.Rank(TypeCreep))
	assert.Less(t, def.Rank(TypeRampart), def.Rank(TypeCreep))

	custom := NewRankTable([]ObjectType{TypeCreep, TypeRoad, TypeCreep})
	assert.Equal(t, 0, custom.Rank(TypeCreep))
	assert.Equal(t, 1, custom.Rank(TypeRoad))
	assert.Equal(t, 2, custom.Rank(TypeConstructionSite), "remaining types follow the default order")

	seen := map[int]bool{}
	for i := ObjectType(0); i < numObjectTypes; i++ {
		r := custom.Rank(i)
		assert.False(t, seen[r], "rank %d assigned twice", r)
		seen[r] = true
	}
}

func TestParseRankOrder(t *testing.T) {
	t.Parallel()

	order, err := ParseRankOrder([]string{"road", "creep"})
	require.NoError(t, err)
	assert.Equal(t, []ObjectType{TypeRoad, TypeCreep}, order)

	_, err = ParseRankOrder([]string{"road", "banana"})
	assert.Error(t, err)
}
