package room

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTerrain(t *testing.T) {
	t.Parallel()

	id := NewID("shard0", MustParseName("W1N1"))
	cells := []byte(strings.Repeat("0", Size*Size))
	cells[0] = '1'           // (0,0) wall
	cells[1] = '2'           // (1,0) swamp
	cells[Size] = '3'        // (0,1) swamp wall
	cells[Size*Size-1] = '1' // (49,49) wall
	encoded := string(cells)

	terrain, err := ParseTerrain(id, encoded)
	require.NoError(t, err)

	assert.Equal(t, id, terrain.ID)
	assert.Equal(t, Wall, terrain.At(0, 0))
	assert.Equal(t, Swamp, terrain.At(1, 0))
	assert.Equal(t, SwampWall, terrain.At(0, 1))
	assert.Equal(t, Wall, terrain.At(49, 49))
	assert.Equal(t, Plain, terrain.At(25, 25))
	assert.Equal(t, Wall, terrain.At(-1, 3), "out of range reads as wall")
	assert.Equal(t, encoded, terrain.Encode())
}

func TestParseTerrain_Invalid(t *testing.T) {
	t.Parallel()

	id := NewID("", MustParseName("E1S1"))

	_, err := ParseTerrain(id, "0123")
	assert.Error(t, err)

	_, err = ParseTerrain(id, strings.Repeat("4", Size*Size))
	assert.Error(t, err)
}
