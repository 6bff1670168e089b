package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, err := ParseFlags("Flag1~1~2~25~30|home~10~10~3~4")
	require.NoError(t, err)
	assert.Equal(t, []Flag{
		{Name: "Flag1", Color: 1, SecondaryColor: 2, X: 25, Y: 30},
		{Name: "home", Color: 10, SecondaryColor: 10, X: 3, Y: 4},
	}, flags)

	flags, err = ParseFlags("")
	require.NoError(t, err)
	assert.Empty(t, flags)

	_, err = ParseFlags("broken~1~2")
	assert.Error(t, err)

	_, err = ParseFlags("f~1~2~x~4")
	assert.Error(t, err)
}
