package pb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoint_Step(t *testing.T) {
	p := &Point{X: 3, Y: 3}
	require.Equal(t, &Point{X: 3, Y: 2}, p.Step(DirectionUp))
	require.Equal(t, &Point{X: 3, Y: 4}, p.Step(DirectionDown))
	require.Equal(t, &Point{X: 2, Y: 3}, p.Step(DirectionLeft))
	require.Equal(t, &Point{X: 4, Y: 3}, p.Step(DirectionRight))
	require.Equal(t, &Point{X: 3, Y: 3}, p.Step("nowhere"))
}

func TestOpposite(t *testing.T) {
	require.Equal(t, DirectionDown, Opposite(DirectionUp))
	require.Equal(t, DirectionLeft, Opposite(DirectionRight))
	require.Equal(t, "", Opposite("diagonal"))
	require.False(t, ValidDirection(""))
}

func TestPoint_EqualNil(t *testing.T) {
	var p *Point
	require.True(t, p.Equal(nil))
	require.False(t, p.Equal(&Point{}))
	require.False(t, (&Point{}).Equal(nil))
}
