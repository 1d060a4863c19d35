package commands

import (
	"testing"

	termbox "github.com/nsf/termbox-go"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/stretchr/testify/require"
)

func testFrame() *pb.GameFrame {
	return &pb.GameFrame{
		Turn: 3,
		Player: &pb.Snake{
			Body:      []*pb.Point{{X: 2, Y: 1}, {X: 1, Y: 1}},
			HeadColor: rules.PlayerHeadColor,
			BodyColor: rules.PlayerBodyColor,
		},
		Enemy: &pb.Snake{
			Body:      []*pb.Point{{X: 5, Y: 5}},
			HeadColor: rules.EnemyHeadColor,
			BodyColor: rules.EnemyBodyColor,
		},
		Food:         &pb.Point{X: 7, Y: 7},
		Obstacles:    []*pb.Point{{X: 0, Y: 9}},
		FoodAge:      4,
		FoodLifetime: 10,
		Level:        2,
		Round:        1,
		Started:      true,
	}
}

func TestBoardCells(t *testing.T) {
	cells := boardCells(testFrame())
	require.Len(t, cells, 5)

	require.Equal(t, cell{0, 9, '▓', termbox.ColorWhite, bgColor}, cells[0])
	require.Equal(t, '●', cells[1].ch)
	require.Equal(t, termbox.ColorYellow, cells[2].bg)

	// Player last, head on top.
	require.Equal(t, termbox.ColorBlue, cells[3].bg)
	head := cells[4]
	require.Equal(t, 2, head.x)
	require.Equal(t, 1, head.y)
	require.Equal(t, termbox.ColorGreen|termbox.AttrBold, head.bg)
}

func TestBoardCellsEmpty(t *testing.T) {
	require.Empty(t, boardCells(&pb.GameFrame{}))
}

func TestTermColorUnknown(t *testing.T) {
	require.Equal(t, defaultColor, termColor("mauve"))
}

func TestHud(t *testing.T) {
	f := testFrame()
	require.Contains(t, hud(f), "Level 2")
	require.Contains(t, hud(f), "Food 6")
	require.NotContains(t, hud(f), "Paused")

	f.Paused = true
	require.Contains(t, hud(f), "Paused")

	f.Started = false
	require.Contains(t, hud(f), "Press space to start")

	f.Death = &pb.Death{Cause: rules.DeathCauseWallCollision, Score: 9}
	require.Contains(t, hud(f), "Game over (wall-collision, scored 9)")
}

func TestKeyInput(t *testing.T) {
	key := func(k termbox.Key) termbox.Event { return termbox.Event{Type: termbox.EventKey, Key: k} }

	require.Equal(t, []*pb.Input{{Type: rules.InputMove, Direction: pb.DirectionUp}}, keyInput(key(termbox.KeyArrowUp)))
	require.Equal(t, []*pb.Input{{Type: rules.InputMove, Direction: pb.DirectionLeft}}, keyInput(key(termbox.KeyArrowLeft)))
	require.Equal(t, []*pb.Input{{Type: rules.InputQuit}}, keyInput(key(termbox.KeyEsc)))
	require.Equal(t, []*pb.Input{{Type: rules.InputQuit}}, keyInput(termbox.Event{Type: termbox.EventKey, Ch: 'q'}))
	require.Nil(t, keyInput(termbox.Event{Type: termbox.EventResize}))
	require.Nil(t, keyInput(termbox.Event{Type: termbox.EventKey, Ch: 'x'}))

	in := keyInput(key(termbox.KeySpace))
	require.Len(t, in, 2)
	require.Equal(t, rules.InputSettings, in[0].Type)
	require.Equal(t, rules.InputToggle, in[1].Type)
}
