package rules

import (
	"math"

	"github.com/ormenio/engine/controller/pb"
	"github.com/pkg/errors"
)

// Board and timing constants. Intervals are in milliseconds.
const (
	CellSize = 10

	DefaultWidth  = 40
	DefaultHeight = 40
	MinWidth      = 20
	MinHeight     = 20
	MaxWidth      = 200
	MaxHeight     = 200

	PlayerIntervalStart  = 120
	EnemyIntervalStart   = 200
	FoodTickInterval     = 1000
	IntervalStepPerLevel = 5
	MinPlayerInterval    = 10

	FoodPerLevel = 5
	MaxLevel     = 8
	MinLevel     = 1

	ObstacleChains          = 7
	ObstacleMinHeadDistance = 30

	FoodLifetimeFactor = 0.027
)

var (
	// ErrNoRoom is returned when there is no free cell left for food or an
	// obstacle chain.
	ErrNoRoom = errors.New("rules: no room left on the board")
	// ErrInvalidInput is returned for inputs and settings that cannot be
	// applied.
	ErrInvalidInput = errors.New("rules: invalid input")
)

// Distance is the euclidean distance between two cells in canvas units,
// rounded to the nearest unit.
func Distance(a, b *pb.Point) int32 {
	dx := float64(a.X-b.X) * CellSize
	dy := float64(a.Y-b.Y) * CellSize
	return int32(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

// FoodLifetime is how many food ticks the food stays before it moves.
func FoodLifetime(head, food *pb.Point) int32 {
	if head == nil || food == nil {
		return 0
	}
	return int32(math.Round(FoodLifetimeFactor * float64(Distance(head, food))))
}

// ClampLevel keeps a start level inside [MinLevel, MaxLevel]. Anything below
// one falls back to the first level.
func ClampLevel(level int32) int32 {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

func inBounds(game *pb.Game, p *pb.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < game.Width && p.Y < game.Height
}

// interior excludes the outer ring of cells.
func interior(game *pb.Game, p *pb.Point) bool {
	return p.X > 0 && p.Y > 0 && p.X < game.Width-1 && p.Y < game.Height-1
}

func wrap(game *pb.Game, p *pb.Point) *pb.Point {
	return &pb.Point{
		X: (p.X%game.Width + game.Width) % game.Width,
		Y: (p.Y%game.Height + game.Height) % game.Height,
	}
}
