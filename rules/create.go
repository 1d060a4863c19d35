package rules

import (
	"time"

	"github.com/ormenio/engine/controller/pb"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// Snake IDs used on every frame.
const (
	PlayerID = "player"
	EnemyID  = "enemy"
)

// CreateInitialGame creates a new game based on the create request passed in
func CreateInitialGame(req *pb.CreateRequest) (*pb.Game, []*pb.GameFrame, error) {
	if err := ValidateCreateRequest(req); err != nil {
		return nil, nil, err
	}

	game := &pb.Game{
		ID:         uuid.NewV4().String(),
		Status:     GameStatusStopped,
		Width:      req.Width,
		Height:     req.Height,
		StartLevel: ClampLevel(req.StartLevel),
		BorderWrap: req.BorderWrap,
		Created:    time.Now().Unix(),
	}
	if game.Width == 0 {
		game.Width = DefaultWidth
	}
	if game.Height == 0 {
		game.Height = DefaultHeight
	}

	frame, err := NewRound(game, 0, 1)
	if err != nil {
		return nil, nil, err
	}
	return game, []*pb.GameFrame{frame}, nil
}

// ValidateCreateRequest checks the board size. Zero means the default size.
func ValidateCreateRequest(req *pb.CreateRequest) error {
	if req.Width != 0 && (req.Width < MinWidth || req.Width > MaxWidth) {
		return errors.Wrapf(ErrInvalidInput, "width must be between %d and %d", MinWidth, MaxWidth)
	}
	if req.Height != 0 && (req.Height < MinHeight || req.Height > MaxHeight) {
		return errors.Wrapf(ErrInvalidInput, "height must be between %d and %d", MinHeight, MaxHeight)
	}
	return nil
}

// NewRound builds the first frame of a round: both snakes back at their start
// positions, no obstacles, level one speeds, fresh food, paused.
func NewRound(game *pb.Game, highScore, round int32) (*pb.GameFrame, error) {
	bottom := game.Height - 1
	frame := &pb.GameFrame{
		Player: paint(&pb.Snake{
			ID:   PlayerID,
			Name: "Player",
			Body: []*pb.Point{
				{X: 4, Y: 0}, {X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0},
			},
			Direction: pb.DirectionRight,
			Heading:   pb.DirectionRight,
		}, PlayerHeadColor, PlayerBodyColor),
		Enemy: paint(&pb.Snake{
			ID:   EnemyID,
			Name: "Enemy",
			Body: []*pb.Point{
				{X: 2, Y: bottom}, {X: 1, Y: bottom}, {X: 0, Y: bottom},
			},
			Direction: pb.DirectionRight,
			Heading:   pb.DirectionRight,
		}, EnemyHeadColor, EnemyBodyColor),
		Level:          MinLevel,
		HighScore:      highScore,
		Round:          round,
		PlayerInterval: PlayerIntervalStart,
		EnemyInterval:  EnemyIntervalStart,
		Paused:         true,
	}

	food, err := SpawnFood(game, frame)
	if err != nil {
		return nil, err
	}
	frame.Food = food
	frame.FoodLifetime = FoodLifetime(frame.Player.Head(), food)
	return frame, nil
}
