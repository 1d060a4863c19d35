package rules

import "github.com/ormenio/engine/controller/pb"

// Colors used by the renderers. Snake colors travel on the frame so a
// client does not need to know which snake is which.
const (
	PlayerHeadColor = "green"
	PlayerBodyColor = "blue"
	EnemyHeadColor  = "brown"
	EnemyBodyColor  = "red"
	FoodColor       = "limegreen"
	ObstacleColor   = "black"
	StrokeColor     = "#ECB365"
)

func paint(s *pb.Snake, head, body string) *pb.Snake {
	s.HeadColor = head
	s.BodyColor = body
	return s
}
