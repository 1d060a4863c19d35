package pb

// Movement directions understood by Step and Snake.Move.
const (
	DirectionUp    = "up"
	DirectionDown  = "down"
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Equal checks if 2 points are the same x,y coordinate
func (p *Point) Equal(other *Point) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.X == other.X && p.Y == other.Y
}

// Clone returns a copy of the point.
func (p *Point) Clone() *Point {
	if p == nil {
		return nil
	}
	return &Point{X: p.X, Y: p.Y}
}

// Step returns the neighbouring point in the given direction. Unknown
// directions return a copy of p.
func (p *Point) Step(direction string) *Point {
	switch direction {
	case DirectionUp:
		return &Point{X: p.X, Y: p.Y - 1}
	case DirectionDown:
		return &Point{X: p.X, Y: p.Y + 1}
	case DirectionLeft:
		return &Point{X: p.X - 1, Y: p.Y}
	case DirectionRight:
		return &Point{X: p.X + 1, Y: p.Y}
	}
	return p.Clone()
}

// Opposite returns the reverse of a direction, or "" if unknown.
func Opposite(direction string) string {
	switch direction {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return ""
}

// ValidDirection reports whether direction is one of the four moves.
func ValidDirection(direction string) bool {
	return Opposite(direction) != ""
}

// ContainsPoint reports whether p is one of points.
func ContainsPoint(points []*Point, p *Point) bool {
	for _, o := range points {
		if o.Equal(p) {
			return true
		}
	}
	return false
}

func clonePoints(points []*Point) []*Point {
	if points == nil {
		return nil
	}
	out := make([]*Point, len(points))
	for i, p := range points {
		out[i] = p.Clone()
	}
	return out
}
