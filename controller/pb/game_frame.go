package pb

// Clone returns a deep copy of the frame, rules never mutate a frame that has
// already been handed out.
func (gf *GameFrame) Clone() *GameFrame {
	if gf == nil {
		return nil
	}
	c := *gf
	c.Player = gf.Player.Clone()
	c.Enemy = gf.Enemy.Clone()
	c.Food = gf.Food.Clone()
	c.Obstacles = clonePoints(gf.Obstacles)
	if gf.Death != nil {
		d := *gf.Death
		c.Death = &d
	}
	return &c
}

// Score is the number shown to the player: food eaten this round plus the
// bonus granted by the start level.
func (gf *GameFrame) Score() int32 {
	return gf.Eaten + gf.StartScore
}

// Occupied returns every cell covered by a snake or an obstacle.
func (gf *GameFrame) Occupied() []*Point {
	var points []*Point
	if gf.Player != nil {
		points = append(points, gf.Player.Body...)
	}
	if gf.Enemy != nil {
		points = append(points, gf.Enemy.Body...)
	}
	return append(points, gf.Obstacles...)
}
