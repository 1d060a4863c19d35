package pb

// Move the snake 1 space in the specified direction. The new head is pushed
// to the front and the tail is dropped so the length stays the same. An
// unknown direction keeps the current heading.
func (s *Snake) Move(direction string) {
	if !ValidDirection(direction) {
		direction = s.Heading
	}
	h := s.Head()
	if h == nil || !ValidDirection(direction) {
		return
	}
	s.Body = append([]*Point{h.Step(direction)}, s.Body[:len(s.Body)-1]...)
	s.Heading = direction
}

// MoveTo pushes next as the new head and drops the tail.
func (s *Snake) MoveTo(next *Point, direction string) {
	if len(s.Body) == 0 {
		s.Body = []*Point{next}
		s.Heading = direction
		return
	}
	s.Body = append([]*Point{next}, s.Body[:len(s.Body)-1]...)
	s.Heading = direction
}

// Grow appends a segment on the tail, the snake gets one longer on its next
// move.
func (s *Snake) Grow() {
	t := s.Tail()
	if t == nil {
		return
	}
	s.Body = append(s.Body, t.Clone())
}

// Shrink removes the last segment. It returns false without changing the
// snake when only the head is left.
func (s *Snake) Shrink() bool {
	if len(s.Body) <= 1 {
		return false
	}
	s.Body = s.Body[:len(s.Body)-1]
	return true
}

// Head returns the first point in the body
func (s *Snake) Head() *Point {
	if s == nil || len(s.Body) == 0 {
		return nil
	}
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() *Point {
	if s == nil || len(s.Body) == 0 {
		return nil
	}
	return s.Body[len(s.Body)-1]
}

// Occupies reports whether any segment from index from onwards is on p.
func (s *Snake) Occupies(p *Point, from int) bool {
	if s == nil {
		return false
	}
	for i := from; i < len(s.Body); i++ {
		if s.Body[i].Equal(p) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the snake.
func (s *Snake) Clone() *Snake {
	if s == nil {
		return nil
	}
	c := *s
	c.Body = clonePoints(s.Body)
	return &c
}
