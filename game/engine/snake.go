package engine

// Snake is the player-controlled body, head first
type Snake struct {
	body    *body
	heading Direction
	pending Direction
	grown   bool
}

// NewSnake creates a single-segment snake at start with heading None
func NewSnake(start Cell) *Snake {
	b := newBody(16)
	b.pushFront(start)
	return &Snake{body: b}
}

// newSnakeFromSegments rebuilds a snake from head-first segments
func newSnakeFromSegments(segments []Cell, heading, pending Direction, grown bool) *Snake {
	b := newBody(len(segments) * 2)
	for _, c := range segments {
		b.pushBack(c)
	}
	return &Snake{body: b, heading: heading, pending: pending, grown: grown}
}

// Head returns the head cell
func (s *Snake) Head() Cell {
	return s.body.at(0)
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return s.body.len()
}

// Heading returns the direction applied by the last move
func (s *Snake) Heading() Direction {
	return s.heading
}

// Pending returns the direction the next move will use
func (s *Snake) Pending() Direction {
	return s.pending
}

// Growing reports whether the next move keeps the tail
func (s *Snake) Growing() bool {
	return s.grown
}

// RequestDirection sets the pending heading. A reversal onto the neck is
// ignored once the snake is longer than one segment.
func (s *Snake) RequestDirection(d Direction) bool {
	if s.Len() > 1 && d == s.heading.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// Move advances the snake one cell in direction d. None leaves it in place.
func (s *Snake) Move(d Direction) {
	if d == None {
		return
	}
	s.body.pushFront(s.Head().Add(d))
	// Grow already appended a copy of the tail; dropping it keeps the real one.
	s.body.popBack()
	s.heading = d
	s.grown = false
}

// Grow makes the next move keep the tail. The length counts the new segment
// right away. Repeated calls before the next move have no effect.
func (s *Snake) Grow() {
	if s.grown {
		return
	}
	s.body.pushBack(s.body.at(s.body.len() - 1))
	s.grown = true
}

// Contains reports whether any segment, head included, is on c
func (s *Snake) Contains(c Cell) bool {
	for i := 0; i < s.body.len(); i++ {
		if s.body.at(i) == c {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head shares a cell with the rest of the body
func (s *Snake) HitsSelf() bool {
	head := s.Head()
	for i := 1; i < s.body.len(); i++ {
		if s.body.at(i) == head {
			return true
		}
	}
	return false
}

// OutOfBounds reports whether the head left the interior
func (s *Snake) OutOfBounds(b Bounds) bool {
	return !b.Contains(s.Head())
}

// Segments returns a copy of the body, head first
func (s *Snake) Segments() []Cell {
	return s.body.slice()
}
