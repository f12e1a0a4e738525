package engine

import "testing"

func TestSnake_MoveWithoutHeading(t *testing.T) {
	s := NewSnake(Cell{X: 10, Y: 10})
	s.Move(None)
	if s.Head() != (Cell{X: 10, Y: 10}) || s.Len() != 1 {
		t.Errorf("Expected snake to stay put, got %v", s.Segments())
	}
	if s.Heading() != None {
		t.Errorf("Expected heading None, got %s", s.Heading())
	}
}

func TestSnake_MoveKeepsLength(t *testing.T) {
	s := newSnakeFromSegments(cells(5, 5, 4, 5, 3, 5), Right, Right, false)
	s.Move(Right)

	want := cells(6, 5, 5, 5, 4, 5)
	got := s.Segments()
	if len(got) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSnake_Grow(t *testing.T) {
	s := newSnakeFromSegments(cells(5, 5, 4, 5), Right, Right, false)

	s.Grow()
	if s.Len() != 3 {
		t.Fatalf("Expected length 3 right after growing, got %d", s.Len())
	}
	s.Grow()
	if s.Len() != 3 {
		t.Errorf("Expected repeated Grow before a move to be ignored, got length %d", s.Len())
	}
	if !s.Growing() {
		t.Error("Expected snake to report growing")
	}

	s.Move(Right)
	want := cells(6, 5, 5, 5, 4, 5)
	got := s.Segments()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v after growing move, got %v", want, got)
		}
	}
	if s.Growing() {
		t.Error("Expected growth flag cleared by Move")
	}

	s.Move(Right)
	if s.Len() != 3 {
		t.Errorf("Expected length to stay 3, got %d", s.Len())
	}
}

func TestSnake_RequestDirection(t *testing.T) {
	t.Run("single segment accepts any direction", func(t *testing.T) {
		s := NewSnake(Cell{X: 3, Y: 3})
		s.Move(Right)
		for _, d := range Directions {
			if !s.RequestDirection(d) {
				t.Errorf("Expected %s accepted", d)
			}
		}
	})

	t.Run("longer snake rejects reversal", func(t *testing.T) {
		s := newSnakeFromSegments(cells(5, 5, 4, 5), Right, Right, false)
		if s.RequestDirection(Left) {
			t.Error("Expected reversal rejected")
		}
		if s.Pending() != Right {
			t.Errorf("Expected pending unchanged, got %s", s.Pending())
		}
		if !s.RequestDirection(Up) {
			t.Error("Expected perpendicular turn accepted")
		}
	})

	t.Run("guard uses applied heading", func(t *testing.T) {
		// Up then Left within one tick must not turn a rightward snake around.
		s := newSnakeFromSegments(cells(5, 5, 4, 5, 3, 5), Right, Right, false)
		s.RequestDirection(Up)
		if s.RequestDirection(Left) {
			t.Error("Expected Left rejected while the applied heading is Right")
		}
		if s.Pending() != Up {
			t.Errorf("Expected pending Up, got %s", s.Pending())
		}
	})
}

func TestSnake_Collisions(t *testing.T) {
	b := Bounds{Width: 10, Height: 10}

	s := newSnakeFromSegments(cells(1, 5, 2, 5), Left, Left, false)
	s.Move(Left)
	if !s.OutOfBounds(b) {
		t.Error("Expected head at x=0 to be out of bounds")
	}

	loop := newSnakeFromSegments(cells(5, 5, 5, 6, 6, 6, 6, 5, 6, 4), Up, Right, false)
	loop.Move(Right)
	if !loop.HitsSelf() {
		t.Errorf("Expected self hit, segments %v", loop.Segments())
	}

	square := newSnakeFromSegments(cells(5, 5, 5, 6, 6, 6, 6, 5), Up, Right, false)
	square.Move(Right)
	if square.HitsSelf() {
		t.Error("Expected moving into the vacated tail cell to be safe")
	}

	if !square.Contains(Cell{X: 6, Y: 6}) || square.Contains(Cell{X: 9, Y: 9}) {
		t.Error("Contains reported wrong occupancy")
	}
}
