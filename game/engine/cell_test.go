package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDirection_DeltaAndOpposite(t *testing.T) {
	tests := []struct {
		dir      Direction
		dx, dy   int
		opposite Direction
	}{
		{None, 0, 0, None},
		{Up, 0, -1, Down},
		{Down, 0, 1, Up},
		{Left, -1, 0, Right},
		{Right, 1, 0, Left},
	}

	for _, test := range tests {
		t.Run(test.dir.String(), func(t *testing.T) {
			dx, dy := test.dir.Delta()
			if dx != test.dx || dy != test.dy {
				t.Errorf("Expected delta (%d,%d), got (%d,%d)", test.dx, test.dy, dx, dy)
			}
			if test.dir.Opposite() != test.opposite {
				t.Errorf("Expected opposite %s, got %s", test.opposite, test.dir.Opposite())
			}
		})
	}
}

func TestCell_Add(t *testing.T) {
	c := Cell{X: 10, Y: 10}
	if got := c.Add(Right); got != (Cell{X: 11, Y: 10}) {
		t.Errorf("Expected (11,10), got %+v", got)
	}
	if got := c.Add(Up); got != (Cell{X: 10, Y: 9}) {
		t.Errorf("Expected (10,9), got %+v", got)
	}
	if got := c.Add(None); got != c {
		t.Errorf("Expected None to keep the cell, got %+v", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
		err   bool
	}{
		{"up", Up, false},
		{"UP", Up, false},
		{" left ", Left, false},
		{"w", Up, false},
		{"a", Left, false},
		{"s", Down, false},
		{"D", Right, false},
		{"none", None, true},
		{"", None, true},
		{"north", None, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseDirection(test.input)
			if test.err {
				if !errors.Is(err, ErrInvalidDirection) {
					t.Errorf("Expected ErrInvalidDirection for %q, got %v", test.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("Expected %s, got %s", test.want, got)
			}
		})
	}
}

func TestDirection_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Heading Direction `json:"heading"`
	}{Left})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"heading":"left"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var decoded struct {
		Heading Direction `json:"heading"`
	}
	if err := json.Unmarshal([]byte(`{"heading":"none"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal of none failed: %v", err)
	}
	if decoded.Heading != None {
		t.Errorf("Expected None, got %s", decoded.Heading)
	}
	if err := json.Unmarshal([]byte(`{"heading":"sideways"}`), &decoded); err == nil {
		t.Error("Expected error for unknown heading")
	}
}

func TestBounds(t *testing.T) {
	b := Bounds{Width: 39, Height: 29}

	if b.Area() != 39*29 {
		t.Errorf("Expected area %d, got %d", 39*29, b.Area())
	}

	inside := []Cell{{1, 1}, {39, 29}, {20, 15}}
	for _, c := range inside {
		if !b.Contains(c) {
			t.Errorf("Expected %+v inside", c)
		}
	}
	outside := []Cell{{0, 5}, {40, 5}, {5, 0}, {5, 30}}
	for _, c := range outside {
		if b.Contains(c) {
			t.Errorf("Expected %+v outside", c)
		}
	}

	seen := make(map[Cell]bool)
	for i := 0; i < b.Area(); i++ {
		c := b.cellAt(i)
		if !b.Contains(c) {
			t.Fatalf("cellAt(%d) = %+v is outside", i, c)
		}
		seen[c] = true
	}
	if len(seen) != b.Area() {
		t.Errorf("Expected cellAt to cover %d cells, covered %d", b.Area(), len(seen))
	}
}
