package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDirection = errors.New("invalid direction")

// Cell is a coordinate on the play grid, in grid units
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one step away in direction d
func (c Cell) Add(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is a snake heading
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four movement directions in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// Delta returns the unit step of the direction
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reversed direction. None is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseDirection it
// accepts "none" (and the empty string) so persisted headings round-trip.
func (d *Direction) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" || s == "none" {
		*d = None
		return nil
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses player input. Arrow words and WASD letters are
// accepted; "none" is not, external input can never stop the snake.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Bounds is the interior of the play grid. Interior cells run from 1 to
// Width and 1 to Height; row and column 0 and Width+1/Height+1 are wall.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether c is an interior cell
func (b Bounds) Contains(c Cell) bool {
	return c.X >= 1 && c.X <= b.Width && c.Y >= 1 && c.Y <= b.Height
}

// Area returns the number of interior cells
func (b Bounds) Area() int {
	return b.Width * b.Height
}

// cellAt maps an index in [0, Area) to an interior cell
func (b Bounds) cellAt(i int) Cell {
	return Cell{X: i%b.Width + 1, Y: i/b.Width + 1}
}
