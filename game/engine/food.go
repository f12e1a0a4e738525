package engine

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

var ErrBoardFull = errors.New("no free cell left for food")

// Rand is the source used for placement
type Rand interface {
	Intn(n int) int
}

// NewRand returns a placement source. A zero seed seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// sampleAttemptsPerCell bounds rejection sampling before falling back to
// enumerating free cells
const sampleAttemptsPerCell = 4

// Food is the single item the snake eats
type Food struct {
	cell Cell
}

// NewFood creates food at c
func NewFood(c Cell) *Food {
	return &Food{cell: c}
}

// Cell returns the food position
func (f *Food) Cell() Cell {
	return f.cell
}

// Relocate moves the food to a uniformly random interior cell that is not in
// forbidden. It returns ErrBoardFull, leaving the food where it was, when
// every interior cell is forbidden.
func (f *Food) Relocate(forbidden []Cell, b Bounds, rng Rand) error {
	area := b.Area()
	if area <= 0 {
		return ErrBoardFull
	}

	taken := make(map[Cell]bool, len(forbidden))
	for _, c := range forbidden {
		if b.Contains(c) {
			taken[c] = true
		}
	}
	if len(taken) >= area {
		return ErrBoardFull
	}

	for attempt := 0; attempt < sampleAttemptsPerCell*area; attempt++ {
		c := b.cellAt(rng.Intn(area))
		if !taken[c] {
			f.cell = c
			return nil
		}
	}

	free := make([]Cell, 0, area-len(taken))
	for i := 0; i < area; i++ {
		if c := b.cellAt(i); !taken[c] {
			free = append(free, c)
		}
	}
	f.cell = free[rng.Intn(len(free))]
	return nil
}
