package engine

import (
	"errors"
	"testing"
)

func TestFood_RelocateAvoidsForbidden(t *testing.T) {
	b := Bounds{Width: 5, Height: 5}
	rng := NewRand(7)
	forbidden := cells(1, 1, 2, 1, 3, 1, 4, 1, 5, 1)

	f := NewFood(Cell{X: 1, Y: 1})
	for i := 0; i < 200; i++ {
		if err := f.Relocate(forbidden, b, rng); err != nil {
			t.Fatalf("Relocate failed: %v", err)
		}
		if !b.Contains(f.Cell()) {
			t.Fatalf("Food left the grid: %+v", f.Cell())
		}
		if f.Cell().Y == 1 {
			t.Fatalf("Food placed on a forbidden cell: %+v", f.Cell())
		}
	}
}

func TestFood_RelocateFallsBackToFreeCells(t *testing.T) {
	b := Bounds{Width: 3, Height: 3}
	var forbidden []Cell
	for i := 0; i < b.Area(); i++ {
		if c := b.cellAt(i); c != (Cell{X: 3, Y: 3}) {
			forbidden = append(forbidden, c)
		}
	}

	// Always drawing 0 never hits the free cell by sampling.
	f := &Food{}
	if err := f.Relocate(forbidden, b, &seqRand{values: []int{0}}); err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}
	if f.Cell() != (Cell{X: 3, Y: 3}) {
		t.Errorf("Expected the only free cell (3,3), got %+v", f.Cell())
	}
}

func TestFood_RelocateBoardFull(t *testing.T) {
	b := Bounds{Width: 2, Height: 1}
	f := NewFood(Cell{X: 2, Y: 1})

	err := f.Relocate(cells(1, 1, 2, 1), b, &seqRand{})
	if !errors.Is(err, ErrBoardFull) {
		t.Fatalf("Expected ErrBoardFull, got %v", err)
	}
	if f.Cell() != (Cell{X: 2, Y: 1}) {
		t.Errorf("Expected food to stay put, got %+v", f.Cell())
	}
}

func TestFood_OutOfBoundsForbiddenIgnored(t *testing.T) {
	b := Bounds{Width: 2, Height: 1}
	f := &Food{}
	// A head outside the grid does not use up a free cell.
	if err := f.Relocate(cells(0, 1, 1, 1), b, &seqRand{}); err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}
	if f.Cell() != (Cell{X: 2, Y: 1}) {
		t.Errorf("Expected (2,1), got %+v", f.Cell())
	}
}
