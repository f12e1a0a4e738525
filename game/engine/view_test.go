package engine

import "testing"

func testState(snake []Cell, heading Direction, food Cell) *GameState {
	return &GameState{
		Bounds:  Bounds{Width: 6, Height: 4},
		Snake:   snake,
		Head:    snake[0],
		Heading: heading,
		Pending: heading,
		Food:    food,
		Status:  StatusRunning,
	}
}

func TestGameState_LocalGrid(t *testing.T) {
	state := testState(cells(1, 1, 2, 1), Left, Cell{X: 1, Y: 2})

	got := state.LocalGrid()
	want := []string{
		"###",
		"#@o",
		"#*.",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	view := state.GenerateLocalView()
	if len(view) != 8 {
		t.Fatalf("Expected 8 cells, got %d", len(view))
	}
	if view[0].Kind != Wall || view[2].Kind != Body || view[4].Kind != Apple {
		t.Errorf("Unexpected local view %+v", view)
	}
}

func TestGameState_RenderBoard(t *testing.T) {
	state := testState(cells(2, 2, 3, 2), Left, Cell{X: 6, Y: 4})
	board := state.RenderBoard()

	want := []string{
		"########",
		"#......#",
		"#.@o...#",
		"#......#",
		"#.....*#",
		"########",
	}
	if len(board) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(board))
	}
	for i := range want {
		if board[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], board[i])
		}
	}
}

func TestSafeTurns(t *testing.T) {
	t.Run("corner", func(t *testing.T) {
		state := testState(cells(1, 1, 2, 1), Left, Cell{X: 5, Y: 3})
		safe := SafeTurns(state)
		if len(safe) != 1 || safe[0] != Down {
			t.Errorf("Expected only Down, got %v", safe)
		}
		if got := DangerCode(AnalyzeDanger(state)); got != "DANGER" {
			t.Errorf("Expected DANGER while heading into the wall, got %s", got)
		}
	})

	t.Run("tail cell is free", func(t *testing.T) {
		state := testState(cells(2, 2, 2, 3, 3, 3, 3, 2), Up, Cell{X: 5, Y: 3})
		found := false
		for _, d := range SafeTurns(state) {
			if d == Right {
				found = true
			}
		}
		if !found {
			t.Error("Expected Right into the tail cell to be safe")
		}
	})

	t.Run("open board", func(t *testing.T) {
		state := testState(cells(3, 2), None, Cell{X: 5, Y: 3})
		if got := len(SafeTurns(state)); got != 4 {
			t.Errorf("Expected 4 safe turns, got %d", got)
		}
		if got := DangerCode(AnalyzeDanger(state)); got != "SAFE" {
			t.Errorf("Expected SAFE, got %s", got)
		}
	})

	t.Run("game over", func(t *testing.T) {
		state := testState(cells(3, 2), None, Cell{X: 5, Y: 3})
		state.GameOver = true
		if len(SafeTurns(state)) != 0 {
			t.Error("Expected no safe turns after game over")
		}
		if got := DangerCode(AnalyzeDanger(state)); got != "GAME OVER" {
			t.Errorf("Expected GAME OVER, got %s", got)
		}
	})
}

func TestFreeCellCount(t *testing.T) {
	state := testState(cells(2, 2, 3, 2, 3, 2), Left, Cell{X: 6, Y: 4})
	if got := FreeCellCount(state); got != 22 {
		t.Errorf("Expected 22 free cells, got %d", got)
	}
	if ManhattanDistance(Cell{X: 1, Y: 1}, Cell{X: 4, Y: 5}) != 7 {
		t.Error("Unexpected Manhattan distance")
	}
}
