package engine

// ManhattanDistance calculates the Manhattan distance between two cells
func ManhattanDistance(from, to Cell) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// blockedNextTick returns the cells the head may not enter on the next tick.
// The last segment is always vacated: either the real tail moves on or the
// duplicate left by growth is dropped.
func (gs *GameState) blockedNextTick() map[Cell]bool {
	blocked := make(map[Cell]bool, len(gs.Snake))
	for i := 0; i < len(gs.Snake)-1; i++ {
		blocked[gs.Snake[i]] = true
	}
	return blocked
}

// SafeTurns returns the accepted directions whose next cell is neither wall
// nor body
func SafeTurns(state *GameState) []Direction {
	if state.GameOver || len(state.Snake) == 0 {
		return []Direction{}
	}
	head := state.Snake[0]
	blocked := state.blockedNextTick()

	safe := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if len(state.Snake) > 1 && d == state.Heading.Opposite() {
			continue
		}
		next := head.Add(d)
		if !state.Bounds.Contains(next) || blocked[next] {
			continue
		}
		safe = append(safe, d)
	}
	return safe
}

// FreeCellCount counts interior cells not covered by the snake
func FreeCellCount(state *GameState) int {
	seen := make(map[Cell]bool, len(state.Snake))
	for _, c := range state.Snake {
		if state.Bounds.Contains(c) {
			seen[c] = true
		}
	}
	return state.Bounds.Area() - len(seen)
}

// AnalyzeDanger assesses how boxed in the head is
func AnalyzeDanger(state *GameState) string {
	if state.GameOver {
		return "GAME OVER: Round has ended"
	}
	if len(state.Snake) == 1 && state.Heading == None {
		return "SAFE: Snake is waiting for a direction"
	}

	safe := SafeTurns(state)
	next := Cell{}
	pendingSafe := false
	if len(state.Snake) > 0 {
		next = state.Snake[0].Add(state.Pending)
	}
	for _, d := range safe {
		if d == state.Pending {
			pendingSafe = true
		}
	}

	switch {
	case len(safe) == 0:
		return "DANGER: No safe move left!"
	case !pendingSafe && state.Pending != None:
		return "DANGER: Current heading leads into " + string(state.KindAt(next)) + ", turn now!"
	case len(safe) == 1:
		return "CAUTION: Only one safe move"
	}
	return "SAFE: Multiple safe moves"
}

// DangerCode reduces an AnalyzeDanger text to its leading code
func DangerCode(text string) string {
	for i, r := range text {
		if r == ':' {
			return text[:i]
		}
	}
	if text == "" {
		return "UNKNOWN"
	}
	return text
}
