package main

import "github.com/wricardo/mcp-training/snakegame/game/engine"

// nextMove picks the autopilot heading. Among the turns that survive the next
// tick it keeps those that leave room for the whole body, then heads for the
// food. None means no turn survives.
func nextMove(state *engine.GameState) engine.Direction {
	safe := engine.SafeTurns(state)
	if len(safe) == 0 {
		return engine.None
	}

	head := state.Snake[0]
	need := len(state.Snake)

	best := engine.None
	bestRoomy := false
	bestDist := 0
	for _, d := range safe {
		next := head.Add(d)
		roomy := reachable(state, next, need) >= need
		dist := engine.ManhattanDistance(next, state.Food)

		switch {
		case best == engine.None:
		case roomy && !bestRoomy:
		case roomy == bestRoomy && dist < bestDist:
		case roomy == bestRoomy && dist == bestDist && d == state.Heading:
		default:
			continue
		}
		best, bestRoomy, bestDist = d, roomy, dist
	}
	return best
}

// reachable counts the free cells reachable from start after the head moves
// there, stopping once limit is reached
func reachable(state *engine.GameState, start engine.Cell, limit int) int {
	blocked := make(map[engine.Cell]bool, len(state.Snake)+1)
	for i := 0; i < len(state.Snake)-1; i++ {
		blocked[state.Snake[i]] = true
	}

	seen := map[engine.Cell]bool{start: true}
	queue := []engine.Cell{start}
	count := 0
	for len(queue) > 0 && count < limit {
		c := queue[0]
		queue = queue[1:]
		count++
		for _, d := range engine.Directions {
			n := c.Add(d)
			if seen[n] || blocked[n] || !state.Bounds.Contains(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return count
}
