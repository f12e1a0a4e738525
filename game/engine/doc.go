// Package engine provides the core game logic for classic Snake.
//
// The package is split in two layers. The core is a small tick machine:
//   - Cell, Direction and Bounds describe the grid
//   - Snake keeps its segments in a ring buffer, head first
//   - Food relocates onto a free interior cell
//   - RoundState advances one tick at a time and reports a TickResult
//
// GameEngine wraps a RoundState with a configuration, round IDs, player
// messages and tick history. It is what sessions store and persist.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Turn(engine.Right)
//	result := gameEngine.Tick()
//	if result.Status.Terminal() {
//		gameEngine.Reset()
//	}
//
// Game Rules:
//
// The snake starts as a single segment with no heading and waits for a
// direction. Every tick it moves one cell. Eating the apple grows it by one
// segment and respawns the apple on a cell the snake does not cover. Leaving
// the grid or running into its own body ends the round; so does filling the
// board so that no apple can be placed. The score is the snake length.
package engine
