package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetStatus() RoundStatus

	// Steering and simulation
	Turn(d Direction) bool
	Tick() TickResult
	BulkTick(dirs []Direction) []TickResult
	GetPossibleTurns() []Direction

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetTickHistory() []TickHistoryEntry
	GetCurrentTicks() []TickHistoryEntry
	GetLastTick() *TickHistoryEntry

	// Local view
	GetLocalView() []SurroundingCell
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	config  *GameConfig
	rng     Rand
	round   *RoundState
	roundID string
	message string

	history      []TickHistoryEntry
	current      []TickHistoryEntry
	totalTicks   int
	currentTicks int
	rounds       int
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return newEngine(config, NewRand(config.Seed))
}

// NewEngineWithRand creates an engine whose placement draws from rng
func NewEngineWithRand(config *GameConfig, rng Rand) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return newEngine(config, rng)
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultGameConfig()
	engine, err := newEngine(config, NewRand(config.Seed))
	if err != nil {
		// The classic board always has room for a snake and an apple.
		panic(err)
	}
	return engine
}

func newEngine(config *GameConfig, rng Rand) (*GameEngine, error) {
	engine := &GameEngine{
		config:  config,
		rng:     rng,
		history: []TickHistoryEntry{},
		current: []TickHistoryEntry{},
	}
	if err := engine.startRound(); err != nil {
		return nil, err
	}
	return engine, nil
}

// startRound replaces the round with a fresh one
func (e *GameEngine) startRound() error {
	round, err := NewRound(e.config.GridWidth, e.config.GridHeight, e.rng)
	if err != nil {
		return err
	}
	e.round = round
	e.roundID = uuid.NewString()
	e.message = e.config.Messages.Welcome
	e.current = []TickHistoryEntry{}
	e.currentTicks = 0
	e.rounds++
	return nil
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	snap := e.round.Snapshot()
	return &GameState{
		RoundID:           e.roundID,
		ConfigName:        e.config.Name,
		Bounds:            snap.Bounds,
		Snake:             snap.Segments,
		Head:              snap.Segments[0],
		Heading:           snap.Heading,
		Pending:           snap.Pending,
		Growing:           snap.Growing,
		Food:              snap.Food,
		Score:             len(snap.Segments),
		Status:            snap.Status,
		GameOver:          snap.Status.Terminal(),
		Tick:              snap.Tick,
		Message:           e.message,
		TotalTicks:        e.totalTicks,
		CurrentTicksCount: e.currentTicks,
		RoundsPlayed:      e.rounds,
	}
}

// SetState restores the round from a state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	round, err := RestoreRound(state.snapshot(), e.rng)
	if err != nil {
		return err
	}

	e.round = round
	e.roundID = state.RoundID
	if e.roundID == "" {
		e.roundID = uuid.NewString()
	}
	e.message = state.Message
	e.totalTicks = state.TotalTicks
	e.currentTicks = state.CurrentTicksCount
	e.rounds = state.RoundsPlayed
	if e.rounds < 1 {
		e.rounds = 1
	}
	return nil
}

// SetTickHistory restores the cumulative and current-round histories
func (e *GameEngine) SetTickHistory(history, current []TickHistoryEntry) {
	e.history = trimHistory(append([]TickHistoryEntry{}, history...))
	e.current = trimHistory(append([]TickHistoryEntry{}, current...))
}

// Reset starts a new round. Cumulative history survives; the current-round
// history is cleared.
func (e *GameEngine) Reset() *GameState {
	if err := e.startRound(); err != nil {
		e.message = err.Error()
	}
	return e.GetState()
}

// IsGameOver returns whether the round has ended
func (e *GameEngine) IsGameOver() bool {
	return e.round.Status().Terminal()
}

// GetScore returns the snake length
func (e *GameEngine) GetScore() int {
	return e.round.Score()
}

// GetStatus returns the round status
func (e *GameEngine) GetStatus() RoundStatus {
	return e.round.Status()
}

// Round exposes the underlying round
func (e *GameEngine) Round() *RoundState {
	return e.round
}

// Turn requests a heading change for the next tick
func (e *GameEngine) Turn(d Direction) bool {
	return e.round.RequestDirection(d)
}

// Tick advances the round by one step and records it
func (e *GameEngine) Tick() TickResult {
	if e.round.Status().Terminal() {
		return e.round.Result()
	}

	from := e.round.Snake().Head()
	dir := e.round.Snake().Pending()
	result := e.round.AdvanceTick()

	e.message = e.messageFor(result)
	e.record(TickHistoryEntry{
		RoundID:   e.roundID,
		Tick:      result.Tick,
		Direction: dir,
		From:      from,
		To:        result.Segments[0],
		Score:     result.Score,
		Ate:       result.Ate,
		Status:    result.Status,
		Timestamp: time.Now().Unix(),
	})
	return result
}

// BulkTick applies each direction as a turn request followed by a tick,
// stopping once the round ends. None keeps the current heading.
func (e *GameEngine) BulkTick(dirs []Direction) []TickResult {
	results := make([]TickResult, 0, len(dirs))
	for _, d := range dirs {
		if e.IsGameOver() {
			break
		}
		if d != None {
			e.Turn(d)
		}
		results = append(results, e.Tick())
	}
	return results
}

// GetPossibleTurns returns the directions a turn request would accept
func (e *GameEngine) GetPossibleTurns() []Direction {
	if e.IsGameOver() {
		return []Direction{}
	}
	snake := e.round.Snake()
	possible := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if snake.Len() > 1 && d == snake.Heading().Opposite() {
			continue
		}
		possible = append(possible, d)
	}
	return possible
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a new round
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	e.config = config
	e.rng = NewRand(config.Seed)
	return e.startRound()
}

// GetTickHistory returns the cumulative tick history
func (e *GameEngine) GetTickHistory() []TickHistoryEntry {
	return e.history
}

// GetCurrentTicks returns the ticks of the current round
func (e *GameEngine) GetCurrentTicks() []TickHistoryEntry {
	return e.current
}

// GetLastTick returns the last recorded tick, or nil if none
func (e *GameEngine) GetLastTick() *TickHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// GetLocalView returns the eight cells around the head
func (e *GameEngine) GetLocalView() []SurroundingCell {
	return e.GetState().GenerateLocalView()
}

func (e *GameEngine) record(entry TickHistoryEntry) {
	e.totalTicks++
	e.currentTicks++
	entry.TickNumber = e.totalTicks

	e.history = trimHistory(append(e.history, entry))
	e.current = trimHistory(append(e.current, entry))
}

func (e *GameEngine) messageFor(result TickResult) string {
	m := e.config.Messages
	switch {
	case result.Status == StatusLostWall:
		return fmt.Sprintf(m.HitWall, result.Score)
	case result.Status == StatusLostSelf:
		return fmt.Sprintf(m.HitSelf, result.Score)
	case result.Status == StatusBoardFull:
		return fmt.Sprintf(m.BoardFull, result.Score)
	case result.Ate:
		return fmt.Sprintf(m.AppleEaten, result.Score)
	default:
		return fmt.Sprintf(m.Status, result.Score)
	}
}

// trimHistory keeps the most recent MaxTickHistory entries
func trimHistory(entries []TickHistoryEntry) []TickHistoryEntry {
	if len(entries) <= MaxTickHistory {
		return entries
	}
	return append([]TickHistoryEntry{}, entries[len(entries)-MaxTickHistory:]...)
}
