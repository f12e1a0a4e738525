package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBounds   = errors.New("invalid grid bounds")
	ErrInvalidSnapshot = errors.New("invalid round snapshot")
)

// RoundStatus is the state of a round
type RoundStatus string

const (
	StatusRunning   RoundStatus = "running"
	StatusLostWall  RoundStatus = "lost_wall"
	StatusLostSelf  RoundStatus = "lost_self"
	StatusBoardFull RoundStatus = "board_full"
)

// Terminal reports whether no further ticks are processed
func (s RoundStatus) Terminal() bool {
	return s != StatusRunning
}

func (s RoundStatus) valid() bool {
	switch s {
	case StatusRunning, StatusLostWall, StatusLostSelf, StatusBoardFull:
		return true
	}
	return false
}

// TickResult is what the rendering boundary draws after a tick
type TickResult struct {
	Status   RoundStatus `json:"status"`
	Score    int         `json:"score"`
	// Segments is head first. On an eat tick the last cell is repeated; the
	// copy is dropped by the next move.
	Segments []Cell      `json:"snake_segments"`
	Food     Cell        `json:"food_cell"`
	Ate      bool        `json:"ate,omitempty"`
	Tick     int         `json:"tick"`
}

// RoundSnapshot is the serializable form of a round
type RoundSnapshot struct {
	Bounds   Bounds      `json:"bounds"`
	Segments []Cell      `json:"segments"`
	Heading  Direction   `json:"heading"`
	Pending  Direction   `json:"pending"`
	Growing  bool        `json:"growing,omitempty"`
	Food     Cell        `json:"food"`
	Status   RoundStatus `json:"status"`
	Tick     int         `json:"tick"`
}

// RoundState owns the snake and the food for one round
type RoundState struct {
	snake  *Snake
	food   *Food
	bounds Bounds
	status RoundStatus
	tick   int
	rng    Rand
}

// NewRound starts a round with a single-segment snake on a random interior
// cell and food on a different one
func NewRound(width, height int, rng Rand) (*RoundState, error) {
	bounds := Bounds{Width: width, Height: height}
	if width < 1 || height < 1 || bounds.Area() < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, width, height)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	snake := NewSnake(bounds.cellAt(rng.Intn(bounds.Area())))
	food := &Food{}
	if err := food.Relocate(snake.Segments(), bounds, rng); err != nil {
		return nil, err
	}

	return &RoundState{
		snake:  snake,
		food:   food,
		bounds: bounds,
		status: StatusRunning,
		rng:    rng,
	}, nil
}

// RestoreRound rebuilds a round from a snapshot
func RestoreRound(snap RoundSnapshot, rng Rand) (*RoundState, error) {
	if snap.Bounds.Width < 1 || snap.Bounds.Height < 1 || snap.Bounds.Area() < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, snap.Bounds.Width, snap.Bounds.Height)
	}
	if len(snap.Segments) == 0 {
		return nil, fmt.Errorf("%w: snake has no segments", ErrInvalidSnapshot)
	}
	status := snap.Status
	if status == "" {
		status = StatusRunning
	}
	if !status.valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidSnapshot, snap.Status)
	}
	if snap.Tick < 0 {
		return nil, fmt.Errorf("%w: negative tick", ErrInvalidSnapshot)
	}
	if n := len(snap.Segments); snap.Growing && (n < 2 || snap.Segments[n-1] != snap.Segments[n-2]) {
		return nil, fmt.Errorf("%w: growing snake needs a duplicated tail", ErrInvalidSnapshot)
	}
	if !snap.Bounds.Contains(snap.Food) {
		return nil, fmt.Errorf("%w: food (%d,%d) outside grid", ErrInvalidSnapshot, snap.Food.X, snap.Food.Y)
	}

	snake := newSnakeFromSegments(snap.Segments, snap.Heading, snap.Pending, snap.Growing)
	if status == StatusRunning {
		if snake.OutOfBounds(snap.Bounds) {
			return nil, fmt.Errorf("%w: head outside grid", ErrInvalidSnapshot)
		}
		if snake.Contains(snap.Food) {
			return nil, fmt.Errorf("%w: food under snake", ErrInvalidSnapshot)
		}
	}
	if rng == nil {
		rng = NewRand(0)
	}

	return &RoundState{
		snake:  snake,
		food:   NewFood(snap.Food),
		bounds: snap.Bounds,
		status: status,
		tick:   snap.Tick,
		rng:    rng,
	}, nil
}

// RequestDirection forwards a heading change to the snake. Ignored once the
// round is over.
func (r *RoundState) RequestDirection(d Direction) bool {
	if r.status.Terminal() {
		return false
	}
	return r.snake.RequestDirection(d)
}

// AdvanceTick runs one step of the simulation
func (r *RoundState) AdvanceTick() TickResult {
	if r.status.Terminal() {
		return r.Result()
	}

	r.tick++
	r.snake.Move(r.snake.Pending())

	if r.snake.OutOfBounds(r.bounds) {
		r.status = StatusLostWall
		return r.Result()
	}
	if r.snake.HitsSelf() {
		r.status = StatusLostSelf
		return r.Result()
	}

	ate := false
	if r.snake.Head() == r.food.Cell() {
		ate = true
		r.snake.Grow()
		if err := r.food.Relocate(r.snake.Segments(), r.bounds, r.rng); err != nil {
			r.status = StatusBoardFull
		}
	}

	result := r.Result()
	result.Ate = ate
	return result
}

// Result reports the current state without advancing
func (r *RoundState) Result() TickResult {
	return TickResult{
		Status:   r.status,
		Score:    r.Score(),
		Segments: r.snake.Segments(),
		Food:     r.food.Cell(),
		Tick:     r.tick,
	}
}

// Score is the segment count
func (r *RoundState) Score() int {
	return r.snake.Len()
}

func (r *RoundState) Status() RoundStatus {
	return r.status
}

func (r *RoundState) Snake() *Snake {
	return r.snake
}

func (r *RoundState) Food() *Food {
	return r.food
}

func (r *RoundState) Bounds() Bounds {
	return r.bounds
}

func (r *RoundState) Tick() int {
	return r.tick
}

// Snapshot captures the round for persistence
func (r *RoundState) Snapshot() RoundSnapshot {
	return RoundSnapshot{
		Bounds:   r.bounds,
		Segments: r.snake.Segments(),
		Heading:  r.snake.Heading(),
		Pending:  r.snake.Pending(),
		Growing:  r.snake.Growing(),
		Food:     r.food.Cell(),
		Status:   r.status,
		Tick:     r.tick,
	}
}
