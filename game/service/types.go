package service

import (
	"time"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// TurnResult reports a direction request
type TurnResult struct {
	Accepted  bool              `json:"accepted"`
	Requested engine.Direction  `json:"requested"`
	Heading   engine.Direction  `json:"heading"`
	Pending   engine.Direction  `json:"pending"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
}

// TickResult contains the result of a single tick
type TickResult struct {
	Result    engine.TickResult `json:"result"`
	Step      StepInfo          `json:"step"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// BulkTickResult contains the result of several ticks
type BulkTickResult struct {
	// Summary
	TicksExecuted  int               `json:"ticks_executed"`
	RequestedTicks int               `json:"requested_ticks"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // lost_wall|lost_self|board_full|game_over
	StoppedOnTick  int               `json:"stopped_on_tick,omitempty"`  // 1-based index of the tick that ended the round
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`
	RejectedTurns  int               `json:"rejected_turns,omitempty"`

	// Start/end snapshot
	StartHead   engine.Cell `json:"start_head"`
	EndHead     engine.Cell `json:"end_head"`
	StartScore  int         `json:"start_score"`
	EndScore    int         `json:"end_score"`
	ScoreDelta  int         `json:"score_delta"`
	ApplesEaten int         `json:"apples_eaten"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver      bool               `json:"game_over"`
	GameOverCode  string             `json:"game_over_code,omitempty"`
	Message       string             `json:"message,omitempty"`
	PossibleTurns []engine.Direction `json:"possible_turns"`
	SafeTurns     []engine.Direction `json:"safe_turns"`
	LocalView3x3  []string           `json:"local_view_3x3,omitempty"`
	Danger        string             `json:"danger,omitempty"`
}

// StepInfo is a compact record of one tick
type StepInfo struct {
	Idx          int                `json:"idx"`
	Requested    engine.Direction   `json:"requested"`
	TurnAccepted bool               `json:"turn_accepted"`
	Applied      engine.Direction   `json:"applied"`
	From         engine.Cell        `json:"from"`
	To           engine.Cell        `json:"to"`
	Length       int                `json:"length"`
	Ate          bool               `json:"ate,omitempty"`
	Status       engine.RoundStatus `json:"status"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"` // "apple_eaten", "turn_rejected", "game_over", "reset"
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Cell      *engine.Cell `json:"cell,omitempty"`
}

// HistoryOptions configures tick history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
	Round string `json:"round"` // "all" (default) or "current"
}

// HistoryResponse contains paginated tick history
type HistoryResponse struct {
	Ticks       []engine.TickHistoryEntry `json:"ticks"`
	TotalTicks  int                       `json:"total_ticks"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridWidth   int    `json:"grid_width"`
	GridHeight  int    `json:"grid_height"`
	TickRate    int    `json:"tick_rate"`
}
