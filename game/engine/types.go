package engine

// CellKind classifies a grid cell for local views
type CellKind string

const (
	Empty CellKind = "empty"
	Wall  CellKind = "wall"
	Body  CellKind = "body"
	Head  CellKind = "head"
	Apple CellKind = "food"

	// Validation constants
	MinGridSize         = 5
	MaxGridSize         = 100
	MinTickRate         = 1
	MaxTickRate         = 60
	DefaultTickRate     = 11
	// The classic board is the range apples and the snake spawn in (columns
	// 1..39, rows 1..29). The last pixel column and row of the original
	// window are treated as wall so food can reach every interior cell.
	ClassicGridWidth    = 39
	ClassicGridHeight   = 29
	MaxBulkTicks        = 50
	MaxTickHistory      = 1000
	WebSocketBufferSize = 256
)

// Messages are the player-facing texts of a configuration. Every message but
// Welcome is a format string taking the snake length.
type Messages struct {
	Welcome    string `json:"welcome" yaml:"welcome"`
	AppleEaten string `json:"apple_eaten" yaml:"apple_eaten"`
	HitWall    string `json:"hit_wall" yaml:"hit_wall"`
	HitSelf    string `json:"hit_self" yaml:"hit_self"`
	BoardFull  string `json:"board_full" yaml:"board_full"`
	Status     string `json:"status" yaml:"status"`
}

// GameConfig represents a game configuration file
type GameConfig struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	GridWidth   int      `json:"grid_width" yaml:"grid_width"`
	GridHeight  int      `json:"grid_height" yaml:"grid_height"`
	TickRate    int      `json:"tick_rate" yaml:"tick_rate"`
	Seed        uint64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Messages    Messages `json:"messages" yaml:"messages"`
}

// SurroundingCell represents a cell next to the head with its absolute position
type SurroundingCell struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Kind CellKind `json:"kind"`
}

// GameState is the complete view of a session's current round
type GameState struct {
	RoundID    string      `json:"round_id"`
	ConfigName string      `json:"config_name"`
	Bounds     Bounds      `json:"bounds"`
	Snake      []Cell      `json:"snake"`
	Head       Cell        `json:"head"`
	Heading    Direction   `json:"heading"`
	Pending    Direction   `json:"pending"`
	Growing    bool        `json:"growing,omitempty"`
	Food       Cell        `json:"food"`
	Score      int         `json:"score"`
	Status     RoundStatus `json:"status"`
	GameOver   bool        `json:"game_over"`
	Tick       int         `json:"tick"`
	Message    string      `json:"message"`

	// TotalTicks counts every tick the session has run. CurrentTicksCount is
	// cleared when a new round starts.
	TotalTicks        int `json:"total_ticks"`
	CurrentTicksCount int `json:"current_ticks_count"`
	RoundsPlayed      int `json:"rounds_played"`

	// Computed helper views (not required for core game logic)
	LocalView3x3 []string `json:"local_view_3x3,omitempty"`
	Danger       string   `json:"danger,omitempty"`
}

// TickHistoryEntry records one tick
type TickHistoryEntry struct {
	RoundID    string      `json:"round_id"`
	Tick       int         `json:"tick"`
	TickNumber int         `json:"tick_number"`
	Direction  Direction   `json:"direction"`
	From       Cell        `json:"from"`
	To         Cell        `json:"to"`
	Score      int         `json:"score"`
	Ate        bool        `json:"ate,omitempty"`
	Status     RoundStatus `json:"status"`
	Timestamp  int64       `json:"timestamp"`
}

// snapshot extracts the round portion of the state
func (gs *GameState) snapshot() RoundSnapshot {
	return RoundSnapshot{
		Bounds:   gs.Bounds,
		Segments: gs.Snake,
		Heading:  gs.Heading,
		Pending:  gs.Pending,
		Growing:  gs.Growing,
		Food:     gs.Food,
		Status:   gs.Status,
		Tick:     gs.Tick,
	}
}
