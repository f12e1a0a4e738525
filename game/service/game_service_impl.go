package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// getSession resolves a session, keeping ErrSessionNotFound matchable
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	state := sess.Engine.GetState()
	enrich(state)
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      state,
		GameConfig:     sess.Config,
	}
}

// save persists a session; failures are logged, never returned
func (s *gameServiceImpl) save(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Printf("[SESSION] created session=%s config=%s grid=%dx%d", sess.ID, configID, config.GridWidth, config.GridHeight)
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return err
	}
	return nil
}

// Turn requests a heading change that applies on the next tick
func (s *gameServiceImpl) Turn(ctx context.Context, sessionID, direction string) (*TurnResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	accepted := sess.Engine.Turn(dir)
	state := sess.Engine.GetState()
	enrich(state)

	log.Printf("[TURN] session=%s dir=%s accepted=%t heading=%s", sessionID, dir, accepted, state.Heading)
	s.save(sessionID, "turn")

	message := state.Message
	if !accepted {
		message = turnRejectedMessage(dir, state)
	}
	return &TurnResult{
		Accepted:  accepted,
		Requested: dir,
		Heading:   state.Heading,
		Pending:   state.Pending,
		GameState: state,
		Message:   message,
	}, nil
}

// Tick optionally turns, then advances the round by one step
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID, direction string, reset bool) (*TickResult, error) {
	dir := engine.None
	if direction != "" {
		var err error
		if dir, err = engine.ParseDirection(direction); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	accepted := true
	if dir != engine.None {
		accepted = sess.Engine.Turn(dir)
		if !accepted {
			events = append(events, GameEvent{
				Type:      "turn_rejected",
				Message:   turnRejectedMessage(dir, sess.Engine.GetState()),
				Timestamp: time.Now(),
			})
		}
	}

	step, res, stepEvents := tickOnce(sess.Engine, 1, dir, accepted)
	events = append(events, stepEvents...)

	state := sess.Engine.GetState()
	enrich(state)

	log.Printf("[TICK] session=%s head=(%d,%d) len=%d status=%s", sessionID, step.To.X, step.To.Y, res.Score, res.Status)
	s.save(sessionID, "tick")

	return &TickResult{
		Result:    res,
		Step:      step,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}, nil
}

// Advance runs one driver tick. The session is saved only when the round ends.
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID string) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	wasOver := sess.Engine.IsGameOver()
	step, res, events := tickOnce(sess.Engine, 1, engine.None, true)
	state := sess.Engine.GetState()
	enrich(state)

	if !wasOver && res.Status.Terminal() {
		log.Printf("[TICK] session=%s head=(%d,%d) len=%d status=%s", sessionID, step.To.X, step.To.Y, res.Score, res.Status)
		s.save(sessionID, "round end")
	}

	return &TickResult{
		Result:    res,
		Step:      step,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}, nil
}

// BulkTick runs up to MaxBulkTicks turn+tick steps. An empty direction keeps
// the heading. Execution stops at the first terminal tick.
func (s *gameServiceImpl) BulkTick(ctx context.Context, sessionID string, directions []string, reset bool) (*BulkTickResult, error) {
	dirs := make([]engine.Direction, len(directions))
	for i, d := range directions {
		if d == "" {
			continue
		}
		parsed, err := engine.ParseDirection(d)
		if err != nil {
			return nil, fmt.Errorf("direction %d: %w", i+1, err)
		}
		dirs[i] = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkTickResult{
		RequestedTicks: len(dirs),
		Events:         make([]GameEvent, 0),
		Steps:          make([]StepInfo, 0, len(dirs)),
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	start := sess.Engine.GetState()
	result.StartHead = start.Head
	result.StartScore = start.Score

	if len(dirs) > engine.MaxBulkTicks {
		result.Truncated = true
		result.Limit = engine.MaxBulkTicks
		dirs = dirs[:engine.MaxBulkTicks]
	}

	if start.GameOver && len(dirs) > 0 {
		result.StoppedReason = "round already over, reset to play again"
		result.StopReasonCode = "game_over"
		result.StoppedOnTick = 1
	}

	for i, d := range dirs {
		if sess.Engine.IsGameOver() {
			break
		}

		accepted := true
		if d != engine.None {
			accepted = sess.Engine.Turn(d)
			if !accepted {
				result.RejectedTurns++
				result.Events = append(result.Events, GameEvent{
					Type:      "turn_rejected",
					Message:   fmt.Sprintf("tick %d: %s", i+1, turnRejectedMessage(d, sess.Engine.GetState())),
					Timestamp: time.Now(),
				})
			}
		}

		step, res, events := tickOnce(sess.Engine, i+1, d, accepted)
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, events...)
		result.TicksExecuted++
		if res.Ate {
			result.ApplesEaten++
		}

		if res.Status.Terminal() {
			result.StopReasonCode = string(res.Status)
			result.StoppedOnTick = i + 1
			result.StoppedReason = sess.Engine.GetState().Message
			break
		}
	}

	end := sess.Engine.GetState()
	enrich(end)
	result.GameState = end
	result.EndHead = end.Head
	result.EndScore = end.Score
	result.ScoreDelta = end.Score - result.StartScore
	result.GameOver = end.GameOver
	if end.GameOver {
		result.GameOverCode = string(end.Status)
	}
	result.Message = end.Message

	// Decision aids
	result.PossibleTurns = sess.Engine.GetPossibleTurns()
	result.SafeTurns = engine.SafeTurns(end)
	result.LocalView3x3 = end.LocalView3x3
	result.Danger = end.Danger

	log.Printf("[TICK] session=%s bulk=%d/%d head=(%d,%d) len=%d status=%s", sessionID, result.TicksExecuted, result.RequestedTicks, end.Head.X, end.Head.Y, end.Score, end.Status)
	s.save(sessionID, "bulk tick")

	return result, nil
}

// Reset starts a new round for a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()
	enrich(state)

	s.save(sessionID, "reset")
	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.GetState()
	enrich(state)
	return state, nil
}

// GetTickHistory returns paginated tick history
func (s *gameServiceImpl) GetTickHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetTickHistory()
	if opts.Round == "current" {
		history = sess.Engine.GetCurrentTicks()
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	ticks := []engine.TickHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			ticks = append(ticks, history[i])
		}
	} else if start < total {
		ticks = append(ticks, history[start:end]...)
	}

	return &HistoryResponse{
		Ticks:       ticks,
		TotalTicks:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// tickOnce advances the engine and describes the step
func tickOnce(eng *engine.GameEngine, idx int, requested engine.Direction, accepted bool) (StepInfo, engine.TickResult, []GameEvent) {
	snake := eng.Round().Snake()
	from := snake.Head()
	applied := snake.Pending()
	wasOver := eng.IsGameOver()

	res := eng.Tick()
	to := res.Segments[0]

	step := StepInfo{
		Idx:          idx,
		Requested:    requested,
		TurnAccepted: accepted,
		Applied:      applied,
		From:         from,
		To:           to,
		Length:       res.Score,
		Ate:          res.Ate,
		Status:       res.Status,
	}
	if wasOver {
		step.Applied = engine.None
		return step, res, nil
	}

	var events []GameEvent
	now := time.Now()
	if res.Ate {
		head := to
		events = append(events, GameEvent{
			Type:      "apple_eaten",
			Message:   fmt.Sprintf("Apple eaten at (%d,%d), length %d", to.X, to.Y, res.Score),
			Timestamp: now,
			Cell:      &head,
		})
	}
	if res.Status.Terminal() {
		head := to
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   eng.GetState().Message,
			Timestamp: now,
			Cell:      &head,
		})
	}
	return step, res, events
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "New round started",
		Timestamp: time.Now(),
	}
}

func turnRejectedMessage(dir engine.Direction, state *engine.GameState) string {
	if state.GameOver {
		return fmt.Sprintf("Turn %s ignored: the round is over", dir)
	}
	return fmt.Sprintf("Turn %s ignored: cannot reverse while heading %s", dir, state.Heading)
}

// enrich fills the decision aids on a state
func enrich(state *engine.GameState) {
	state.LocalView3x3 = state.LocalGrid()
	state.Danger = engine.DangerCode(engine.AnalyzeDanger(state))
}
