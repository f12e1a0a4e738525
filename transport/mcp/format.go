package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
	"github.com/wricardo/mcp-training/snakegame/game/service"
)

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	head := engine.Cell{}
	if len(state.Snake) > 0 {
		head = state.Snake[0]
	}

	fmt.Fprintf(&b, "Head: (%d,%d) | Heading: %s | Length: %d | Food: (%d,%d) | Tick: %d\n",
		head.X, head.Y, state.Heading, state.Score, state.Food.X, state.Food.Y, state.Tick)
	fmt.Fprintf(&b, "Status: %s | Rounds: %d | Total ticks: %d\n\n", state.Status, state.RoundsPlayed, state.TotalTicks)

	if state.Danger != "" {
		fmt.Fprintf(&b, "Danger: %s\n", state.Danger)
	}
	local := state.LocalView3x3
	if len(local) != 3 {
		local = state.LocalGrid()
	}
	if len(local) == 3 {
		b.WriteString("Local 3x3:\n")
		b.WriteString(strings.Join(local, "\n"))
		b.WriteString("\n\n")
	}

	if state.Bounds.Width > 0 && state.Bounds.Height > 0 {
		b.WriteString(strings.Join(state.RenderBoard(), "\n"))
		b.WriteString("\n")
	}

	if state.GameOver {
		fmt.Fprintf(&b, "\n💀 GAME OVER (%s)", state.Status)
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatTurnResult(result *service.TurnResult) string {
	var b strings.Builder
	if result.Accepted {
		fmt.Fprintf(&b, "✓ Turn %s queued\n", result.Requested)
	} else {
		fmt.Fprintf(&b, "✗ Turn %s rejected\n", result.Requested)
	}
	fmt.Fprintf(&b, "Heading: %s | Pending: %s\n", result.Heading, result.Pending)
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatTickResult(result *service.TickResult) string {
	var b strings.Builder
	b.WriteString(formatStepLine(result.Step))

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatStepLine(s service.StepInfo) string {
	mark := "✓"
	if s.Status.Terminal() {
		mark = "✗"
	}
	ate := ""
	if s.Ate {
		ate = " ate"
	}
	rejected := ""
	if s.Requested != engine.None && !s.TurnAccepted {
		rejected = fmt.Sprintf(" (turn %s rejected)", s.Requested)
	}
	return fmt.Sprintf("Step %d: %s (%d,%d)→(%d,%d) len=%d%s%s %s\n",
		s.Idx, s.Applied, s.From.X, s.From.Y, s.To.X, s.To.Y, s.Length, ate, rejected, mark)
}

func formatBulkTickResult(sessionID string, result *service.BulkTickResult) string {
	var b strings.Builder

	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s\n", sessionID, configName)
	fmt.Fprintf(&b, "Executed %d/%d ticks\n", result.TicksExecuted, result.RequestedTicks)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to %d ticks\n", result.Limit)
	}
	fmt.Fprintf(&b, "Head: (%d,%d)→(%d,%d) • Length: %d→%d (+%d) • Food eaten: %d\n",
		result.StartHead.X, result.StartHead.Y, result.EndHead.X, result.EndHead.Y,
		result.StartScore, result.EndScore, result.ScoreDelta, result.ApplesEaten)
	if result.RejectedTurns > 0 {
		fmt.Fprintf(&b, "Rejected turns: %d\n", result.RejectedTurns)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on tick %d: %s (%s)\n", result.StoppedOnTick, result.StoppedReason, result.StopReasonCode)
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			b.WriteString(formatStepLine(s))
		}
	}

	if !result.GameOver {
		fmt.Fprintf(&b, "\nPossible turns: %s\n", joinDirections(result.PossibleTurns))
		fmt.Fprintf(&b, "Safe turns: %s\n", joinDirections(result.SafeTurns))
	}
	if result.Danger != "" {
		fmt.Fprintf(&b, "Danger: %s\n", result.Danger)
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func joinDirections(dirs []engine.Direction) string {
	if len(dirs) == 0 {
		return "none"
	}
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick History (Page %d/%d, Total: %d ticks)\n\n",
		history.Page, history.TotalPages, history.TotalTicks)

	for _, t := range history.Ticks {
		ate := ""
		if t.Ate {
			ate = " ate"
		}
		fmt.Fprintf(&b, "#%d [%s] %s (%d,%d)→(%d,%d) len=%d%s %s\n",
			t.TickNumber, shortID(t.RoundID), t.Direction, t.From.X, t.From.Y, t.To.X, t.To.Y, t.Score, ate, t.Status)
	}

	if history.HasNext || history.HasPrevious {
		b.WriteString("\n")
		if history.HasPrevious {
			b.WriteString("← previous page available ")
		}
		if history.HasNext {
			b.WriteString("next page available →")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
