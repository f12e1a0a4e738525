// Package service provides the business logic layer for the snake game.
//
// GameService sits between the transports (HTTP, WebSocket, MCP, the tick
// driver) and the engine. It resolves sessions and configurations, applies
// turns and ticks under a single lock, enriches state with decision aids
// and persists sessions after each change.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Tick(ctx, info.ID, "right", false)
//
// Manual ticks and bulk ticks save the session every call. Advance, used by
// the fixed-rate driver, saves only when a round ends.
package service
