// Package mcp exposes the snake game to AI agents over the Model Context Protocol.
//
// The Client does not hold game state. Every tool call is forwarded to the
// REST API of a running server, so an agent connected over stdio plays the
// same sessions that browsers watch over WebSocket.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state: board, head, food and a danger rating
//   - turn: queue a heading for the next tick
//   - tick: advance one step, optionally turning and resetting first
//   - bulk_tick: up to 50 steps with one heading per step
//   - reset_round: start a new round
//   - tick_history: paginated history, optionally the current round only
//   - list_configs, game_instructions, describe_cell
//
// Transports:
//
//	// Stdio, for local MCP clients
//	server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer())
//
//	// HTTP, one JSON-RPC message per POST
//	router.Handle("/mcp", mcp.NewClient(baseURL))
package mcp
