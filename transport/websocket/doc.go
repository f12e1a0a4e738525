// Package websocket streams snake sessions to browsers and accepts steering
// input from them.
//
// A central Hub owns all connections, grouped by session ID. Client
// bookkeeping happens only on the Hub's Run goroutine; each connection has a
// read pump and a write pump.
//
// Outgoing messages are JSON:
//
//	{"session_id": "abcd", "event": "tick", "game_state": {...}, "data": {...}}
//
// Events are "state_update" after REST and MCP changes, "tick" for every
// driven tick (the Hub implements the driver's Publisher) and "error" replies
// to a single client.
//
// Incoming messages are {"action": "turn", "direction": "up"}. They are passed
// to the InputHandler set with SetInputHandler. Unknown actions are ignored.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetInputHandler(turnHandler)
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
