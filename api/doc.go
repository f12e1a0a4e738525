// Package api provides the HTTP REST API for the snake game server.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              create a session ({"config_id": "classic"})
//   - GET    /api/sessions              list (?sort=accessed|created|score&order=&limit=)
//   - GET    /api/sessions/unified      multi-session view (?sessionIds=a,b or ?configName=)
//   - GET    /api/sessions/{id}         session info
//   - DELETE /api/sessions/{id}         delete (stops its driver first)
//
// Gameplay:
//   - GET  /api/sessions/{id}/state      current state with local_view_3x3 and danger
//   - GET  /api/sessions/{id}/board      text rendering of the grid
//   - POST /api/sessions/{id}/turn       {"direction": "up"}
//   - POST /api/sessions/{id}/tick       {"direction": "left", "reset": false}, both optional
//   - POST /api/sessions/{id}/bulk-tick  {"directions": ["", "up", ""]}, "" keeps the heading
//   - POST /api/sessions/{id}/reset      start a new round
//   - GET  /api/sessions/{id}/history    ?page=&limit=&order=asc|desc&round=all|current
//   - POST /api/sessions/{id}/start      tick in real time at the config's tick_rate
//   - POST /api/sessions/{id}/stop
//
// Configuration:
//   - GET  /api/configs
//   - POST /api/configs                  save a GameConfig
//   - GET  /api/configs/{name}
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id}               WebSocket stream, see package websocket
//
// Errors are JSON with an HTTP status code:
//
//	{"error": "session not found: abcd"}
//
// Unknown sessions and configs are 404, invalid directions and configs are
// 400, driver state conflicts are 409.
package api
