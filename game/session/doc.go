// Package session provides session management for the snake game.
//
// Manager keeps sessions in a thread-safe map keyed by lower-cased ID. Each
// session owns one GameEngine plus creation and last-access times. IDs are
// 4 hex characters from crypto/rand unless the caller picks one.
//
// With a SessionPersistence attached, sessions are saved on creation and on
// demand, loaded lazily on Get, and restored in bulk at startup.
// FilePersistence stores one JSON file per session including the round
// snapshot and its tick history.
//
// Usage:
//
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := manager.Create("", config)
//	sess, err = manager.Get(sess.ID)
package session
