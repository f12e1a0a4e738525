// Package config provides configuration management for the snake game.
//
// Game configurations are JSON or YAML files in a config directory. The
// file name without extension is the config ID used to create sessions.
// Each configuration defines the interior grid size, the tick rate the
// driver runs at, an optional placement seed and the player messages.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("classic")
//	configs, err := manager.ListConfigs()
//
// When no valid configuration is found the manager falls back to the
// built-in classic board.
package config
