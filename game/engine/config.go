package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid size
	if config.GridWidth < MinGridSize || config.GridWidth > MaxGridSize {
		return fmt.Errorf("config validation: grid_width must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridWidth)
	}
	if config.GridHeight < MinGridSize || config.GridHeight > MaxGridSize {
		return fmt.Errorf("config validation: grid_height must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridHeight)
	}

	if config.TickRate < MinTickRate || config.TickRate > MaxTickRate {
		return fmt.Errorf("config validation: tick_rate must be between %d and %d, got %d", MinTickRate, MaxTickRate, config.TickRate)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	counted := []struct {
		key, value string
	}{
		{"apple_eaten", config.Messages.AppleEaten},
		{"hit_wall", config.Messages.HitWall},
		{"hit_self", config.Messages.HitSelf},
		{"board_full", config.Messages.BoardFull},
		{"status", config.Messages.Status},
	}
	for _, m := range counted {
		if !strings.Contains(m.value, "%d") {
			return fmt.Errorf("config validation: messages.%s must contain %%d for the snake length", m.key)
		}
	}

	return nil
}

// TickInterval is the driver period derived from the tick rate
func (c *GameConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate < MinTickRate {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// DecodeGameConfig parses config data. ext selects YAML for ".yaml" and
// ".yml", JSON otherwise.
func DecodeGameConfig(data []byte, ext string) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

// LoadGameConfig loads a game configuration from a JSON or YAML file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	config, err := DecodeGameConfig(data, filepath.Ext(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}

	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultGameConfig returns the classic 39x29 board at 11 ticks per second
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic snake on a 39x29 board at 11 ticks per second",
		GridWidth:   ClassicGridWidth,
		GridHeight:  ClassicGridHeight,
		TickRate:    DefaultTickRate,
		Messages: Messages{
			Welcome:    "Pick a direction to start. Eat apples to grow, avoid the walls and yourself.",
			AppleEaten: "Apple eaten! Length: %d",
			HitWall:    "Hit the wall! Final length: %d",
			HitSelf:    "Bit your own tail! Final length: %d",
			BoardFull:  "The board is full, nowhere left for an apple! Final length: %d",
			Status:     "Length: %d",
		},
	}
}
