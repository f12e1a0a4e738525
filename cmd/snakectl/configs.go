package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/wricardo/mcp-training/snakegame/game/config"
	"github.com/wricardo/mcp-training/snakegame/game/engine"
)

// configFiles lists the JSON and YAML files in dir, sorted by name
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// validateConfigs checks every config file in dir and reports one line per
// file. The returned error lists every invalid file.
func validateConfigs(w io.Writer, dir string) error {
	files, err := configFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No configuration files in %s\n", dir)
		return nil
	}

	var errs error
	for _, file := range files {
		name := filepath.Base(file)
		if _, err := engine.LoadGameConfig(file); err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		fmt.Fprintf(w, "✓ %s\n", name)
	}

	if n := len(multierr.Errors(errs)); n > 0 {
		fmt.Fprintf(w, "\n%d of %d configuration(s) invalid\n", n, len(files))
		return fmt.Errorf("%d invalid configuration(s): %w", n, errs)
	}
	fmt.Fprintf(w, "\nAll %d configuration(s) valid\n", len(files))
	return nil
}

// analyzeConfigs prints board and timing figures for every valid config
func analyzeConfigs(w io.Writer, dir string) error {
	files, err := configFiles(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", filepath.Base(file))
		cfg, err := engine.LoadGameConfig(file)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		analyzeConfig(w, cfg)
	}
	return nil
}

func analyzeConfig(w io.Writer, cfg *engine.GameConfig) {
	area := cfg.GridWidth * cfg.GridHeight
	interval := cfg.TickInterval()

	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	if cfg.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", cfg.Description)
	}
	fmt.Fprintf(w, "Interior: %d x %d (%d cells)\n", cfg.GridWidth, cfg.GridHeight, area)
	fmt.Fprintf(w, "Board with walls: %d x %d\n", cfg.GridWidth+2, cfg.GridHeight+2)
	fmt.Fprintf(w, "Tick rate: %d/s (%v per tick)\n", cfg.TickRate, interval)
	fmt.Fprintf(w, "Crossing the board: %v horizontally, %v vertically\n",
		interval*time.Duration(cfg.GridWidth), interval*time.Duration(cfg.GridHeight))
	fmt.Fprintf(w, "Maximum length: %d\n", area)
	if cfg.Seed != 0 {
		fmt.Fprintf(w, "Seed: %d (deterministic food placement)\n", cfg.Seed)
	}
}

// loadConfig resolves name as a file path, then as a config ID in dir. An
// empty name selects the default config, or the built-in classic board when
// dir does not exist.
func loadConfig(dir, name string) (*engine.GameConfig, error) {
	if name != "" {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return engine.LoadGameConfig(name)
		}
	}

	manager, err := config.NewManager(dir)
	if err != nil {
		if name == "" {
			return engine.DefaultGameConfig(), nil
		}
		return nil, err
	}
	if name == "" {
		return manager.GetDefault(), nil
	}

	cfg, err := manager.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", name, err)
	}
	return cfg, nil
}
