package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpillora/backoff"

	"github.com/wricardo/mcp-training/snakegame/api"
	"github.com/wricardo/mcp-training/snakegame/game/config"
	"github.com/wricardo/mcp-training/snakegame/game/engine"
	"github.com/wricardo/mcp-training/snakegame/game/service"
	"github.com/wricardo/mcp-training/snakegame/game/session"
)

func smallConfig() *engine.GameConfig {
	cfg := engine.DefaultGameConfig()
	cfg.Name = "tiny"
	cfg.Description = "Small board for tests"
	cfg.GridWidth = 10
	cfg.GridHeight = 8
	cfg.Seed = 3
	return cfg
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func cells(xy ...int) []engine.Cell {
	out := make([]engine.Cell, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, engine.Cell{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestNextMove(t *testing.T) {
	tests := []struct {
		name    string
		snake   []engine.Cell
		heading engine.Direction
		food    engine.Cell
		want    engine.Direction
	}{
		{
			name:    "heads for food",
			snake:   cells(3, 3, 2, 3),
			heading: engine.Right,
			food:    engine.Cell{X: 3, Y: 1},
			want:    engine.Up,
		},
		{
			name:    "never reverses",
			snake:   cells(3, 3, 4, 3),
			heading: engine.Left,
			food:    engine.Cell{X: 5, Y: 2},
			want:    engine.Up,
		},
		{
			name:    "turns away from the wall",
			snake:   cells(5, 3, 4, 3),
			heading: engine.Right,
			food:    engine.Cell{X: 5, Y: 5},
			want:    engine.Down,
		},
		{
			name:    "keeps heading on a tie",
			snake:   cells(2, 2, 2, 3),
			heading: engine.Up,
			food:    engine.Cell{X: 3, Y: 1},
			want:    engine.Up,
		},
		{
			name:    "avoids a pocket smaller than the body",
			snake:   cells(2, 1, 2, 2, 2, 3, 2, 4, 2, 5, 3, 5),
			heading: engine.Up,
			food:    engine.Cell{X: 1, Y: 2},
			want:    engine.Right,
		},
		{
			name:    "boxed in",
			snake:   cells(1, 1, 1, 2, 2, 2, 2, 1, 3, 1),
			heading: engine.Up,
			food:    engine.Cell{X: 5, Y: 5},
			want:    engine.None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &engine.GameState{
				Bounds:  engine.Bounds{Width: 5, Height: 5},
				Snake:   tt.snake,
				Heading: tt.heading,
				Pending: tt.heading,
				Food:    tt.food,
				Score:   len(tt.snake),
				Status:  engine.StatusRunning,
			}
			if got := nextMove(state); got != tt.want {
				t.Errorf("nextMove() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReachable(t *testing.T) {
	state := &engine.GameState{
		Bounds: engine.Bounds{Width: 5, Height: 5},
		Snake:  cells(2, 1, 2, 2, 2, 3, 2, 4, 2, 5, 3, 5),
	}

	if got := reachable(state, engine.Cell{X: 1, Y: 1}, 100); got != 5 {
		t.Errorf("left pocket = %d, want 5", got)
	}
	// the tail cell is vacated on the next tick
	if got := reachable(state, engine.Cell{X: 3, Y: 1}, 100); got != 15 {
		t.Errorf("right side = %d, want 15", got)
	}
	if got := reachable(state, engine.Cell{X: 3, Y: 1}, 4); got != 4 {
		t.Errorf("limited = %d, want 4", got)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "good.json"), smallConfig())
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: bad\ngrid_width: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), []string{"snakectl", "validate", "--config-dir", dir})
	if err == nil {
		t.Fatal("expected an error for the invalid config")
	}

	for _, want := range []string{"✓ good.json", "✗ bad.yaml", "1 of 2 configuration(s) invalid"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in output:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "notes.txt") {
		t.Error("non-config files should be skipped")
	}
}

func TestValidateConfigs_AllValid(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "classic.json"), engine.DefaultGameConfig())

	var out bytes.Buffer
	if err := validateConfigs(&out, dir); err != nil {
		t.Fatalf("validateConfigs: %v", err)
	}
	if !strings.Contains(out.String(), "All 1 configuration(s) valid") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := validateConfigs(&out, filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "classic.json"), engine.DefaultGameConfig())

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	if err := app.Run(context.Background(), []string{"snakectl", "analyze", "--config-dir", dir}); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	for _, want := range []string{
		"=== Analyzing classic.json ===",
		"Interior: 39 x 29 (1131 cells)",
		"Board with walls: 41 x 31",
		"Tick rate: 11/s",
		"Maximum length: 1131",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in output:\n%s", want, out.String())
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "tiny.json"), smallConfig())

	tests := []struct {
		name     string
		dir      string
		config   string
		wantName string
		wantErr  bool
	}{
		{"built-in default", filepath.Join(dir, "missing"), "", "classic", false},
		{"by id", dir, "tiny", "tiny", false},
		{"by path", filepath.Join(dir, "missing"), filepath.Join(dir, "tiny.json"), "tiny", false},
		{"unknown id", dir, "nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(tt.dir, tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if cfg.Name != tt.wantName {
				t.Errorf("name = %s, want %s", cfg.Name, tt.wantName)
			}
		})
	}
}

func TestSimulate(t *testing.T) {
	cfg := smallConfig()

	first, err := simulate(context.Background(), cfg, 4, 42, 2000)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("got %d outcomes, want 4", len(first))
	}

	for i, o := range first {
		if o.Round != i+1 || o.Seed != 42+uint64(i) {
			t.Errorf("outcome %d: round=%d seed=%d", i, o.Round, o.Seed)
		}
		if o.Length < 1 || o.Length > cfg.GridWidth*cfg.GridHeight {
			t.Errorf("outcome %d: length %d out of range", i, o.Length)
		}
		if o.Ticks < 1 || o.Ticks > 2000 {
			t.Errorf("outcome %d: ticks %d out of range", i, o.Ticks)
		}
		if o.Status == engine.StatusRunning && o.Ticks != 2000 {
			t.Errorf("outcome %d: running round stopped after %d ticks", i, o.Ticks)
		}
	}

	// seeded rounds replay identically
	second, err := simulate(context.Background(), cfg, 4, 42, 2000)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("round %d differs: %+v vs %+v", i+1, first[i], second[i])
		}
	}

	if cfg.Seed != 3 {
		t.Error("simulate must not modify the config")
	}
}

func TestSimulate_Errors(t *testing.T) {
	cfg := smallConfig()
	if _, err := simulate(context.Background(), cfg, 0, 1, 10); err == nil {
		t.Error("expected error for zero rounds")
	}
	if _, err := simulate(context.Background(), cfg, 1, 1, 0); err == nil {
		t.Error("expected error for zero max ticks")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := simulate(ctx, cfg, 2, 1, 10); err == nil {
		t.Error("expected error for a cancelled context")
	}
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "tiny.json"), smallConfig())

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	args := []string{"snakectl", "simulate", "--config-dir", dir, "--config", "tiny", "--rounds", "3", "--seed", "9", "--max-ticks", "500"}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	for _, want := range []string{"Config: tiny (10x8)", "Round   1 seed=9", "Round   3 seed=11", "Rounds: 3", "Best length:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in output:\n%s", want, out.String())
		}
	}
}

func TestAutoplay(t *testing.T) {
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := configs.SaveConfig("tiny", smallConfig()); err != nil {
		t.Fatal(err)
	}
	gameService := service.NewGameService(session.NewManager(), configs)
	ts := httptest.NewServer(api.NewServer(gameService, nil, nil))
	defer ts.Close()

	var out bytes.Buffer
	state, err := autoplay(context.Background(), &out, NewClient(ts.URL), "tiny", 300)
	if err != nil {
		t.Fatalf("autoplay: %v", err)
	}

	if state.ConfigName != "tiny" {
		t.Errorf("config = %s, want tiny", state.ConfigName)
	}
	if !state.GameOver && state.Tick != 300 {
		t.Errorf("running round stopped at tick %d", state.Tick)
	}
	if !strings.Contains(out.String(), "Final length:") {
		t.Errorf("missing summary:\n%s", out.String())
	}
}

func TestClient_Retry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sessions":
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(service.SessionInfo{ID: "ab12", GameState: &engine.GameState{ConfigName: "classic"}})
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"session not found"}`))
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	client.backoff = &backoff.Backoff{Min: time.Millisecond, Max: time.Millisecond}

	if _, err := client.CreateSession(context.Background(), ""); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
	if client.sessionID != "ab12" {
		t.Errorf("session = %s, want ab12", client.sessionID)
	}

	// client errors are not retried
	if _, err := client.Tick(context.Background(), engine.Up); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}
}
