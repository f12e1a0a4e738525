package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
	"github.com/wricardo/mcp-training/snakegame/game/service"
)

// testState is a 5x5 board with a two-segment snake heading right
func testState() *engine.GameState {
	return &engine.GameState{
		ConfigName: "classic",
		Bounds:     engine.Bounds{Width: 5, Height: 5},
		Snake:      []engine.Cell{{X: 3, Y: 3}, {X: 2, Y: 3}},
		Head:       engine.Cell{X: 3, Y: 3},
		Heading:    engine.Right,
		Pending:    engine.Right,
		Food:       engine.Cell{X: 5, Y: 1},
		Score:      2,
		Status:     engine.StatusRunning,
		Tick:       4,
		Message:    "Keep going",
	}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "session not found: abc"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var response map[string]string
		if err := client.apiCall(ctx, "GET", "/ok", nil, &response); err != nil {
			t.Fatalf("apiCall failed: %v", err)
		}
		if response["id"] != "abc" {
			t.Errorf("Expected id abc, got %v", response["id"])
		}
	})

	t.Run("error body", func(t *testing.T) {
		err := client.apiCall(ctx, "GET", "/missing", nil, nil)
		if err == nil || err.Error() != "session not found: abc" {
			t.Errorf("Expected server error message, got %v", err)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		err := client.apiCall(ctx, "GET", "/boom", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "API error") {
			t.Errorf("Expected 'API error', got %v", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		bad := NewClient("http://127.0.0.1:1")
		if err := bad.apiCall(ctx, "GET", "/", nil, nil); err == nil {
			t.Error("Expected error for unreachable server")
		}
	})
}

func TestClient_createSession(t *testing.T) {
	var mu sync.Mutex
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "k3x9",
			ConfigName: "classic",
			GameState:  testState(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
		"config_id": "classic",
	}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Created session: k3x9") {
		t.Errorf("Expected session ID in result, got: %s", text)
	}
	mu.Lock()
	defer mu.Unlock()
	if gotBody["config_id"] != "classic" {
		t.Errorf("Expected config_id to be forwarded, got %v", gotBody)
	}
}

func TestClient_turnAndTick(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	var bodies []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/sessions/k3x9/turn":
			json.NewEncoder(w).Encode(service.TurnResult{
				Accepted:  false,
				Requested: engine.Left,
				Heading:   engine.Right,
				Pending:   engine.Right,
				GameState: testState(),
				Message:   "cannot reverse",
			})
		case "/api/sessions/k3x9/tick":
			json.NewEncoder(w).Encode(service.TickResult{
				Step: service.StepInfo{
					Idx:          1,
					Requested:    engine.Up,
					TurnAccepted: true,
					Applied:      engine.Up,
					From:         engine.Cell{X: 3, Y: 3},
					To:           engine.Cell{X: 3, Y: 2},
					Length:       2,
					Status:       engine.StatusRunning,
				},
				GameState: testState(),
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleTurn(ctx, callRequest("turn", map[string]interface{}{
		"session_id": "k3x9",
		"direction":  "left",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "✗ Turn left rejected") {
		t.Errorf("Expected rejected turn, got: %s", text)
	}

	result, err = client.handleTick(ctx, callRequest("tick", map[string]interface{}{
		"session_id": "k3x9",
		"direction":  "up",
		"reset":      "true",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "Step 1: up (3,3)→(3,2) len=2") {
		t.Errorf("Expected step line, got: %s", text)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 || paths[1] != "POST /api/sessions/k3x9/tick" {
		t.Fatalf("unexpected calls %v", paths)
	}
	if bodies[1]["direction"] != "up" || bodies[1]["reset"] != true {
		t.Errorf("Expected coerced tick body, got %v", bodies[1])
	}
}

func TestClient_bulkTick(t *testing.T) {
	var mu sync.Mutex
	var got struct {
		Directions []string `json:"directions"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.BulkTickResult{
			TicksExecuted:  2,
			RequestedTicks: 3,
			StoppedReason:  "Game over! You hit the wall",
			StopReasonCode: "lost_wall",
			StoppedOnTick:  2,
			GameOver:       true,
			GameState:      testState(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleBulkTick(context.Background(), callRequest("bulk_tick", map[string]interface{}{
		"session_id": "k3x9",
		"directions": []interface{}{"up", "", "left"},
	}))
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Executed 2/3 ticks", "Stopped on tick 2", "lost_wall"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if strings.Join(got.Directions, ",") != "up,,left" {
		t.Errorf("Expected directions forwarded as-is, got %v", got.Directions)
	}
}

func TestClient_missingSessionID(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	result, err := client.handleGameState(context.Background(), callRequest("game_state", map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("Expected tool error without session_id")
	}
}

func TestClient_describeCell(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testState())
	}))
	defer server.Close()

	client := NewClient(server.URL)

	tests := []struct {
		name    string
		x, y    interface{}
		want    string
		isError bool
	}{
		{"head", 3, 3, "Kind: head", false},
		{"tail", 2.0, 3.0, "Safe to enter: true", false},
		{"food", "5", "1", "Kind: food", false},
		{"wall", 0, 2, "Kind: wall", false},
		{"empty", 1, 1, "Empty cell", false},
		{"off board", 9, 9, "off the board", true},
		{"not a number", "x", 1, "must be integers", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.handleDescribeCell(context.Background(), callRequest("describe_cell", map[string]interface{}{
				"session_id": "k3x9",
				"x":          tt.x,
				"y":          tt.y,
			}))
			if err != nil {
				t.Fatal(err)
			}
			if result.IsError != tt.isError {
				t.Errorf("IsError = %v, want %v", result.IsError, tt.isError)
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("Expected %q, got: %s", tt.want, text)
			}
		})
	}
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(testState())

	expected := []string{
		"Head: (3,3)",
		"Heading: right",
		"Length: 2",
		"Food: (5,1)",
		"#######",
		"#....*#",
		"#.o@..#",
		"Keep going",
	}
	for _, field := range expected {
		if !strings.Contains(result, field) {
			t.Errorf("Expected '%s' in formatted output, got: %s", field, result)
		}
	}
	if strings.Contains(result, "GAME OVER") {
		t.Error("Running round should not be reported as over")
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	state := testState()
	state.Status = engine.StatusLostSelf
	state.GameOver = true

	result := formatGameState(state)
	if !strings.Contains(result, "💀 GAME OVER (lost_self)") {
		t.Errorf("Expected game over marker, got: %s", result)
	}

	if got := formatGameState(nil); got != "No game state available" {
		t.Errorf("unexpected nil output %q", got)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Ticks: []engine.TickHistoryEntry{
			{RoundID: "0123456789abcdef", TickNumber: 7, Direction: engine.Down, From: engine.Cell{X: 1, Y: 1}, To: engine.Cell{X: 1, Y: 2}, Score: 3, Ate: true, Status: engine.StatusRunning},
		},
		TotalTicks: 21,
		Page:       1,
		TotalPages: 2,
		HasNext:    true,
	}

	result := formatHistory(history)
	for _, want := range []string{"Page 1/2", "#7 [01234567] down (1,1)→(1,2) len=3 ate running", "next page available"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in history, got: %s", want, result)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), callRequest("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, content := range []string{"GAME OBJECTIVE:", "BOARD LEGEND:", "TURNING:", "ROUND OVER:", "board_full"} {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions", content)
		}
	}
}

func TestClient_ServeHTTP(t *testing.T) {
	client := NewClient("http://localhost:8080")

	t.Run("ping", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
		w := httptest.NewRecorder()
		client.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var resp map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp["jsonrpc"] != "2.0" {
			t.Errorf("Expected JSON-RPC response, got %v", resp)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		client.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})
}
