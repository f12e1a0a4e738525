package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
	"github.com/wricardo/mcp-training/snakegame/game/service"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if cap(hub.broadcast) != engine.WebSocketBufferSize {
		t.Errorf("Expected broadcast buffer %d, got %d", engine.WebSocketBufferSize, cap(hub.broadcast))
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	client1 := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}
	client2 := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}

	hub.registerClient(client1)
	hub.registerClient(client2)
	if len(hub.sessions["abcd"]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions["abcd"]))
	}

	hub.unregisterClient(client1)
	if !hub.sessions["abcd"][client2] || len(hub.sessions["abcd"]) != 1 {
		t.Error("client2 should be the only client left")
	}
	if _, ok := <-client1.send; ok {
		t.Error("Expected client1 send channel to be closed")
	}

	hub.unregisterClient(client2)
	if _, exists := hub.sessions["abcd"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubBroadcastMessage(t *testing.T) {
	hub := NewHub()
	watcher := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}
	other := &Client{hub: hub, sessionID: "efgh", send: make(chan []byte, 4)}
	hub.registerClient(watcher)
	hub.registerClient(other)

	state := &engine.GameState{
		Head:  engine.Cell{X: 5, Y: 3},
		Snake: []engine.Cell{{X: 5, Y: 3}},
		Score: 1,
	}
	hub.broadcastMessage(&Message{SessionID: "abcd", GameState: state, Event: "state_update"})

	select {
	case data := <-watcher.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != "state_update" || message.GameState.Head != (engine.Cell{X: 5, Y: 3}) {
			t.Errorf("Unexpected message %+v", message)
		}
	default:
		t.Error("No message delivered to the session's client")
	}

	if len(other.send) != 0 {
		t.Error("Other sessions must not receive the message")
	}
}

func TestHubTargetedMessage(t *testing.T) {
	hub := NewHub()
	a := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}
	b := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte, 4)}
	hub.registerClient(a)
	hub.registerClient(b)

	hub.broadcastMessage(&Message{SessionID: "abcd", Event: "error", target: a})

	if len(a.send) != 1 || len(b.send) != 0 {
		t.Errorf("Expected delivery to the target only, got a=%d b=%d", len(a.send), len(b.send))
	}
}

func TestHubSlowClientDropped(t *testing.T) {
	hub := NewHub()
	slow := &Client{hub: hub, sessionID: "abcd", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "abcd", Event: "state_update"})

	if _, exists := hub.sessions["abcd"]; exists {
		t.Error("Expected the slow client to be unregistered")
	}
}

func TestHubPublishQueuesTick(t *testing.T) {
	hub := NewHub()
	hub.Publish("abcd", &service.TickResult{
		Result:    engine.TickResult{Status: engine.StatusRunning, Tick: 4},
		GameState: &engine.GameState{Tick: 4},
	})
	hub.BroadcastEvent("abcd", "custom-event", "test-data")

	first := <-hub.broadcast
	if first.Event != "tick" || first.GameState.Tick != 4 {
		t.Errorf("Unexpected tick message %+v", first)
	}
	second := <-hub.broadcast
	if second.Event != "custom-event" || second.Data != "test-data" {
		t.Errorf("Unexpected event message %+v", second)
	}
}

func startHub(t *testing.T, input InputHandler) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	hub.SetInputHandler(input)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitForCount(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(sessionID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients in %s, got %d", want, sessionID, hub.ClientCount(sessionID))
}

func TestWebSocketConnectAndBroadcast(t *testing.T) {
	hub, url := startHub(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?session=ws-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()
	waitForCount(t, hub, "ws-test", 1)

	hub.BroadcastToSession("ws-test", &engine.GameState{Head: engine.Cell{X: 10, Y: 15}, Score: 3})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var message Message
	if err := conn.ReadJSON(&message); err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}
	if message.SessionID != "ws-test" || message.GameState.Head != (engine.Cell{X: 10, Y: 15}) || message.GameState.Score != 3 {
		t.Errorf("Unexpected message %+v", message)
	}

	conn.Close()
	waitForCount(t, hub, "ws-test", 0)
}

func TestWebSocketTurnInput(t *testing.T) {
	received := make(chan ClientMessage, 1)
	hub, url := startHub(t, func(ctx context.Context, sessionID string, msg ClientMessage) error {
		if msg.Direction == "sideways" {
			return errors.New("invalid direction")
		}
		if sessionID == "input" {
			received <- msg
		}
		return nil
	})

	conn, _, err := websocket.DefaultDialer.Dial(url+"?session=input", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()
	waitForCount(t, hub, "input", 1)

	// Unknown actions are ignored
	if err := conn.WriteJSON(ClientMessage{Action: "dance"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := conn.WriteJSON(ClientMessage{Action: "turn", Direction: "up"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case msg := <-received:
		if msg.Direction != "up" {
			t.Errorf("Expected direction up, got %q", msg.Direction)
		}
	case <-time.After(time.Second):
		t.Fatal("input handler was not called")
	}

	if err := conn.WriteJSON(ClientMessage{Action: "turn", Direction: "sideways"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(time.Second))
	var reply Message
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read error reply: %v", err)
	}
	if reply.Event != "error" || reply.Data != "invalid direction" {
		t.Errorf("Unexpected reply %+v", reply)
	}
}

func TestHubRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "stop-test")
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()
	waitForCount(t, hub, "stop-test", 1)

	cancel()
	<-hub.done

	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("Expected the connection to close when the hub stops")
	}
	if hub.ClientCount("stop-test") != 0 {
		t.Error("Expected no clients after stop")
	}
	// Broadcasting after stop must not block
	hub.BroadcastEvent("stop-test", "late", nil)
}
