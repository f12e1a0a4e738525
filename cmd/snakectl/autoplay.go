package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jpillora/backoff"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
	"github.com/wricardo/mcp-training/snakegame/game/service"
)

// errRetryable marks failures worth another attempt
var errRetryable = errors.New("retryable")

// Client plays a session over the REST API
type Client struct {
	baseURL    string
	sessionID  string
	client     *http.Client
	maxRetries int
	backoff    *backoff.Backoff
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: 5,
		backoff: &backoff.Backoff{
			Min:    100 * time.Millisecond,
			Max:    2 * time.Second,
			Factor: 2,
			Jitter: true,
		},
	}
}

// do sends one request, retrying connection failures and 5xx responses
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	c.backoff.Reset()
	for attempt := 0; ; attempt++ {
		err := c.once(ctx, method, path, payload, result)
		if err == nil || !errors.Is(err, errRetryable) || attempt >= c.maxRetries {
			return err
		}

		select {
		case <-time.After(c.backoff.Duration()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte, result interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %v", errRetryable, method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s %s: %s - %s", errRetryable, method, path, resp.Status, strings.TrimSpace(string(data)))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %s - %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// CreateSession starts a new session and remembers its ID
func (c *Client) CreateSession(ctx context.Context, configID string) (*engine.GameState, error) {
	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.do(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	c.sessionID = session.ID
	return session.GameState, nil
}

// Tick advances the session one step, turning first unless d is None
func (c *Client) Tick(ctx context.Context, d engine.Direction) (*service.TickResult, error) {
	body := map[string]string{}
	if d != engine.None {
		body["direction"] = d.String()
	}

	var result service.TickResult
	if err := c.do(ctx, "POST", "/api/sessions/"+c.sessionID+"/tick", body, &result); err != nil {
		return nil, fmt.Errorf("tick: %w", err)
	}
	return &result, nil
}

// autoplay plays one round on the server with the autopilot
func autoplay(ctx context.Context, w io.Writer, client *Client, configID string, maxTicks int) (*engine.GameState, error) {
	state, err := client.CreateSession(ctx, configID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Session %s (%s) %dx%d\n", client.sessionID, state.ConfigName, state.Bounds.Width, state.Bounds.Height)

	apples := 0
	for ticks := 0; ticks < maxTicks && !state.GameOver; ticks++ {
		result, err := client.Tick(ctx, nextMove(state))
		if err != nil {
			return state, err
		}
		state = result.GameState
		if result.Step.Ate {
			apples++
			fmt.Fprintf(w, "tick %d: apple at (%d,%d), length %d\n", state.Tick, result.Step.To.X, result.Step.To.Y, state.Score)
		}
	}

	fmt.Fprintf(w, "\nFinal length: %d\nApples: %d\nTicks: %d\nStatus: %s\n", state.Score, apples, state.Tick, state.Status)
	if state.Message != "" {
		fmt.Fprintf(w, "Message: %s\n", state.Message)
	}
	return state, nil
}
