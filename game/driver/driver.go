// Package driver runs sessions in real time. Each running session gets one
// goroutine that advances it at the configured tick rate and publishes every
// result.
package driver

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
	"github.com/wricardo/mcp-training/snakegame/game/service"
)

var (
	ErrAlreadyRunning = errors.New("session is already running")
	ErrNotRunning     = errors.New("session is not running")
)

// Advancer advances a session by one tick
type Advancer interface {
	Advance(ctx context.Context, sessionID string) (*service.TickResult, error)
}

// Publisher receives every driven tick
type Publisher interface {
	Publish(sessionID string, result *service.TickResult)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(sessionID string, result *service.TickResult)

func (f PublisherFunc) Publish(sessionID string, result *service.TickResult) {
	f(sessionID, result)
}

type run struct {
	quit chan struct{}
	done chan struct{}
}

// Driver owns the per-session tick loops
type Driver struct {
	ctx       context.Context
	advancer  Advancer
	publisher Publisher

	mu   sync.Mutex
	runs map[string]*run
	wg   sync.WaitGroup
}

// New creates a driver. Loops end when ctx is cancelled.
func New(ctx context.Context, advancer Advancer, publisher Publisher) *Driver {
	return &Driver{
		ctx:       ctx,
		advancer:  advancer,
		publisher: publisher,
		runs:      make(map[string]*run),
	}
}

// Start begins ticking a session every interval. A non-positive interval
// uses the default tick rate.
func (d *Driver) Start(sessionID string, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / engine.DefaultTickRate
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.runs[sessionID]; ok {
		return ErrAlreadyRunning
	}
	if err := d.ctx.Err(); err != nil {
		return err
	}

	r := &run{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	d.runs[sessionID] = r
	d.wg.Add(1)
	go d.loop(sessionID, interval, r)

	log.Printf("[DRIVER] started session=%s interval=%s", sessionID, interval)
	return nil
}

// Stop halts a session's loop and waits for it to exit. An in-flight tick
// completes first.
func (d *Driver) Stop(sessionID string) error {
	d.mu.Lock()
	r, ok := d.runs[sessionID]
	if ok {
		delete(d.runs, sessionID)
	}
	d.mu.Unlock()

	if !ok {
		return ErrNotRunning
	}
	close(r.quit)
	<-r.done
	log.Printf("[DRIVER] stopped session=%s", sessionID)
	return nil
}

// StopAll halts every loop
func (d *Driver) StopAll() {
	d.mu.Lock()
	ids := make([]string, 0, len(d.runs))
	for id := range d.runs {
		ids = append(ids, id)
	}
	d.mu.Unlock()

	for _, id := range ids {
		// Loops may finish on their own meanwhile
		_ = d.Stop(id)
	}
}

// Running reports whether a session is being driven
func (d *Driver) Running(sessionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.runs[sessionID]
	return ok
}

// Wait blocks until every loop has exited
func (d *Driver) Wait() {
	d.wg.Wait()
}

func (d *Driver) loop(sessionID string, interval time.Duration, r *run) {
	defer d.wg.Done()
	defer close(r.done)
	defer d.forget(sessionID, r)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-r.quit:
			return
		case <-ticker.C:
			result, err := d.advancer.Advance(d.ctx, sessionID)
			if err != nil {
				log.Printf("[DRIVER] session=%s stopped: %v", sessionID, err)
				return
			}
			if d.publisher != nil {
				d.publisher.Publish(sessionID, result)
			}
			if result.Result.Status.Terminal() {
				log.Printf("[DRIVER] session=%s round over: %s", sessionID, result.Result.Status)
				return
			}
		}
	}
}

// forget drops the run unless Stop already replaced or removed it
func (d *Driver) forget(sessionID string, r *run) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.runs[sessionID] == r {
		delete(d.runs, sessionID)
	}
}
