package app

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// PollState describes where the poller is in its cycle.
type PollState int

const (
	// PollIdle: no tick armed (paused, or not started).
	PollIdle PollState = iota
	// PollScheduled: waiting for the next tick.
	PollScheduled
	// PollPolling: a sync request is in flight.
	PollPolling
)

func (s PollState) String() string {
	switch s {
	case PollScheduled:
		return "scheduled"
	case PollPolling:
		return "polling"
	default:
		return "idle"
	}
}

// PollFunc performs one background sync. It reports whether the sync
// committed new data.
type PollFunc func(ctx context.Context) (bool, error)

// Poller drives a PollFunc at a fixed cadence. At most one poll is ever in
// flight: a tick that fires while the previous poll is still running is
// skipped, never queued. Failures are logged and swallowed; the next tick
// retries, with the delay backing off while the backend stays unreachable.
type Poller struct {
	interval time.Duration
	poll     PollFunc
	wake     chan struct{}

	mu       sync.Mutex
	state    PollState
	paused   bool
	inFlight bool
	failures int
}

// NewPoller builds a poller around the given sync function. A non-positive
// interval falls back to the default.
func NewPoller(interval time.Duration, poll PollFunc) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		interval: interval,
		poll:     poll,
		wake:     make(chan struct{}, 1),
	}
}

// Start launches the polling loop in a background goroutine and returns
// immediately. The loop polls once right away, then on the cadence, until
// the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	p.Tick(ctx)
	for {
		if p.isPaused() {
			p.setState(PollIdle)
			select {
			case <-ctx.Done():
				return
			case <-p.wake:
			}
			// Resumed: poll immediately so the view catches up before
			// the regular cadence takes over.
			p.Tick(ctx)
			continue
		}

		p.setState(PollScheduled)
		timer := time.NewTimer(p.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			p.setState(PollIdle)
			return
		case <-p.wake:
			timer.Stop()
		case <-timer.C:
		}
		if !p.isPaused() {
			p.Tick(ctx)
		}
	}
}

// Tick runs one poll synchronously. It returns false when a poll was
// already in flight and this tick was skipped.
func (p *Poller) Tick(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	p.state = PollPolling
	p.mu.Unlock()

	_, err := p.poll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	p.state = PollIdle
	if err != nil {
		p.failures++
		if ctx.Err() == nil {
			log.Printf("background sync failed: %v", err)
		}
		return true
	}
	p.failures = 0
	return true
}

// Pause suspends the cadence. An in-flight poll finishes normally; no new
// ticks fire until Resume.
func (p *Poller) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// Resume lifts a pause and triggers an immediate tick.
func (p *Poller) Resume() {
	p.mu.Lock()
	wasPaused := p.paused
	p.paused = false
	p.mu.Unlock()
	if !wasPaused {
		return
	}
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// State returns the poller's current phase.
func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) isPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Poller) setState(s PollState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

func (p *Poller) nextDelay() time.Duration {
	p.mu.Lock()
	failures := p.failures
	p.mu.Unlock()
	return calculateBackoff(failures, p.interval)
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
