package layout

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates the 60fps animation loop the
// browser frontend drove the simulation with.
const DefaultFrameInterval = 16 * time.Millisecond

// Runner owns the tick scheduling for one layout session. It calls the
// given tick function at a fixed interval on its own goroutine until
// stopped. Every view owns exactly one runner per graph; switching
// graphs must Stop the old runner before starting a new one so no two
// schedulers ever touch the same node slice.
type Runner struct {
	interval time.Duration
	tick     func()

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewRunner creates a stopped runner. A zero interval falls back to
// DefaultFrameInterval.
func NewRunner(interval time.Duration, tick func()) *Runner {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Runner{
		interval: interval,
		tick:     tick,
	}
}

// Start launches the tick loop. Starting an already running runner is a
// no-op.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.loop(r.stop, r.done)
}

func (r *Runner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// Stop halts the tick loop and waits for the goroutine to exit, so no
// tick runs after Stop returns. Safe to call repeatedly and on a runner
// that never started.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done
}

// Running reports whether the tick loop is live.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// RunToSettle ticks a simulation synchronously until it settles or the
// tick cap is reached, returning the number of ticks executed. Used by
// the background worker to compute a static layout without a frame
// schedule.
func RunToSettle(ctx context.Context, sim *Simulation, maxTicks int) int {
	ticks := 0
	for ticks < maxTicks && !sim.Settled() {
		if ctx.Err() != nil {
			return ticks
		}
		sim.Tick()
		ticks++
	}
	return ticks
}
