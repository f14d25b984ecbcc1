// Package resource serializes access to a shared simulator.
//
// The engine itself does no locking. Hosts that call one instance from
// several goroutines route every operation through a Controller, which admits
// one operation at a time and can throttle admission and export bandwidth.
package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrBusy is returned by TryDo when another operation holds the gate.
	ErrBusy = errors.New("resource: simulator busy")

	// ErrQueueFull is returned by Do when MaxQueued callers are already waiting.
	ErrQueueFull = errors.New("resource: too many waiting operations")
)

// Config holds resource limits.
type Config struct {
	// MaxQueued bounds how many callers may wait for the gate.
	// If 0, waiting is unbounded.
	MaxQueued int64

	// OpsPerSecond throttles admitted operations. If 0, unlimited.
	OpsPerSecond float64

	// Burst is the number of operations admitted back to back before
	// OpsPerSecond applies. Defaults to 1.
	Burst int

	// IOLimitBytesPerSec is the maximum throughput for exported dumps.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Stats is a snapshot of a Controller's counters.
type Stats struct {
	Executed int64
	Rejected int64
	Waiting  int64
}

// Controller is a single-writer gate around a simulator.
type Controller struct {
	cfg Config

	gate *semaphore.Weighted

	opsLimiter *rate.Limiter // nil if unlimited
	ioLimiter  *rate.Limiter // nil if unlimited

	executed atomic.Int64
	rejected atomic.Int64
	waiting  atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	c := &Controller{
		cfg:  cfg,
		gate: semaphore.NewWeighted(1),
	}

	if cfg.OpsPerSecond > 0 {
		c.opsLimiter = rate.NewLimiter(rate.Limit(cfg.OpsPerSecond), cfg.Burst)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Do waits for exclusive access and runs fn. It returns ctx's error if ctx
// ends first, in which case fn never runs. A nil Controller runs fn directly.
func (c *Controller) Do(ctx context.Context, fn func() error) error {
	if c == nil {
		return fn()
	}

	if c.cfg.MaxQueued > 0 && c.waiting.Load() >= c.cfg.MaxQueued {
		c.rejected.Add(1)
		return ErrQueueFull
	}

	c.waiting.Add(1)
	err := c.gate.Acquire(ctx, 1)
	c.waiting.Add(-1)
	if err != nil {
		c.rejected.Add(1)
		return err
	}
	defer c.gate.Release(1)

	if c.opsLimiter != nil {
		if err := c.opsLimiter.Wait(ctx); err != nil {
			c.rejected.Add(1)
			return err
		}
	}

	c.executed.Add(1)
	return fn()
}

// TryDo runs fn only if the gate is free and the rate limit allows it right
// now. Otherwise it returns ErrBusy without running fn.
func (c *Controller) TryDo(fn func() error) error {
	if c == nil {
		return fn()
	}

	if !c.gate.TryAcquire(1) {
		c.rejected.Add(1)
		return ErrBusy
	}
	defer c.gate.Release(1)

	if c.opsLimiter != nil && !c.opsLimiter.Allow() {
		c.rejected.Add(1)
		return ErrBusy
	}

	c.executed.Add(1)
	return fn()
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	// WaitN rejects requests above the burst, so large writes go in slices.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// Stats returns a snapshot of the counters.
func (c *Controller) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Executed: c.executed.Load(),
		Rejected: c.rejected.Load(),
		Waiting:  c.waiting.Load(),
	}
}
