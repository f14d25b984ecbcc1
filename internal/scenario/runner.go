package scenario

import (
	"context"
	"errors"
	"fmt"

	fros "github.com/vijay-x-Raj/File-Recovery-and-Optimization-System"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/resource"
)

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Index int    `json:"index"`
	Op    Op     `json:"op"`
	OK    bool   `json:"ok"`
	Err   string `json:"error,omitempty"`
	// Payload holds the operation's return value: a FileEntry, LogEntry,
	// []int, RecoveryResult, FsckReport, DefragResult or Stats.
	Payload any `json:"payload,omitempty"`
}

type options struct {
	controller *resource.Controller
	observe    func(StepResult)
}

// Option configures Run.
type Option func(*options)

// WithController routes every step through rc.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithObserver calls fn after each step, in order.
func WithObserver(fn func(StepResult)) Option {
	return func(o *options) {
		o.observe = fn
	}
}

// Run replays script against sim and returns one result per executed step.
//
// Running out of space is an expected outcome of a simulation and never stops
// the replay. Any other failure stops it, unless the script sets
// ContinueOnError; the returned error then names the failing step.
func Run(ctx context.Context, sim *fros.Simulator, script Script, optFns ...Option) ([]StepResult, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	r := &runner{sim: sim, aliases: map[string]string{}}
	results := make([]StepResult, 0, len(script.Steps))
	for i, st := range script.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		var payload any
		err := o.controller.Do(ctx, func() error {
			var err error
			payload, err = r.step(ctx, st)
			return err
		})

		res := StepResult{Index: i, Op: st.Op, OK: err == nil, Payload: payload}
		if err != nil {
			res.Err = err.Error()
		}
		results = append(results, res)
		if o.observe != nil {
			o.observe(res)
		}

		if err != nil && !errors.Is(err, fros.ErrNoSpace) && !script.ContinueOnError {
			return results, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
	}
	return results, nil
}

type runner struct {
	sim     *fros.Simulator
	aliases map[string]string
}

func (r *runner) resolve(ref string) string {
	if id, ok := r.aliases[ref]; ok {
		return id
	}
	return ref
}

func (r *runner) parent(ref string) string {
	if ref == "" {
		return fros.RootID
	}
	return r.resolve(ref)
}

func (r *runner) bind(alias, id string) {
	if alias != "" {
		r.aliases[alias] = id
	}
}

func (r *runner) step(ctx context.Context, st Step) (any, error) {
	switch st.Op {
	case OpMkdir:
		d, err := r.sim.CreateDirectory(ctx, st.Name, r.parent(st.Parent))
		if err != nil {
			return nil, err
		}
		r.bind(st.As, d.ID)
		return d, nil
	case OpCreate:
		strategy := fros.Contiguous
		if st.Strategy != "" {
			var err error
			if strategy, err = fros.ParseStrategy(st.Strategy); err != nil {
				return nil, err
			}
		}
		f, err := r.sim.CreateFile(ctx, st.Name, st.Size, r.parent(st.Parent), strategy)
		if err != nil {
			return nil, err
		}
		r.bind(st.As, f.ID)
		return f, nil
	case OpDelete:
		return nil, r.sim.DeleteFile(ctx, r.resolve(st.File))
	case OpRead:
		entry, err := r.sim.ReadFile(ctx, r.resolve(st.File))
		if err != nil {
			return nil, err
		}
		return entry, nil
	case OpCrash:
		corrupted, err := r.sim.SimulateCrash(ctx, st.Severity)
		if err != nil {
			return nil, err
		}
		return corrupted, nil
	case OpRecover:
		return r.sim.RecoverCorruptedBlocks(ctx), nil
	case OpFsck:
		return r.sim.RunFsck(ctx), nil
	case OpDefrag:
		return r.sim.Defragment(ctx), nil
	case OpStats:
		return r.sim.Stats(), nil
	}
	return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidScript, st.Op)
}
