package fros

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/codec"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/engine"
)

type options struct {
	totalBlocks         int
	blockSize           int
	reservedBlocks      int
	recoveryProbability float64
	rand                RandomSource
	seed                *int64
	now                 func() time.Time
	codec               codec.Codec
	compression         codec.Compression
	metricsCollector    MetricsCollector
	logger              *Logger
}

// Option configures the Simulator constructor.
type Option func(*options)

func applyOptions(optFns []Option) options {
	o := options{
		totalBlocks:         engine.DefaultTotalBlocks,
		blockSize:           engine.DefaultBlockSize,
		reservedBlocks:      engine.DefaultReservedBlocks,
		recoveryProbability: engine.DefaultRecoveryProbability,
		now:                 time.Now,
		codec:               codec.Default,
		compression:         codec.CompressionNone,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.rand == nil {
		seed := o.now().UnixNano()
		if o.seed != nil {
			seed = *o.seed
		}
		o.rand = rand.New(rand.NewSource(seed)) //nolint:gosec // simulation, not crypto
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

// WithTotalBlocks sets the number of blocks on the disk (default 256).
func WithTotalBlocks(n int) Option {
	return func(o *options) {
		o.totalBlocks = n
	}
}

// WithBlockSize sets the block size in bytes (default 4096).
func WithBlockSize(n int) Option {
	return func(o *options) {
		o.blockSize = n
	}
}

// WithReservedBlocks sets how many leading blocks are reserved for metadata
// (default 4).
func WithReservedBlocks(n int) Option {
	return func(o *options) {
		o.reservedBlocks = n
	}
}

// WithRecoveryProbability sets the chance that recovery repairs a corrupted
// block (default 0.7).
func WithRecoveryProbability(p float64) Option {
	return func(o *options) {
		o.recoveryProbability = p
	}
}

// WithSeed seeds the simulator's private generator, making file ids, crash
// selection and recovery outcomes reproducible.
//
// Ignored when WithRandSource is also given.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithRandSource supplies the generator directly.
func WithRandSource(r RandomSource) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithClock supplies the timestamp source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithCodec configures the codec used by Export.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the frame Export wraps around the encoded state.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fros.BasicMetricsCollector{}
//	sim, _ := fros.New(fros.WithMetricsCollector(metrics))
//	// ... use sim ...
//	stats := metrics.GetStats()
//	fmt.Printf("Creates: %d, lost blocks: %d\n", stats.CreateCount, stats.BlocksLost)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := fros.NewJSONLogger(slog.LevelInfo)
//	sim, _ := fros.New(fros.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}
