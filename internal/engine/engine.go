package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/accesslog"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/alloc"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/disk"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/fstable"
)

const (
	DefaultTotalBlocks         = 256
	DefaultBlockSize           = 4096
	DefaultReservedBlocks      = 4
	DefaultRecoveryProbability = 0.7

	// DefragSavingPerMove is the illustrative time saved per relocated block.
	DefragSavingPerMove = 0.8
)

// Re-exported model types so callers need not import the internal packages.
type (
	Block     = disk.Block
	Status    = disk.Status
	Run       = disk.Run
	Strategy  = alloc.Strategy
	FileEntry = fstable.FileEntry
	TreeNode  = fstable.TreeNode
	LogEntry  = accesslog.Entry
	Operation = accesslog.Operation
)

const (
	Free      = disk.Free
	Used      = disk.Used
	Corrupted = disk.Corrupted
	Reserved  = disk.Reserved

	Contiguous = alloc.Contiguous
	Linked     = alloc.Linked
	Indexed    = alloc.Indexed

	RootID = fstable.RootID
)

// RandomSource is the generator used for file ids, crash selection and
// recovery outcomes. *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
	io.Reader
}

// Config describes an engine instance. Geometry is fixed for the instance's
// lifetime.
type Config struct {
	TotalBlocks    int
	BlockSize      int
	ReservedBlocks int

	// RecoveryProbability is the chance that a corrupted block is repaired.
	RecoveryProbability float64

	// Rand is the engine's generator. If nil, New seeds a private one from the
	// current time.
	Rand RandomSource

	// Now supplies timestamps. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the reference configuration: 256 blocks of 4 KiB with
// 4 reserved blocks and a 0.7 recovery probability.
func DefaultConfig() Config {
	return Config{
		TotalBlocks:         DefaultTotalBlocks,
		BlockSize:           DefaultBlockSize,
		ReservedBlocks:      DefaultReservedBlocks,
		RecoveryProbability: DefaultRecoveryProbability,
	}
}

// Validate checks the geometry and probabilities.
func (c Config) Validate() error {
	switch {
	case c.TotalBlocks < 1:
		return fmt.Errorf("%w: total blocks %d must be positive", ErrInvalidArgument, c.TotalBlocks)
	case c.BlockSize < 1:
		return fmt.Errorf("%w: block size %d must be positive", ErrInvalidArgument, c.BlockSize)
	case c.ReservedBlocks < 0 || c.ReservedBlocks >= c.TotalBlocks:
		return fmt.Errorf("%w: reserved blocks %d must be in [0, %d)", ErrInvalidArgument, c.ReservedBlocks, c.TotalBlocks)
	case !(c.RecoveryProbability >= 0 && c.RecoveryProbability <= 1):
		return fmt.Errorf("%w: recovery probability %v must be in [0, 1]", ErrInvalidArgument, c.RecoveryProbability)
	}
	return nil
}

// Engine is one simulated disk with its file table and access log.
//
// Engine is not safe for concurrent use.
type Engine struct {
	cfg   Config
	disk  *disk.Disk
	table *fstable.Table
	log   *accesslog.Log
	rng   RandomSource
	now   func() time.Time
}

// New builds the disk, the root directory and an empty access log.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(cfg.Now().UnixNano())) //nolint:gosec // simulation, not crypto
	}

	return &Engine{
		cfg:   cfg,
		disk:  disk.New(cfg.TotalBlocks, cfg.ReservedBlocks),
		table: fstable.New(cfg.Now()),
		log:   accesslog.New(),
		rng:   cfg.Rand,
		now:   cfg.Now,
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// newID draws a UUID from the engine's own generator so seeded engines hand
// out reproducible ids.
func (e *Engine) newID() string {
	for {
		u, err := uuid.NewRandomFromReader(e.rng)
		if err != nil {
			return fmt.Sprintf("file-%d", e.table.NextInode())
		}
		if _, taken := e.table.Lookup(u.String()); !taken {
			return u.String()
		}
	}
}

func (e *Engine) appendLog(ts time.Time, op accesslog.Operation, fileID, fileName string, blocks []int, success bool) LogEntry {
	entry := accesslog.NewEntry(ts, op, fileID, fileName, blocks, success)
	e.log.Append(entry)
	return entry
}

func (e *Engine) sizeOf(blocks []int) int64 {
	return int64(len(blocks)) * int64(e.cfg.BlockSize)
}
