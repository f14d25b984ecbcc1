package fros

import (
	"context"
	"time"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/codec"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/alloc"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/engine"
)

// Model types shared with the engine.
type (
	Block          = engine.Block
	Status         = engine.Status
	Run            = engine.Run
	Strategy       = engine.Strategy
	FileEntry      = engine.FileEntry
	TreeNode       = engine.TreeNode
	LogEntry       = engine.LogEntry
	Operation      = engine.Operation
	RecoveryResult = engine.RecoveryResult
	FsckReport     = engine.FsckReport
	DefragResult   = engine.DefragResult
	Move           = engine.Move
	Stats          = engine.Stats
	RandomSource   = engine.RandomSource
)

const (
	Free      = engine.Free
	Used      = engine.Used
	Corrupted = engine.Corrupted
	Reserved  = engine.Reserved

	Contiguous = engine.Contiguous
	Linked     = engine.Linked
	Indexed    = engine.Indexed

	// RootID is the id of the root directory.
	RootID = engine.RootID
)

// ParseStrategy maps "contiguous", "linked" or "indexed" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s, err := alloc.ParseStrategy(name)
	return s, translateError(err)
}

// Geometry is the fixed configuration of a Simulator.
type Geometry struct {
	TotalBlocks         int     `json:"totalBlocks"`
	BlockSize           int     `json:"blockSize"`
	ReservedBlocks      int     `json:"reservedBlocks"`
	RecoveryProbability float64 `json:"recoveryProbability"`
}

// Simulator is an in-memory file-system simulation: one disk, its file
// table and its access log.
//
// A Simulator is not safe for concurrent use. Hosts that share one across
// goroutines serialize calls, for example through resource.Controller.
type Simulator struct {
	eng     *engine.Engine
	opts    options
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Simulator with an empty disk and a root directory.
func New(optFns ...Option) (*Simulator, error) {
	o := applyOptions(optFns)
	if err := validate(o); err != nil {
		return nil, err
	}

	eng, err := engine.New(engine.Config{
		TotalBlocks:         o.totalBlocks,
		BlockSize:           o.blockSize,
		ReservedBlocks:      o.reservedBlocks,
		RecoveryProbability: o.recoveryProbability,
		Rand:                o.rand,
		Now:                 o.now,
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &Simulator{
		eng:     eng,
		opts:    o,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

func validate(o options) error {
	invalid := func(field string, value any) error {
		return &ErrInvalidConfig{Field: field, Value: value, cause: ErrInvalidArgument}
	}
	switch {
	case o.totalBlocks < 1:
		return invalid("TotalBlocks", o.totalBlocks)
	case o.blockSize < 1:
		return invalid("BlockSize", o.blockSize)
	case o.reservedBlocks < 0 || o.reservedBlocks >= o.totalBlocks:
		return invalid("ReservedBlocks", o.reservedBlocks)
	case !(o.recoveryProbability >= 0 && o.recoveryProbability <= 1):
		return invalid("RecoveryProbability", o.recoveryProbability)
	case o.compression > codec.CompressionZSTD:
		return invalid("Compression", o.compression)
	}
	return nil
}

// Config returns the simulator's geometry.
func (s *Simulator) Config() Geometry {
	c := s.eng.Config()
	return Geometry{
		TotalBlocks:         c.TotalBlocks,
		BlockSize:           c.BlockSize,
		ReservedBlocks:      c.ReservedBlocks,
		RecoveryProbability: c.RecoveryProbability,
	}
}

// CreateFile allocates size blocks with strategy and links a new file under
// parentID. Allocation is all-or-nothing: on ErrNoSpace nothing changes.
func (s *Simulator) CreateFile(ctx context.Context, name string, size int, parentID string, strategy Strategy) (FileEntry, error) {
	start := time.Now()
	f, err := s.eng.CreateFile(name, size, parentID, strategy)
	err = translateError(err)

	s.metrics.RecordCreate(time.Since(start), err)
	s.logger.LogCreate(ctx, "file", name, f.ID, f.Blocks, err)
	return f, err
}

// CreateDirectory links a new empty directory under parentID.
func (s *Simulator) CreateDirectory(ctx context.Context, name, parentID string) (FileEntry, error) {
	start := time.Now()
	d, err := s.eng.CreateDirectory(name, parentID)
	err = translateError(err)

	s.metrics.RecordCreate(time.Since(start), err)
	s.logger.LogCreate(ctx, "directory", name, d.ID, nil, err)
	return d, err
}

// DeleteFile frees a file's blocks and removes it from its directory.
func (s *Simulator) DeleteFile(ctx context.Context, id string) error {
	start := time.Now()
	err := translateError(s.eng.DeleteFile(id))

	s.metrics.RecordDelete(time.Since(start), err)
	s.logger.LogDelete(ctx, id, err)
	return err
}

// ReadFile simulates a read and returns its access-log entry. A read that
// touches a corrupted block is not an error; the entry's Success is false.
func (s *Simulator) ReadFile(ctx context.Context, id string) (LogEntry, error) {
	start := time.Now()
	entry, err := s.eng.ReadFile(id)
	err = translateError(err)

	s.metrics.RecordRead(time.Since(start), entry.Success, err)
	s.logger.LogRead(ctx, id, entry, err)
	return entry, err
}

// SimulateCrash corrupts a share of the Used blocks given by severity, which
// must be in (0, 1]. It returns the corrupted ids in ascending order.
func (s *Simulator) SimulateCrash(ctx context.Context, severity float64) ([]int, error) {
	corrupted, err := s.eng.SimulateCrash(severity)
	err = translateError(err)

	s.metrics.RecordCrash(len(corrupted), err)
	s.logger.LogCrash(ctx, severity, corrupted, err)
	return corrupted, err
}

// RecoverCorruptedBlocks attempts to repair every corrupted block.
func (s *Simulator) RecoverCorruptedBlocks(ctx context.Context) RecoveryResult {
	res := s.eng.RecoverCorruptedBlocks()

	s.metrics.RecordRecovery(len(res.Recovered), len(res.Lost))
	s.logger.LogRecovery(ctx, res)
	return res
}

// RunFsck cross-checks the disk against the file table. It never modifies
// either.
func (s *Simulator) RunFsck(ctx context.Context) FsckReport {
	report := s.eng.RunFsck()

	s.metrics.RecordFsck(report.Consistent())
	s.logger.LogFsck(ctx, report)
	return report
}

// Defragment packs every file into one contiguous run.
func (s *Simulator) Defragment(ctx context.Context) DefragResult {
	start := time.Now()
	res := s.eng.Defragment()

	s.metrics.RecordDefragment(len(res.Moves), time.Since(start))
	s.logger.LogDefragment(ctx, res)
	return res
}

// Stats returns the current statistics.
func (s *Simulator) Stats() Stats { return s.eng.Stats() }

// DirectoryTree returns the subtree rooted at id.
func (s *Simulator) DirectoryTree(id string) (TreeNode, error) {
	t, err := s.eng.DirectoryTree(id)
	return t, translateError(err)
}

// File returns the entry with the given id.
func (s *Simulator) File(id string) (FileEntry, error) {
	f, err := s.eng.File(id)
	return f, translateError(err)
}

// Files returns every entry, the root included, in creation order.
func (s *Simulator) Files() []FileEntry { return s.eng.Files() }

// Blocks returns a copy of every block in id order.
func (s *Simulator) Blocks() []Block { return s.eng.Blocks() }

// AccessLog returns a copy of the access log, oldest first.
func (s *Simulator) AccessLog() []LogEntry { return s.eng.AccessLog() }

// Bitmap returns one entry per block, true when the block is Free.
func (s *Simulator) Bitmap() []bool { return s.eng.Bitmap() }

// FreeList returns the Free block ids in ascending order.
func (s *Simulator) FreeList() []int { return s.eng.FreeList() }

// GroupedFreeList returns the free ids in groups of at most eight.
func (s *Simulator) GroupedFreeList() [][]int { return s.eng.GroupedFreeList() }

// CountingFreeList returns the free ids as maximal contiguous runs.
func (s *Simulator) CountingFreeList() []Run { return s.eng.CountingFreeList() }
