package fros

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCreate is called after each file or directory creation.
	// err is nil if successful.
	RecordCreate(duration time.Duration, err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(duration time.Duration, err error)

	// RecordRead is called after each read. success is false when the read
	// hit a corrupted block.
	RecordRead(duration time.Duration, success bool, err error)

	// RecordCrash is called after each simulated crash with the number of
	// blocks corrupted.
	RecordCrash(corrupted int, err error)

	// RecordRecovery is called after each recovery pass.
	RecordRecovery(recovered, lost int)

	// RecordFsck is called after each consistency check.
	RecordFsck(consistent bool)

	// RecordDefragment is called after each defragmentation pass.
	RecordDefragment(moves int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(time.Duration, error)     {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)     {}
func (NoopMetricsCollector) RecordRead(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordCrash(int, error)                {}
func (NoopMetricsCollector) RecordRecovery(int, int)               {}
func (NoopMetricsCollector) RecordFsck(bool)                       {}
func (NoopMetricsCollector) RecordDefragment(int, time.Duration)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount      atomic.Int64
	CreateErrors     atomic.Int64
	CreateTotalNanos atomic.Int64
	DeleteCount      atomic.Int64
	DeleteErrors     atomic.Int64
	ReadCount        atomic.Int64
	ReadErrors       atomic.Int64
	ReadCorrupted    atomic.Int64
	ReadTotalNanos   atomic.Int64
	CrashCount       atomic.Int64
	BlocksCorrupted  atomic.Int64
	RecoveryCount    atomic.Int64
	BlocksRecovered  atomic.Int64
	BlocksLost       atomic.Int64
	FsckCount        atomic.Int64
	FsckFailures     atomic.Int64
	DefragCount      atomic.Int64
	DefragMoves      atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	b.CreateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(duration time.Duration, success bool, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err != nil:
		b.ReadErrors.Add(1)
	case !success:
		b.ReadCorrupted.Add(1)
	}
}

// RecordCrash implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCrash(corrupted int, err error) {
	if err != nil {
		return
	}
	b.CrashCount.Add(1)
	b.BlocksCorrupted.Add(int64(corrupted))
}

// RecordRecovery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecovery(recovered, lost int) {
	b.RecoveryCount.Add(1)
	b.BlocksRecovered.Add(int64(recovered))
	b.BlocksLost.Add(int64(lost))
}

// RecordFsck implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFsck(consistent bool) {
	b.FsckCount.Add(1)
	if !consistent {
		b.FsckFailures.Add(1)
	}
}

// RecordDefragment implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDefragment(moves int, duration time.Duration) {
	b.DefragCount.Add(1)
	b.DefragMoves.Add(int64(moves))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:     b.CreateCount.Load(),
		CreateErrors:    b.CreateErrors.Load(),
		CreateAvgNanos:  avg(b.CreateTotalNanos.Load(), b.CreateCount.Load()),
		DeleteCount:     b.DeleteCount.Load(),
		DeleteErrors:    b.DeleteErrors.Load(),
		ReadCount:       b.ReadCount.Load(),
		ReadErrors:      b.ReadErrors.Load(),
		ReadCorrupted:   b.ReadCorrupted.Load(),
		ReadAvgNanos:    avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		CrashCount:      b.CrashCount.Load(),
		BlocksCorrupted: b.BlocksCorrupted.Load(),
		RecoveryCount:   b.RecoveryCount.Load(),
		BlocksRecovered: b.BlocksRecovered.Load(),
		BlocksLost:      b.BlocksLost.Load(),
		FsckCount:       b.FsckCount.Load(),
		FsckFailures:    b.FsckFailures.Load(),
		DefragCount:     b.DefragCount.Load(),
		DefragMoves:     b.DefragMoves.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount     int64
	CreateErrors    int64
	CreateAvgNanos  int64
	DeleteCount     int64
	DeleteErrors    int64
	ReadCount       int64
	ReadErrors      int64
	ReadCorrupted   int64
	ReadAvgNanos    int64
	CrashCount      int64
	BlocksCorrupted int64
	RecoveryCount   int64
	BlocksRecovered int64
	BlocksLost      int64
	FsckCount       int64
	FsckFailures    int64
	DefragCount     int64
	DefragMoves     int64
}
