package fros

import (
	"context"
	"io"
	"time"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/codec"
)

// FreeSpace holds the free-space views of a disk.
type FreeSpace struct {
	FreeList []int   `json:"freeList"`
	Grouped  [][]int `json:"grouped"`
	Runs     []Run   `json:"runs"`
}

// State is a serializable copy of everything a presentation layer shows.
// It is a debug dump: nothing reads a State back into a Simulator.
type State struct {
	CapturedAt time.Time   `json:"capturedAt"`
	Config     Geometry    `json:"config"`
	Blocks     []Block     `json:"blocks"`
	Files      []FileEntry `json:"files"`
	Tree       TreeNode    `json:"tree"`
	FreeSpace  FreeSpace   `json:"freeSpace"`
	Log        []LogEntry  `json:"log"`
	Stats      Stats       `json:"stats"`
}

// Snapshot copies the current state.
func (s *Simulator) Snapshot() State {
	tree, _ := s.eng.DirectoryTree(RootID)
	return State{
		CapturedAt: s.opts.now(),
		Config:     s.Config(),
		Blocks:     s.eng.Blocks(),
		Files:      s.eng.Files(),
		Tree:       tree,
		FreeSpace: FreeSpace{
			FreeList: s.eng.FreeList(),
			Grouped:  s.eng.GroupedFreeList(),
			Runs:     s.eng.CountingFreeList(),
		},
		Log:   s.eng.AccessLog(),
		Stats: s.eng.Stats(),
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Export writes a Snapshot to w with the configured codec and compression.
// It returns the number of bytes written.
func (s *Simulator) Export(ctx context.Context, w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := codec.Encode(cw, s.opts.codec, s.opts.compression, s.Snapshot())

	s.logger.LogExport(ctx, s.opts.codec.Name(), s.opts.compression.String(), cw.n, err)
	return cw.n, err
}

// ReadState decodes a dump written by Export. The compression is detected
// from the data; c must match the codec used to write it (nil means
// codec.Default).
func ReadState(r io.Reader, c codec.Codec) (State, error) {
	var st State
	err := codec.Decode(r, c, &st)
	return st, err
}
