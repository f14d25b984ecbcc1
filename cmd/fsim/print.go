package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	fros "github.com/vijay-x-Raj/File-Recovery-and-Optimization-System"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/scenario"
)

func printStep(w io.Writer, st scenario.Step, r scenario.StepResult, blockSize int) {
	if !r.OK {
		fmt.Fprintf(w, "%3d  %-8s FAILED %s\n", r.Index, r.Op, r.Err)
		return
	}

	var detail string
	switch p := r.Payload.(type) {
	case fros.FileEntry:
		if p.IsDirectory {
			detail = fmt.Sprintf("%s/ %s", p.Name, shortID(p.ID))
		} else {
			detail = fmt.Sprintf("%s %s %v (%s)", p.Name, shortID(p.ID), p.Blocks, humanize.IBytes(uint64(p.SizeBytes)))
		}
	case fros.LogEntry:
		state := "ok"
		if !p.Success {
			state = "corrupted"
		}
		detail = fmt.Sprintf("%s %s seek %.1f transfer %.1f total %.1f", p.FileName, state, p.SeekTime, p.TransferTime, p.TotalTime)
	case []int:
		detail = fmt.Sprintf("%d blocks corrupted %v", len(p), p)
	case fros.RecoveryResult:
		detail = fmt.Sprintf("%d recovered, %d lost, %d files affected", len(p.Recovered), len(p.Lost), len(p.FilesAffected))
	case fros.FsckReport:
		if p.Consistent() {
			detail = "clean"
		} else {
			detail = fmt.Sprintf("%d orphan, %d missing, %d inconsistent files",
				len(p.OrphanBlocks), len(p.MissingBlocks), len(p.InconsistentFiles))
		}
	case fros.DefragResult:
		detail = fmt.Sprintf("%d blocks moved, %.1f time saved", len(p.Moves), p.TimeSaved)
	case fros.Stats:
		fmt.Fprintf(w, "%3d  %-8s\n", r.Index, r.Op)
		printStats(w, orDefault(st.Name, "stats"), p, blockSize)
		return
	default:
		detail = "ok"
	}
	fmt.Fprintf(w, "%3d  %-8s %s\n", r.Index, r.Op, detail)
}

func printStats(w io.Writer, title string, s fros.Stats, blockSize int) {
	fmt.Fprintf(w, "  -- %s --\n", title)
	fmt.Fprintf(w, "  blocks     %d total, %d used, %d free, %d corrupted, %d reserved\n",
		s.TotalBlocks, s.UsedBlocks, s.FreeBlocks, s.CorruptedBlocks, s.ReservedBlocks)
	fmt.Fprintf(w, "  capacity   %s used of %s\n",
		humanize.IBytes(uint64(s.UsedBlocks*blockSize)), humanize.IBytes(uint64(s.TotalBlocks*blockSize)))
	fmt.Fprintf(w, "  entries    %d files, %d directories\n", s.Files, s.Directories)
	fmt.Fprintf(w, "  layout     %.0f%% fragmented\n", s.FragmentationPercent)
	fmt.Fprintf(w, "  timing     avg seek %.1f, avg transfer %.1f over %s operations\n",
		s.AvgSeekTime, s.AvgTransferTime, humanize.Comma(int64(s.TotalOperations)))
}

// blockMap renders one character per block, width per row.
func blockMap(blocks []fros.Block, width int) string {
	if width < 1 {
		width = 64
	}
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		switch blk.Status {
		case fros.Free:
			b.WriteByte('.')
		case fros.Used:
			b.WriteByte('#')
		case fros.Corrupted:
			b.WriteByte('X')
		case fros.Reserved:
			b.WriteByte('R')
		}
	}
	return b.String()
}

func printTree(w io.Writer, n fros.TreeNode, depth int) {
	e := n.Entry
	indent := strings.Repeat("  ", depth)
	if e.IsDirectory {
		name := e.Name
		if e.ID != fros.RootID {
			name += "/"
		}
		fmt.Fprintf(w, "%s%s\n", indent, name)
	} else {
		fmt.Fprintf(w, "%s%-*s %8s %v\n", indent, 24-len(indent), e.Name, humanize.IBytes(uint64(e.SizeBytes)), e.Blocks)
	}
	for _, c := range n.Children {
		printTree(w, c, depth+1)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
