package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	fros "github.com/vijay-x-Raj/File-Recovery-and-Optimization-System"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/codec"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		width int
		tail  int
	)
	cmd := &cobra.Command{
		Use:   "inspect DUMP",
		Short: "Summarize a state dump written with --dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cd, err := codec.Parse(a.cfg.Codec)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			fi, err := f.Stat()
			if err != nil {
				return err
			}
			st, err := fros.ReadState(f, cd)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, captured %s\n", args[0], humanize.IBytes(uint64(fi.Size())), humanize.Time(st.CapturedAt))
			fmt.Fprintf(out, "geometry: %d blocks of %s, %d reserved, recovery p=%.2f\n\n",
				st.Config.TotalBlocks, humanize.IBytes(uint64(st.Config.BlockSize)),
				st.Config.ReservedBlocks, st.Config.RecoveryProbability)

			fmt.Fprintln(out, blockMap(st.Blocks, width))
			fmt.Fprintln(out)

			counts := map[fros.Status]int{}
			for _, b := range st.Blocks {
				counts[b.Status]++
			}
			statuses := make([]fros.Status, 0, len(counts))
			for s := range counts {
				statuses = append(statuses, s)
			}
			sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
			for _, s := range statuses {
				fmt.Fprintf(out, "%-10s %d\n", s, counts[s])
			}
			fmt.Fprintf(out, "free runs  %d\n\n", len(st.FreeSpace.Runs))

			printTree(out, st.Tree, 0)
			fmt.Fprintln(out)
			printStats(out, "stats", st.Stats, st.Config.BlockSize)

			if tail > 0 && len(st.Log) > 0 {
				fmt.Fprintf(out, "\nlast %d of %d log entries:\n", min(tail, len(st.Log)), len(st.Log))
				for _, e := range st.Log[max(0, len(st.Log)-tail):] {
					fmt.Fprintf(out, "  %s %-7s %-12s %v ok=%t\n",
						e.Timestamp.Format("15:04:05"), e.Operation, e.FileName, e.Blocks, e.Success)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 64, "blocks per row in the block map")
	cmd.Flags().IntVar(&tail, "tail", 10, "access-log entries to show")
	return cmd
}
