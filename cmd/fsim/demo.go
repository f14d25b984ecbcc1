package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/scenario"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		files    int
		size     int
		severity float64
		script   bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fragment a disk, crash it, recover and defragment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := demoScript(files, size, severity)
			if script {
				return scenario.Marshal(cmd.OutOrStdout(), s)
			}
			return a.replay(cmd, s)
		},
	}
	cmd.Flags().IntVar(&files, "files", 8, "files to create before punching holes")
	cmd.Flags().IntVar(&size, "size", 4, "blocks per file")
	cmd.Flags().Float64Var(&severity, "severity", 0.3, "crash severity in (0, 1]")
	cmd.Flags().BoolVar(&script, "print-script", false, "print the demo as a scenario script instead of running it")
	return cmd
}

// demoScript lays files back to back, deletes every second one, fills the
// holes with a linked file, then crashes, recovers and defragments.
func demoScript(files, size int, severity float64) scenario.Script {
	s := scenario.Script{Name: "demo", ContinueOnError: true}
	add := func(st scenario.Step) { s.Steps = append(s.Steps, st) }

	add(scenario.Step{Op: scenario.OpMkdir, Name: "data", As: "data"})
	for i := range files {
		name := fmt.Sprintf("f-%d", i)
		add(scenario.Step{Op: scenario.OpCreate, Name: name, Parent: "data", Size: size, Strategy: "contiguous", As: name})
	}
	for i := 1; i < files; i += 2 {
		add(scenario.Step{Op: scenario.OpDelete, File: fmt.Sprintf("f-%d", i)})
	}
	add(scenario.Step{Op: scenario.OpCreate, Name: "spread", Size: size * 2, Strategy: "linked", As: "spread"})
	add(scenario.Step{Op: scenario.OpRead, File: "spread"})
	add(scenario.Step{Op: scenario.OpStats, Name: "fragmented"})

	add(scenario.Step{Op: scenario.OpCrash, Severity: severity})
	add(scenario.Step{Op: scenario.OpFsck})
	add(scenario.Step{Op: scenario.OpRecover})
	add(scenario.Step{Op: scenario.OpFsck})
	add(scenario.Step{Op: scenario.OpStats, Name: "recovered"})

	add(scenario.Step{Op: scenario.OpDefrag})
	add(scenario.Step{Op: scenario.OpRead, File: "spread"})
	add(scenario.Step{Op: scenario.OpStats, Name: "defragmented"})
	return s
}
