package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	fros "github.com/vijay-x-Raj/File-Recovery-and-Optimization-System"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/scenario"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/resource"
)

type app struct {
	cfgPath string
	flags   Config
	cfg     Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	d := DefaultConfig()

	cmd := &cobra.Command{
		Use:               "fsim",
		Short:             "Simulate block allocation, crashes, recovery and defragmentation",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "YAML config file (default $FSIM_CONFIG_FILE)")
	f.IntVar(&a.flags.Blocks, "blocks", d.Blocks, "number of disk blocks")
	f.IntVar(&a.flags.BlockSize, "block-size", d.BlockSize, "block size in bytes")
	f.IntVar(&a.flags.Reserved, "reserved", d.Reserved, "leading blocks reserved for metadata")
	f.Float64Var(&a.flags.RecoveryProbability, "recovery-probability", d.RecoveryProbability, "chance that recovery repairs a block")
	f.Int64Var(&a.flags.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.StringVar(&a.flags.LogLevel, "log-level", d.LogLevel, "debug, info, warn or error")
	f.StringVar(&a.flags.LogFormat, "log-format", d.LogFormat, "text or json")
	f.StringVar(&a.flags.Codec, "codec", d.Codec, "dump codec (json, go-json)")
	f.StringVar(&a.flags.Compression, "compression", d.Compression, "dump compression (none, lz4, zstd)")
	f.StringVar(&a.flags.Dump, "dump", "", "write the final state to this file")
	f.Float64Var(&a.flags.OpsPerSecond, "ops-per-second", 0, "pace scenario steps (0 is unlimited)")
	f.StringVar(&a.flags.DumpRate, "dump-rate", "", "cap dump bandwidth per second, e.g. 512KiB")

	cmd.AddCommand(newRunCmd(a), newDemoCmd(a), newInspectCmd(a))
	return cmd
}

// load layers flags the user set over the file and environment config.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.cfgPath)
	if err != nil {
		return err
	}

	overrides := map[string]func(){
		"blocks":               func() { cfg.Blocks = a.flags.Blocks },
		"block-size":           func() { cfg.BlockSize = a.flags.BlockSize },
		"reserved":             func() { cfg.Reserved = a.flags.Reserved },
		"recovery-probability": func() { cfg.RecoveryProbability = a.flags.RecoveryProbability },
		"seed":                 func() { cfg.Seed = a.flags.Seed },
		"log-level":            func() { cfg.LogLevel = a.flags.LogLevel },
		"log-format":           func() { cfg.LogFormat = a.flags.LogFormat },
		"codec":                func() { cfg.Codec = a.flags.Codec },
		"compression":          func() { cfg.Compression = a.flags.Compression },
		"dump":                 func() { cfg.Dump = a.flags.Dump },
		"ops-per-second":       func() { cfg.OpsPerSecond = a.flags.OpsPerSecond },
		"dump-rate":            func() { cfg.DumpRate = a.flags.DumpRate },
	}
	for name, set := range overrides {
		if cmd.Flags().Changed(name) {
			set()
		}
	}

	a.cfg = cfg
	return nil
}

func (a *app) simulator(cmd *cobra.Command) (*fros.Simulator, error) {
	opts, err := a.cfg.Options(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return fros.New(opts...)
}

// replay runs script on a fresh simulator, prints every step and the final
// statistics, and writes the dump if one was requested.
func (a *app) replay(cmd *cobra.Command, script scenario.Script) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	sim, err := a.simulator(cmd)
	if err != nil {
		return err
	}
	rc, err := a.cfg.Controller()
	if err != nil {
		return err
	}

	geo := sim.Config()
	fmt.Fprintf(out, "scenario %s: %d steps on %d blocks of %s\n",
		orDefault(script.Name, "unnamed"), len(script.Steps), geo.TotalBlocks,
		humanize.IBytes(uint64(geo.BlockSize)))

	_, runErr := scenario.Run(ctx, sim, script,
		scenario.WithController(rc),
		scenario.WithObserver(func(r scenario.StepResult) {
			printStep(out, script.Steps[r.Index], r, geo.BlockSize)
		}),
	)

	printStats(out, "final", sim.Stats(), geo.BlockSize)

	if a.cfg.Dump != "" {
		if err := writeDump(ctx, sim, rc, a.cfg.Dump, out); err != nil {
			return err
		}
	}
	return runErr
}

func writeDump(ctx context.Context, sim *fros.Simulator, rc *resource.Controller, path string, out io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump: %w", err)
	}

	n, err := sim.Export(ctx, resource.NewRateLimitedWriter(ctx, f, rc))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	fmt.Fprintf(out, "dump %s written (%s)\n", path, humanize.IBytes(uint64(n)))
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
