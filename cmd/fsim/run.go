package main

import (
	"github.com/spf13/cobra"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/scenario"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Replay a YAML scenario script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			return a.replay(cmd, script)
		},
	}
}
