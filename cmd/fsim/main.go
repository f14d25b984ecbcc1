// Command fsim drives the file-system simulator from the terminal.
//
//	fsim demo --seed 7
//	fsim run scenario.yaml --dump state.json.zst --compression zstd
//	fsim inspect state.json.zst
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fsim:", err)
		os.Exit(1)
	}
}
