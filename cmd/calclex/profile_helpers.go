package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calclex/internal/prof"
)

// setupProfiling inspects persistent profiling flags and starts the selected
// profilers. A nil session means nothing was requested.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Flags()

	cpuProfile, err := flags.GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := flags.GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil, nil
	}
	return prof.Start(prof.Options{CPU: cpuProfile, Mem: memProfile, Trace: tracePath})
}
