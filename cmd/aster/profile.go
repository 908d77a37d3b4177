package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aster/internal/prof"
)

// setupProfiling starts the profilers requested by the persistent flags.
// The returned cleanup may be called more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, err
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s failed to write profile: %v\n", errLabel.Sprint("warning:"), err)
		}
	}, nil
}
