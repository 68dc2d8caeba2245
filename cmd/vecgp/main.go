// SPDX-License-Identifier: MIT

// Command vecgp samples, checks and conditions vector-valued Gaussian process
// fields on regular 2-D grids.
//
//	vecgp sample --config exp.toml
//	vecgp check  --config exp.toml fields.csv
//	vecgp infer  --config exp.toml fields.csv --sample 0 --out posterior.parquet
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/vecgp/internal/config"
	"github.com/katalvlaran/vecgp/internal/logutil"
)

type app struct {
	configPath string
	cfg        config.Config
	log        *zap.Logger
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	log, err := logutil.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log

	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "vecgp",
		Short:             "Matrix-valued kernel GP toolkit",
		Long:              "Sample vector-valued GP fields on grids, check their divergence and curl, and compute posteriors.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML experiment file (defaults apply when empty)")
	root.AddCommand(sampleCommand(a), checkCommand(a), inferCommand(a))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
