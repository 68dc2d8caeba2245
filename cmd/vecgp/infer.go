// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/vecgp/gp"
	"github.com/katalvlaran/vecgp/internal/dataset"
	"github.com/katalvlaran/vecgp/matrix"
)

// subsample keeps every stride-th row of m.
func subsample(m *matrix.Dense, stride int) (*matrix.Dense, error) {
	rows := make([][]float64, 0, (m.Rows()+stride-1)/stride)
	for i := 0; i < m.Rows(); i += stride {
		r, err := m.RowView(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}

	return matrix.NewFromRows(rows)
}

func inferCommand(a *app) *cobra.Command {
	var sample int
	var out string
	cmd := &cobra.Command{
		Use:   "infer <dataset>",
		Short: "Condition on every stride-th point of one sampled field and predict the whole grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := readDataset(args[0])
			if err != nil {
				return err
			}
			if sample < 0 || sample >= len(ds.Fields) {
				return fmt.Errorf("infer: sample %d of %d: %w", sample, len(ds.Fields), matrix.ErrOutOfRange)
			}
			kc, err := a.cfg.Kernel.Build()
			if err != nil {
				return err
			}
			stride := a.cfg.Infer.Stride
			xc, err := subsample(ds.Points, stride)
			if err != nil {
				return err
			}
			yc, err := subsample(ds.Fields[sample], stride)
			if err != nil {
				return err
			}

			post, err := gp.Infer(xc, yc, ds.Points, kc, a.cfg.Infer.ObsNoise, a.cfg.Noise.Jitter)
			if err != nil {
				return err
			}
			truth := ds.Fields[sample].Flatten()
			rmse := floats.Distance(post.Mean.Flatten(), truth, 2) / math.Sqrt(float64(len(truth)))
			meanVar := stat.Mean(post.Var.Flatten(), nil)
			fmt.Fprintf(cmd.OutOrStdout(), "context %d targets %d rmse %.6f mean-var %.6f\n",
				xc.Rows(), ds.Points.Rows(), rmse, meanVar)
			a.log.Info("posterior",
				zap.String("run", ds.RunID.String()),
				zap.Int("sample", sample),
				zap.Int("context", xc.Rows()),
				zap.Float64("rmse", rmse),
				zap.Float64("mean_var", meanVar))

			if out == "" {
				return nil
			}
			format, err := dataset.FormatFromPath(out)
			if err != nil {
				return err
			}
			res, err := dataset.New(ds.Family+"/posterior", ds.Points, []*matrix.Dense{post.Mean, post.Var})
			if err != nil {
				return err
			}

			return dataset.Write(out, res, format)
		},
	}
	cmd.Flags().IntVarP(&sample, "sample", "s", 0, "index of the field to condition on")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write posterior mean (sample 0) and variance (sample 1) here")

	return cmd
}
