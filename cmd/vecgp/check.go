// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/vecgp/grid"
	"github.com/katalvlaran/vecgp/internal/dataset"
)

func readDataset(path string) (*dataset.Dataset, error) {
	f, err := dataset.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	return dataset.Read(path, f)
}

func checkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <dataset>",
		Short: "Report finite-difference divergence and curl of every sampled field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := readDataset(args[0])
			if err != nil {
				return err
			}
			g, err := a.cfg.Grid.Build()
			if err != nil {
				return err
			}
			n, d, dim := ds.Dims()
			if n != g.Len() || d != 2 || dim != 2 {
				return fmt.Errorf("check: dataset %d×%d points with D=%d does not fit a %d×%d grid: %w",
					n, d, dim, g.N, g.N, grid.ErrFieldShape)
			}

			divs := make([]float64, len(ds.Fields))
			curls := make([]float64, len(ds.Fields))
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "sample\t|div|/|v|\t|curl|/|v|\tmean |v|")
			for s, field := range ds.Fields {
				st, err := g.Report(field)
				if err != nil {
					return fmt.Errorf("check: sample %d: %w", s, err)
				}
				divs[s], curls[s] = st.DivRatio, st.CurlRatio
				fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\n", s, st.DivRatio, st.CurlRatio, st.MeanNorm)
			}
			if err = tw.Flush(); err != nil {
				return err
			}

			divMean, curlMean := stat.Mean(divs, nil), stat.Mean(curls, nil)
			fmt.Fprintf(cmd.OutOrStdout(), "mean\t%.4f\t%.4f\n", divMean, curlMean)
			a.log.Info("checked fields",
				zap.String("run", ds.RunID.String()),
				zap.String("family", ds.Family),
				zap.Int("samples", len(ds.Fields)),
				zap.Float64("div_ratio", divMean),
				zap.Float64("curl_ratio", curlMean))

			return nil
		},
	}
}
