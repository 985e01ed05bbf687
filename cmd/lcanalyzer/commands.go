package main

import (
	"github.com/spf13/cobra"

	"github.com/leengari/lcanalyzer/internal/engine"
	"github.com/leengari/lcanalyzer/internal/report"
)

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load a table and show its columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.eng.Load(args[0])
			if err != nil {
				return err
			}
			return report.WriteTable(a.out, a.format, table)
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Max, mean and min magnitude per band",
		Long: "Computes max, mean and min of the magnitude column for every band.\n" +
			"Rows are split into bands by --band-column; an empty band column treats\n" +
			"the whole file as a single band named \"" + engine.AllBands + "\".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := a.eng.Stats(args[0], engine.StatsRequest{
				MagColumn:   a.cfg.Analysis.MagColumn,
				BandColumn:  a.cfg.Analysis.BandColumn,
				Bands:       a.cfg.Analysis.Bands,
				Concurrency: a.cfg.Analysis.Concurrency,
			})
			if err != nil {
				return err
			}
			return report.WriteStats(a.out, a.format, record)
		},
	}

	flags := cmd.Flags()
	flags.String("band-column", "band", "column holding the band of each observation")
	flags.StringSlice("bands", nil, "bands to report, in order (default: every band in file order)")
	flags.Int("concurrency", 1, "bands summarized in parallel")
	return cmd
}

func (a *app) aggregateCmd(agg engine.Aggregation, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(agg) + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column := a.cfg.Analysis.MagColumn
			value, err := a.eng.Aggregate(args[0], column, agg)
			if err != nil {
				return err
			}
			return report.WriteValue(a.out, a.format, column, string(agg), value)
		},
	}
}

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file>",
		Short: "Rescale the magnitude column to [0,1]",
		Long: "Rescales the magnitude column to [0,1] using its minimum and range.\n" +
			"Fails if any magnitude has an absolute value above 90. Rows whose result\n" +
			"is not finite (constant column, missing magnitude) are reported as 0.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.eng.Normalize(args[0], a.cfg.Analysis.MagColumn)
			if err != nil {
				return err
			}
			return report.WriteNormalized(a.out, a.format, res)
		},
	}
}
