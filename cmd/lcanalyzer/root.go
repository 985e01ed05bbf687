package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/leengari/lcanalyzer/internal/config"
	"github.com/leengari/lcanalyzer/internal/engine"
	"github.com/leengari/lcanalyzer/internal/logging"
	"github.com/leengari/lcanalyzer/internal/report"
	"github.com/leengari/lcanalyzer/internal/storage/loader"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"format":      "output.format",
	"log-level":   "log.level",
	"delimiter":   "csv.delimiter",
	"mag-column":  "analysis.mag_column",
	"band-column": "analysis.band_column",
	"bands":       "analysis.bands",
	"concurrency": "analysis.concurrency",
}

// app holds the state shared by every command of one invocation
type app struct {
	fs       afero.Fs
	out      io.Writer
	v        *viper.Viper
	cfgFile  string
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
	eng      *engine.Engine
	format   report.Format
}

// newRootCmd builds the command tree. The returned function flushes and
// closes log sinks and must be called once the command has finished.
func newRootCmd(fsys afero.Fs, out io.Writer) (*cobra.Command, func()) {
	a := &app{
		fs:       fsys,
		out:      out,
		v:        viper.New(),
		closeLog: func() {},
	}

	root := &cobra.Command{
		Use:               "lcanalyzer",
		Short:             "Statistics and normalization for lightcurve tables",
		Long:              "lcanalyzer loads lightcurve measurements from CSV files and reports per-band\nmagnitude statistics or a min-max normalized magnitude series.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	d := config.Default()
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./lcanalyzer.yaml)")
	flags.String("format", d.Output.Format, "output format: table, json, yaml or msgpack")
	flags.String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	flags.String("delimiter", d.CSV.Delimiter, `CSV field delimiter ("tab" for tab separated files)`)
	flags.String("mag-column", d.Analysis.MagColumn, "magnitude column")

	root.AddCommand(
		a.loadCmd(),
		a.statsCmd(),
		a.aggregateCmd(engine.AggregationMean, "Mean magnitude over all rows"),
		a.aggregateCmd(engine.AggregationMax, "Largest magnitude over all rows"),
		a.aggregateCmd(engine.AggregationMin, "Smallest magnitude over all rows"),
		a.normalizeCmd(),
	)

	return root, func() { a.closeLog() }
}

// setup loads configuration and wires logging and the engine before any command runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, a.closeLog = logging.SetupLogger(cfg.Log)

	// Both were validated by config.Load
	delimiter, _ := cfg.CSV.DelimiterRune()
	a.format, _ = report.ParseFormat(cfg.Output.Format)

	a.eng = engine.New(a.fs, a.logger, loader.WithDelimiter(delimiter))
	a.eng.AddObserver(engine.NewLoggingObserver(a.logger))

	a.logger.Debug("configuration loaded",
		slog.String("config_file", a.v.ConfigFileUsed()),
		slog.String("mag_column", cfg.Analysis.MagColumn),
		slog.String("format", cfg.Output.Format),
	)
	return nil
}

// bindFlags binds the flags present on the running command to their configuration keys
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
