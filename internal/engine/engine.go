package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/leengari/lcanalyzer/internal/domain/data"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
	"github.com/leengari/lcanalyzer/internal/lightcurve"
	"github.com/leengari/lcanalyzer/internal/storage/loader"
)

// AllBands is the band name used when a table is not split by band
const AllBands = "all"

// Aggregation names a single-column aggregate
type Aggregation string

const (
	AggregationMean Aggregation = "mean"
	AggregationMax  Aggregation = "max"
	AggregationMin  Aggregation = "min"
)

// StatsRequest describes a multi-band statistics run
type StatsRequest struct {
	MagColumn   string   // magnitude column to aggregate
	BandColumn  string   // column holding the band; empty treats the table as one band
	Bands       []string // bands to report, in order; empty means every band in file order
	Concurrency int      // bands summarized at once
}

// NormalizeResult pairs the normalized series with the source magnitudes
type NormalizeResult struct {
	Column     string
	Magnitudes []data.NullFloat
	Normalized []float64
}

// Engine is the main entry point for analysis runs.
// It loads datasets, invokes the lightcurve computations and reports every
// phase to registered observers.
type Engine struct {
	fs        afero.Fs
	logger    *slog.Logger
	loadOpts  []loader.Option
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine reading datasets from fsys
func New(fsys afero.Fs, logger *slog.Logger, loadOpts ...loader.Option) *Engine {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts := append([]loader.Option{loader.WithLogger(logger)}, loadOpts...)
	return &Engine{
		fs:        fsys,
		logger:    logger,
		loadOpts:  opts,
		observers: make([]Observer, 0),
	}
}

// Load reads a dataset into a table
func (e *Engine) Load(path string) (*schema.Table, error) {
	run := newRun("load", path)
	table, err := e.load(run)
	if err != nil {
		e.fail(run, err)
		return nil, err
	}
	return table, nil
}

// Stats computes max, mean and min of the magnitude column for every band
func (e *Engine) Stats(path string, req StatsRequest) (*lightcurve.StatsRecord, error) {
	run := newRun("stats", path)

	table, err := e.load(run)
	if err != nil {
		e.fail(run, err)
		return nil, err
	}

	e.emit(run, EventStatsStart, map[string]interface{}{
		"mag_column":  req.MagColumn,
		"band_column": req.BandColumn,
		"bands":       req.Bands,
	})

	bands, err := e.partition(table, req.BandColumn)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		e.fail(run, err)
		return nil, err
	}

	names := req.Bands
	if len(names) == 0 {
		names = bands.Bands()
	}

	record, err := lightcurve.CalcStats(bands, names, req.MagColumn,
		lightcurve.WithConcurrency(req.Concurrency))
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		e.fail(run, err)
		return nil, err
	}

	e.emit(run, EventStatsEnd, record.Bands)
	e.logger.Info("stats computed",
		slog.String("run_id", run.ID),
		slog.Uint64("run_seq", run.Seq),
		slog.String("path", path),
		slog.String("column", req.MagColumn),
		slog.Any("bands", record.Bands),
		slog.Duration("elapsed", run.Elapsed()),
	)

	return record, nil
}

// Aggregate computes a single aggregate over one column of the whole table
func (e *Engine) Aggregate(path, column string, agg Aggregation) (float64, error) {
	run := newRun("aggregate", path)

	table, err := e.load(run)
	if err != nil {
		e.fail(run, err)
		return 0, err
	}

	e.emit(run, EventAggregateStart, map[string]interface{}{
		"column":      column,
		"aggregation": agg,
	})

	var value float64
	switch agg {
	case AggregationMean:
		value, err = lightcurve.MeanMag(table, column)
	case AggregationMax:
		value, err = lightcurve.MaxMag(table, column)
	case AggregationMin:
		value, err = lightcurve.MinMag(table, column)
	default:
		err = fmt.Errorf("unknown aggregation %q", agg)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		e.fail(run, err)
		return 0, err
	}

	e.emit(run, EventAggregateEnd, value)
	return value, nil
}

// Normalize rescales the magnitude column of a dataset to [0,1]
func (e *Engine) Normalize(path, column string) (*NormalizeResult, error) {
	run := newRun("normalize", path)

	table, err := e.load(run)
	if err != nil {
		e.fail(run, err)
		return nil, err
	}

	e.emit(run, EventNormalizeStart, column)

	normalized, err := lightcurve.NormalizeLC(table, column)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		e.fail(run, err)
		return nil, err
	}

	// NormalizeLC succeeded, so the column exists and is numeric
	col, _ := table.Column(column)

	e.emit(run, EventNormalizeEnd, len(normalized))
	e.logger.Info("lightcurve normalized",
		slog.String("run_id", run.ID),
		slog.Uint64("run_seq", run.Seq),
		slog.String("path", path),
		slog.String("column", column),
		slog.Int("rows", len(normalized)),
		slog.Duration("elapsed", run.Elapsed()),
	)

	return &NormalizeResult{
		Column:     column,
		Magnitudes: col.Numbers,
		Normalized: normalized,
	}, nil
}

func (e *Engine) load(run *Run) (*schema.Table, error) {
	e.emit(run, EventLoadStart, run.Path)
	table, err := loader.LoadDataset(e.fs, run.Path, e.loadOpts...)
	if err != nil {
		return nil, err
	}
	e.emit(run, EventLoadEnd, map[string]interface{}{
		"table":   table.Name,
		"rows":    table.NumRows(),
		"columns": table.ColumnNames(),
	})
	return table, nil
}

func (e *Engine) partition(table *schema.Table, bandColumn string) (*schema.BandMapping, error) {
	if bandColumn == "" {
		bands := schema.NewBandMapping()
		bands.Set(AllBands, table)
		return bands, nil
	}
	return lightcurve.PartitionByBand(table, bandColumn)
}

func (e *Engine) fail(run *Run, err error) {
	e.emit(run, EventFailed, map[string]interface{}{
		"operation": run.Operation,
		"path":      run.Path,
		"error":     err.Error(),
	})
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// emit notifies observers of a phase of run
func (e *Engine) emit(run *Run, typ EventType, data interface{}) {
	e.notify(Event{Type: typ, RunID: run.ID, RunSeq: run.Seq, Data: data})
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
