package loader

import (
	"log/slog"

	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// Option configures LoadDataset
type Option func(*config)

type config struct {
	delimiter   rune
	columnTypes map[string]schema.ColumnType
	logger      *slog.Logger
}

// WithDelimiter sets the field delimiter (default ',')
func WithDelimiter(d rune) Option {
	return func(c *config) {
		if d != 0 {
			c.delimiter = d
		}
	}
}

// WithColumnTypes declares column types instead of inferring them.
// Columns not named in the map are still inferred. Declaring a type for a
// column the file does not have fails the load with a ParseError.
func WithColumnTypes(types map[string]schema.ColumnType) Option {
	return func(c *config) {
		for name, typ := range types {
			c.columnTypes[name] = typ
		}
	}
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		delimiter:   ',',
		columnTypes: make(map[string]schema.ColumnType),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
