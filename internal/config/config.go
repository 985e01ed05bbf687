// Package config loads the lcanalyzer command line configuration.
//
// Precedence, highest first: command line flags, LCANALYZER_* environment
// variables (a .env file in the working directory is read into the
// environment first), the YAML config file, built-in defaults.
package config

import (
	"fmt"
	"unicode/utf8"
)

// Config is the complete CLI configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
	CSV      CSVConfig      `mapstructure:"csv"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	// File is a rotated log file; empty disables file logging
	File string `mapstructure:"file"`
	// SeqURL is a Seq ingestion endpoint; empty disables Seq
	SeqURL string `mapstructure:"seq_url" validate:"omitempty,url"`
}

type AnalysisConfig struct {
	MagColumn   string   `mapstructure:"mag_column" validate:"required"`
	BandColumn  string   `mapstructure:"band_column"`
	Bands       []string `mapstructure:"bands" validate:"dive,required"`
	Concurrency int      `mapstructure:"concurrency" validate:"min=1"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table json yaml msgpack"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" validate:"required"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Analysis: AnalysisConfig{
			MagColumn:   "psfMag",
			BandColumn:  "band",
			Concurrency: 1,
		},
		Output: OutputConfig{Format: "table"},
		CSV:    CSVConfig{Delimiter: ","},
	}
}

// DelimiterRune returns the CSV field delimiter. "tab" and `\t` name a tab.
func (c CSVConfig) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("csv delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r, nil
}
