// Package config provides configuration loading for sheetcomp.
package config

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetcomp-go/internal/logging"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/output"
)

// Config is the complete sheetcomp configuration.
type Config struct {
	Mode     string         `koanf:"mode"`
	Skeleton SkeletonConfig `koanf:"skeleton"`
	Index    IndexConfig    `koanf:"index"`
	Output   OutputConfig   `koanf:"output"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// SkeletonConfig controls anchor detection and skeleton extraction.
type SkeletonConfig struct {
	Margin              int     `koanf:"margin"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
}

// IndexConfig controls the inverted index and format aggregation.
type IndexConfig struct {
	Workers int   `koanf:"workers"`
	Formats *bool `koanf:"formats"`
}

// OutputConfig controls result serialisation.
type OutputConfig struct {
	Format string `koanf:"format"`
	Pretty bool   `koanf:"pretty"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LoggingConfig(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Options().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Options converts the configuration into compression options.
func (c *Config) Options() sheetcomp.Options {
	return sheetcomp.Options{
		Mode:                sheetcomp.Mode(c.Mode),
		Margin:              c.Skeleton.Margin,
		SimilarityThreshold: c.Skeleton.SimilarityThreshold,
		IncludeFormats:      c.Index.Formats,
		Workers:             c.Index.Workers,
	}
}

// LoggingConfig converts the logging section into a logger configuration.
func (c *Config) LoggingConfig() (*logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	cfg := logging.NewDefaultConfig()
	cfg.Level = level
	cfg.Format = c.Logging.Format
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return cfg, nil
}
