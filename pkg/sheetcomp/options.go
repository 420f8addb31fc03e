// Package sheetcomp compresses spreadsheet grids into compact views: an
// inverted value index with merged ranges, data-format groups, and an
// anchor-based structural skeleton.
package sheetcomp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/anchor"
)

// Mode represents which views are produced.
type Mode string

const (
	// ModeIndex produces the inverted index (and format groups) only.
	ModeIndex Mode = "index"
	// ModeSkeleton produces the structural skeleton only.
	ModeSkeleton Mode = "skeleton"
	// ModeFull produces every view.
	ModeFull Mode = "full"
)

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeIndex, ModeSkeleton, ModeFull:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be index, skeleton, or full)", s)
	}
}

// Options configures compression behavior.
type Options struct {
	// Mode specifies which views to produce (index, skeleton, full).
	Mode Mode
	// Margin is the number of lines kept on each side of an anchor.
	Margin int
	// SimilarityThreshold is the share of equal positions at which two
	// adjacent lines are considered similar.
	SimilarityThreshold float64
	// IncludeFormats specifies whether to include data-format groups.
	// If nil, defaults to true for full mode, false otherwise.
	IncludeFormats *bool
	// Workers bounds concurrent column scans when indexing; 0 uses GOMAXPROCS.
	Workers int
	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default compression options.
func DefaultOptions() Options {
	return Options{
		Mode:                ModeFull,
		Margin:              1,
		SimilarityThreshold: anchor.DefaultParams().SimilarityThreshold,
	}
}

// ShouldIncludeFormats returns whether to include data-format groups.
func (o Options) ShouldIncludeFormats() bool {
	if o.IncludeFormats != nil {
		return *o.IncludeFormats && o.Mode != ModeSkeleton
	}
	return o.Mode == ModeFull
}

// ShouldIncludeIndex returns whether to build the inverted index.
func (o Options) ShouldIncludeIndex() bool {
	return o.Mode != ModeSkeleton
}

// ShouldIncludeSkeleton returns whether to extract the skeleton.
func (o Options) ShouldIncludeSkeleton() bool {
	return o.Mode != ModeIndex
}

// AnchorParams returns the anchor detection parameters.
func (o Options) AnchorParams() anchor.Params {
	return anchor.Params{SimilarityThreshold: o.SimilarityThreshold}
}

// Validate checks the options.
func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.Margin < 0 {
		return &anchor.ConfigurationError{Param: "margin", Value: o.Margin, Err: anchor.ErrNegativeMargin}
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	return o.AnchorParams().Validate()
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
