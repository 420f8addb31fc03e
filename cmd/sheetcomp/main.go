// Package main provides the CLI entry point for sheetcomp.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetcomp-go/internal/config"
	"github.com/ukaji3/sheetcomp-go/internal/logging"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/models"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/output"
)

type flags struct {
	outputPath string
	configPath string
	pretty     bool
	mode       string
	margin     int
	threshold  float64
	format     string
	sheetsDir  string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "sheetcomp [input.xlsx]",
		Short: "Compress spreadsheet sheets into compact views",
		Long: `sheetcomp compresses each sheet of an Excel file into an inverted
value index with merged ranges, data-format groups, and a structural
skeleton that keeps only the lines around structural anchors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	rootCmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&f.configPath, "config", "", "YAML configuration file")
	rootCmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&f.mode, "mode", "full", "Compression mode: index, skeleton, full")
	rootCmd.Flags().IntVarP(&f.margin, "margin", "k", 1, "Lines kept on each side of a structural anchor")
	rootCmd.Flags().Float64Var(&f.threshold, "threshold", 0.8, "Share of equal cells at which adjacent lines are similar")
	rootCmd.Flags().StringVar(&f.format, "format", "json", "Output format: json, yaml, text")
	rootCmd.Flags().StringVar(&f.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	rootCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	inputPath := args[0]

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewLoggerTo(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithInput(ctx, inputPath)

	opts := cfg.Options()
	opts.Logger = logger.Underlying().With(zap.String("input", inputPath))

	wb, err := sheetcomp.Compress(ctx, inputPath, opts)
	if err != nil {
		logger.Error(ctx, "compression failed", zap.Error(err))
		return fmt.Errorf("compression failed: %w", err)
	}
	logger.Info(ctx, "compressed workbook", zap.Int("sheets", len(wb.Sheets)))

	format := output.Format(cfg.Output.Format)

	// Write output
	if f.outputPath != "" {
		if err := writeFile(f.outputPath, func(w io.Writer) error {
			return output.Encode(w, wb, format, cfg.Output.Pretty)
		}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if f.sheetsDir == "" {
		if err := output.Encode(cmd.OutOrStdout(), wb, format, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	}

	// Write per-sheet files
	if f.sheetsDir != "" {
		if err := writeSheetFiles(wb, f.sheetsDir, format, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("mode") {
		cfg.Mode = f.mode
	}
	if changed("margin") {
		cfg.Skeleton.Margin = f.margin
	}
	if changed("threshold") {
		cfg.Skeleton.SimilarityThreshold = f.threshold
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("pretty") {
		cfg.Output.Pretty = f.pretty
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
}

func writeSheetFiles(wb *models.WorkbookData, dir string, format output.Format, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	names := make([]string, 0, len(wb.Sheets))
	for name := range wb.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, sheetName := range names {
		sheet := wb.Sheets[sheetName]
		filename := filepath.Join(dir, sheetName+extension(format))
		if err := writeFile(filename, func(w io.Writer) error {
			return output.EncodeSheet(w, &sheet, format, pretty)
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func extension(format output.Format) string {
	switch format {
	case output.FormatYAML:
		return ".yaml"
	case output.FormatText:
		return ".txt"
	default:
		return ".json"
	}
}
