package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mlsantos/pitaka/internal/cli"
	"github.com/mlsantos/pitaka/internal/common"
	"github.com/mlsantos/pitaka/internal/engine"
	"github.com/mlsantos/pitaka/internal/ingest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from statement exports",
		Long: `Import financial transactions from bank or e-wallet statement exports.

Documents already imported (by content hash) are skipped. One bad file never
aborts the batch; failures are reported in the summary.

Examples:
  # Import a single statement
  pitaka import ~/Downloads/bpi_jan_2024.json

  # Import everything in a directory
  pitaka import ~/Downloads/statements/*.json

  # Preview without saving, auto-resolving confident duplicates
  pitaka import --dry-run --auto-resolve ~/Downloads/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")
	cmd.Flags().Bool("auto-resolve", false, "automatically resolve confident duplicate matches")
	cmd.Flags().Float64("min-confidence", 0, "auto-resolve threshold (default from config)")
	cmd.Flags().String("password", "", "password for protected documents")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	autoResolve, _ := cmd.Flags().GetBool("auto-resolve")
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")
	password, _ := cmd.Flags().GetString("password")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	if minConfidence <= 0 {
		minConfidence = viper.GetFloat64("duplicates.auto_resolve_confidence")
	}

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return common.NewUserError("no files found to import", nil)
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ruleStore := loadRuleStore()
	resolver := loadResolver()
	categorizer, err := buildCategorizer(ruleStore)
	if err != nil {
		return err
	}

	opts := engine.Options{
		Password:      password,
		AutoResolve:   autoResolve,
		MinConfidence: minConfidence,
		DryRun:        dryRun,
	}
	if !noProgress {
		opts.Progress = ingest.NewBarSink()
	}

	pipeline := engine.New(store, categorizer, buildDetector(), resolver)
	summary, err := pipeline.Run(ctx, paths, opts)
	if err != nil {
		return err
	}

	if !dryRun && summary.AutoResolved > 0 {
		if err := resolver.Save(resolutionsPath()); err != nil {
			return fmt.Errorf("failed to save resolutions: %w", err)
		}
	}

	fmt.Print(cli.RenderSummary(summary))
	return nil
}

// expandGlobs resolves glob patterns to file paths, keeping caller order.
func expandGlobs(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				paths = append(paths, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
