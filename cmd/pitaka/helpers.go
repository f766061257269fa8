package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mlsantos/pitaka/internal/categorize"
	"github.com/mlsantos/pitaka/internal/dupes"
	"github.com/mlsantos/pitaka/internal/rules"
	"github.com/mlsantos/pitaka/internal/storage"
	"github.com/mlsantos/pitaka/internal/taxonomy"
	"github.com/spf13/viper"
)

func setConfigDefaults() {
	home, _ := os.UserHomeDir()
	viper.SetDefault("data.dir", filepath.Join(home, ".local", "share", "pitaka"))
	viper.SetDefault("duplicates.time_threshold", "24h")
	viper.SetDefault("duplicates.amount_tolerance_percent", 1.0)
	viper.SetDefault("duplicates.auto_resolve_confidence", 0.95)
}

func dataDir() string {
	return viper.GetString("data.dir")
}

func rulesPath() string {
	return filepath.Join(dataDir(), "rules.json")
}

func resolutionsPath() string {
	return filepath.Join(dataDir(), "resolutions.json")
}

func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(filepath.Join(dataDir(), "pitaka.db"))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func loadRuleStore() *rules.Store {
	store := rules.NewStore()
	path := rulesPath()
	if _, err := os.Stat(path); err != nil {
		return store
	}
	loaded, malformed, err := store.Load(path)
	if err != nil {
		slog.Warn("Failed to load learned rules", "path", path, "error", err)
		return store
	}
	if malformed > 0 {
		slog.Warn("Skipped malformed rule records", "path", path, "malformed", malformed)
	}
	slog.Debug("Loaded learned rules", "count", loaded)
	return store
}

func loadResolver() *dupes.Resolver {
	resolver := dupes.NewResolver()
	path := resolutionsPath()
	if _, err := os.Stat(path); err != nil {
		return resolver
	}
	loaded, malformed, err := resolver.Load(path)
	if err != nil {
		slog.Warn("Failed to load duplicate resolutions", "path", path, "error", err)
		return resolver
	}
	if malformed > 0 {
		slog.Warn("Skipped malformed resolution records", "path", path, "malformed", malformed)
	}
	slog.Debug("Loaded duplicate resolutions", "count", loaded)
	return resolver
}

func buildTaxonomy() (*taxonomy.Taxonomy, error) {
	tax := taxonomy.New()
	if overlay := viper.GetString("taxonomy.overlay"); overlay != "" {
		if err := tax.LoadOverlay(overlay); err != nil {
			return nil, fmt.Errorf("failed to load taxonomy overlay: %w", err)
		}
	}
	return tax, nil
}

func buildCategorizer(ruleStore *rules.Store) (*categorize.Categorizer, error) {
	tax, err := buildTaxonomy()
	if err != nil {
		return nil, err
	}
	return categorize.New(tax, ruleStore), nil
}

func buildDetector() *dupes.Detector {
	threshold, err := time.ParseDuration(viper.GetString("duplicates.time_threshold"))
	if err != nil {
		threshold = 24 * time.Hour
	}
	return dupes.NewDetector(dupes.Config{
		TimeThreshold:          threshold,
		AmountTolerancePercent: viper.GetFloat64("duplicates.amount_tolerance_percent"),
	})
}
