package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"traitbase/internal/collector"
	"traitbase/internal/config"
	"traitbase/internal/provider"
)

var (
	configPath string
	cacheDir   string
	delayFlag  string
	providers  []string
	localFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "traitbase",
	Short: "Traitbase - aggregate species-trait datasets into one queryable database",
	Long: `Traitbase downloads published species-trait datasets, normalizes them
into a common long-format schema, and aggregates them into one database
that can be summarized, filtered, and reshaped into a wide
species-by-trait table.

Results are cached on disk so each remote dataset is downloaded once,
and a politeness delay is kept between consecutive downloads.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-discover)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory for downloaded datasets")
	rootCmd.PersistentFlags().StringVar(&delayFlag, "delay", "", "politeness delay between downloads (e.g. 5s)")
	rootCmd.PersistentFlags().StringSliceVar(&providers, "providers", nil, "restrict the run to these dataset providers")
	rootCmd.PersistentFlags().StringArrayVar(&localFiles, "local", nil, "register a local long-format CSV dataset as name=path")

	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(wideCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, _, err = config.LoadFromPath(configPath)
	} else {
		var loaded string
		cfg, loaded, err = config.Load()
		if err == nil && loaded != "" {
			log.Printf("Loaded config: %s", loaded)
		}
	}
	if err != nil {
		return nil, err
	}

	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if delayFlag != "" {
		cfg.Delay = delayFlag
	}
	if len(providers) > 0 {
		cfg.Providers = providers
	}
	if _, err := cfg.DelayDuration(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRegistry returns the built-in providers plus any local datasets
// registered on the command line.
func buildRegistry() (*provider.Registry, error) {
	registry := provider.Builtin()
	for _, spec := range localFiles {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --local %q: want name=path", spec)
		}
		if err := registry.Register(name, provider.FromCSV(path)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func fetchOptions(cfg *config.Config, registry *provider.Registry) (collector.FetchOptions, error) {
	delay, err := cfg.DelayDuration()
	if err != nil {
		return collector.FetchOptions{}, err
	}
	if delay == 0 {
		delay = -1 * time.Nanosecond // explicit zero disables the pause
	}
	return collector.FetchOptions{
		CacheDir:  cfg.CacheDir,
		Providers: cfg.Providers,
		Delay:     delay,
		Registry:  registry,
	}, nil
}
