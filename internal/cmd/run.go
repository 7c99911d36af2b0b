package cmd

import (
	"fmt"

	"github.com/harrison/ripper/internal/aggregator"
	"github.com/harrison/ripper/internal/config"
	"github.com/harrison/ripper/internal/fetcher"
	"github.com/harrison/ripper/internal/logger"
	"github.com/spf13/cobra"
)

// newFetcher builds the repository fetcher; replaced in tests.
var newFetcher = func(log logger.Logger) *fetcher.Fetcher {
	return fetcher.New("", log)
}

// runCommand implements the root command: optional fetch, aggregate, cleanup
func runCommand(cmd *cobra.Command, args []string) (err error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	includeHidden, _ := cmd.Flags().GetBool("all")
	verbose, _ := cmd.Flags().GetBool("verbose")
	githubURL, _ := cmd.Flags().GetString("github")

	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.OutOrStdout(), logLevel)

	agg := aggregator.New(cfg.RuleSet(), aggregator.Options{
		Preamble:     cfg.Preamble,
		OutputSuffix: cfg.OutputSuffix,
		Logger:       log,
	})

	rootDir := ""
	if cmd.Flags().Changed("github") {
		if githubURL == "" {
			return fmt.Errorf("--github requires a repository url")
		}

		f := newFetcher(log)
		dir, ferr := f.Fetch(cmd.Context(), githubURL)
		if ferr != nil {
			return fmt.Errorf("fetch failed: %w", ferr)
		}
		// The clone is removed whether or not aggregation succeeds
		defer func() {
			if cerr := f.Cleanup(dir); cerr != nil {
				if err == nil {
					err = cerr
				} else {
					log.LogWarn(cerr.Error())
				}
			}
		}()
		rootDir = dir
	}

	if _, err := agg.Aggregate(rootDir, includeHidden); err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	return nil
}
