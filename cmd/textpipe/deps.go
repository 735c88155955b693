package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/textpipe/internal/config"
	"github.com/jonathan/textpipe/internal/enrich"
	"github.com/jonathan/textpipe/internal/pipeline"
	"github.com/jonathan/textpipe/internal/report"
)

// loadConfig resolves the effective configuration: JSON file (when --config
// is set), then environment fallback, then validation. Flag values are
// merged afterwards by each command, with a set flag always winning.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dataDir resolves the output directory: flag, then config/env, then cwd.
func dataDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	return "."
}

// newRunner builds the pipeline collaborators for one-shot CLI commands,
// selecting the enrichment provider the same way the server does. The
// returned close function releases the provider.
func newRunner(baseDir string, cfg *config.Config) (*pipeline.Runner, func(), error) {
	writer, err := report.NewWriter(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report writer: %w", err)
	}

	var provider enrich.Enricher
	closeFn := func() {}
	if cfg.APIKey != "" {
		gemini, err := enrich.NewGeminiEnricher(context.Background(), cfg.APIKey, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini enricher: %w", err)
		}
		provider = gemini
		closeFn = func() {
			if err := gemini.Close(); err != nil {
				log.Printf("Error closing enrichment provider: %v", err)
			}
		}
	} else {
		provider = enrich.NewFallbackEnricher()
	}

	gateway := enrich.NewGateway(provider)
	runner := pipeline.NewRunner(gateway, writer, enrich.NewJokeClient(cfg.JokeURL), nil)
	return runner, closeFn, nil
}
