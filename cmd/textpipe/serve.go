package main

import (
	"fmt"

	"github.com/jonathan/textpipe/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for text processing, analysis and scraping.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, or config/TEXTPIPE_PORT)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "Directory for reports, logs and CSV output (default config/TEXTPIPE_DATA_DIR or .)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Port
	}
	if port == 0 {
		port = 8080
	}

	srv, err := server.New(server.Config{
		Port:    port,
		DataDir: dataDir(serveDataDir, cfg),
		APIKey:  cfg.APIKey,
		JokeURL: cfg.JokeURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
