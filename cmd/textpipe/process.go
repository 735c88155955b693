package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/textpipe/internal/observability"
	"github.com/jonathan/textpipe/internal/pipeline"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a text file into a report",
	Long:  "Clean and count the text in a file, fetch a joke, summarize, and write the report artifacts without starting the server.",
	RunE:  runProcess,
}

var (
	processIn      string
	processOut     string
	processVerbose bool
)

func init() {
	processCmd.Flags().StringVar(&processIn, "in", "", "Path to the text file to process (required)")
	processCmd.Flags().StringVar(&processOut, "out", "", "Directory for report output (default config/TEXTPIPE_DATA_DIR or .)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print a formatted summary of the result")

	processCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(processIn)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	runner, closeFn, err := newRunner(dataDir(processOut, cfg), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	out, err := runner.Run(context.Background(), string(content), pipeline.Spec{
		MinTextLen: 3,
		Summarize:  true,
		Joke:       true,
		Persist:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	if processVerbose {
		observability.NewPrinter(os.Stdout).PrintOutcome(out)
	}

	fmt.Fprintf(os.Stdout, "Processed %s: %d characters, %d words\n", processIn, out.Stats.Characters, out.Stats.Words)
	fmt.Fprintf(os.Stdout, "Report TXT:  %s\n", out.Reports.TXT)
	fmt.Fprintf(os.Stdout, "Report JSON: %s\n", out.Reports.JSON)
	fmt.Fprintf(os.Stdout, "Report CSV:  %s\n", out.Reports.CSV)

	return nil
}
