package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/textpipe/internal/observability"
	"github.com/jonathan/textpipe/internal/pipeline"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Analyze a batch of job posting URLs",
	Long:  "Scrape and analyze every URL in a file concurrently, extracting summary, skills, languages, tech stack and fit score, and write the results to a CSV file.",
	RunE:  runRadar,
}

var (
	radarURLsFile    string
	radarOutFile     string
	radarConcurrency int
	radarVerbose     bool
)

func init() {
	radarCmd.Flags().StringVar(&radarURLsFile, "urls", "", "Path to a file with one URL per line (required)")
	radarCmd.Flags().StringVar(&radarOutFile, "out", "job_results.csv", "Output CSV path")
	radarCmd.Flags().IntVar(&radarConcurrency, "concurrency", 4, "Number of URLs analyzed in parallel")
	radarCmd.Flags().BoolVarP(&radarVerbose, "verbose", "v", false, "Print a formatted box per analyzed URL")

	radarCmd.MarkFlagRequired("urls")

	rootCmd.AddCommand(radarCmd)
}

func runRadar(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	urls, err := readURLs(radarURLsFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", radarURLsFile)
	}

	// Config concurrency applies unless the flag was set explicitly.
	concurrency := radarConcurrency
	if !cmd.Flags().Changed("concurrency") && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}

	runner, closeFn, err := newRunner(dataDir("", cfg), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	printer := observability.NewPrinter(os.Stdout)

	// Results keep input order regardless of completion order.
	outcomes := make([]*pipeline.Outcome, len(urls))
	failures := make([]error, len(urls))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	for i, url := range urls {
		g.Go(func() error {
			out, err := runner.Run(ctx, url, pipeline.Spec{
				Acquire:            true,
				Summarize:          true,
				TranslateSummaryTo: "fa",
				Attributes:         true,
			})
			if err != nil {
				// One bad URL must not sink the batch.
				failures[i] = err
				return nil
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	analyzed := 0
	for i, out := range outcomes {
		if out == nil {
			printer.PrintError(urls[i], failures[i])
			continue
		}
		if radarVerbose {
			printer.PrintOutcome(out)
		}
		analyzed++
	}

	if err := writeRadarCSV(radarOutFile, outcomes); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Analyzed %d/%d URLs, results in %s\n", analyzed, len(urls), radarOutFile)
	return nil
}

// readURLs loads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URLs file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}

func writeRadarCSV(path string, outcomes []*pipeline.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := []string{"url", "characters", "words", "summary", "skills", "languages", "tech_stack", "job_fit_score"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, out := range outcomes {
		if out == nil {
			continue
		}
		row := []string{
			out.URL,
			strconv.Itoa(out.Stats.Characters),
			strconv.Itoa(out.Stats.Words),
			out.Summary,
			strings.Join(out.Analysis.Skills, "; "),
			strings.Join(out.Analysis.Languages, "; "),
			strings.Join(out.Analysis.TechStack, "; "),
			strconv.Itoa(out.Analysis.JobFitScore),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
