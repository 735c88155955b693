// Package pipeline provides the single parameterized request pipeline shared
// by every endpoint: validate → (acquire) → clean → (enrich) → (extract
// attributes) → (persist) → assemble. Endpoints differ only in the Spec they
// declare, not in hand-written step sequences.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/textpipe/internal/acquire"
	"github.com/jonathan/textpipe/internal/analyze"
	"github.com/jonathan/textpipe/internal/enrich"
	"github.com/jonathan/textpipe/internal/normalize"
	"github.com/jonathan/textpipe/internal/report"
)

// MinURLContent is the unified minimum length of extracted URL content.
// Endpoints used to disagree on this threshold (20 vs 50) for no stated
// reason; all URL endpoints now share the stricter floor.
const MinURLContent = 50

var (
	// ErrTextTooShort rejects raw text below an endpoint's minimum length.
	ErrTextTooShort = errors.New("text is too short")
	// ErrThinContent rejects URL content too thin to analyze.
	ErrThinContent = errors.New("could not extract enough text from URL")
)

// Spec declares which steps an endpoint wants. The zero value runs the bare
// clean-and-count pipeline.
type Spec struct {
	// MinTextLen rejects trimmed raw text shorter than this (0 disables).
	MinTextLen int

	// Acquire treats the input as a URL to scrape; MinURLContent then
	// applies to the extracted text.
	Acquire bool
	// Rendered prefers headless-browser scraping, falling back to the
	// light HTTP mode when rendering fails.
	Rendered bool

	// Summarize produces a summary of the cleaned text.
	Summarize bool
	// TranslateTextTo translates the cleaned text (empty disables).
	TranslateTextTo string
	// TranslateSummaryTo translates the summary (empty disables).
	TranslateSummaryTo string
	// Sentiment scores the cleaned text.
	Sentiment bool
	// Attributes extracts skills, languages, tech stack and fit score.
	Attributes bool
	// Keywords extracts the top-N frequent keywords (0 disables).
	Keywords int

	// Joke fetches the novelty joke for the report.
	Joke bool
	// Persist writes report artifacts and appends the request logs.
	Persist bool
}

// Outcome carries everything a pipeline run produced. Optional fields are
// nil or empty when their step was not requested or degraded.
type Outcome struct {
	URL     string
	Domain  string
	Raw     string
	Cleaned string
	Stats   normalize.TextStats

	Summary           string
	SummaryTranslated string
	Translation       *enrich.Translation
	Sentiment         *enrich.Sentiment
	Analysis          *analyze.Analysis
	Keywords          []string

	Joke    enrich.Joke
	Reports *report.Paths
}

// ScrapeFunc acquires a page; it matches acquire.Scrape and is replaceable
// in tests.
type ScrapeFunc func(ctx context.Context, url string, opts *acquire.Options) (*acquire.Page, error)

// Runner executes pipeline specs against shared collaborators.
type Runner struct {
	gateway *enrich.Gateway
	writer  *report.Writer
	jokes   *enrich.JokeClient
	scrape  ScrapeFunc
}

// NewRunner creates a Runner. A nil scrape falls back to acquire.Scrape.
func NewRunner(gateway *enrich.Gateway, writer *report.Writer, jokes *enrich.JokeClient, scrape ScrapeFunc) *Runner {
	if scrape == nil {
		scrape = acquire.Scrape
	}
	return &Runner{gateway: gateway, writer: writer, jokes: jokes, scrape: scrape}
}

// Run executes the pipeline for the given input. When spec.Acquire is set,
// input is a URL; otherwise it is raw text. Validation failures and
// acquisition failures return errors; enrichment and joke failures degrade
// into fallback values. No artifacts or log entries are written for a
// request that fails validation.
func (r *Runner) Run(ctx context.Context, input string, spec Spec) (*Outcome, error) {
	out := &Outcome{}

	raw := input
	if spec.Acquire {
		page, err := r.acquirePage(ctx, input, spec.Rendered)
		if err != nil {
			return nil, err
		}
		if len(strings.TrimSpace(page.Text)) < MinURLContent {
			return nil, ErrThinContent
		}
		out.URL = page.URL
		out.Domain = page.Domain
		raw = page.Text
	} else if spec.MinTextLen > 0 && len([]rune(strings.TrimSpace(raw))) < spec.MinTextLen {
		return nil, ErrTextTooShort
	}

	out.Raw = raw
	out.Cleaned = normalize.Clean(raw)
	out.Stats = normalize.Stats(out.Cleaned)

	if spec.Summarize {
		out.Summary = r.gateway.Summarize(ctx, out.Cleaned)
		if spec.TranslateSummaryTo != "" {
			t := r.gateway.Translate(ctx, out.Summary, spec.TranslateSummaryTo)
			out.SummaryTranslated = t.Translated
		}
	}

	if spec.TranslateTextTo != "" {
		t := r.gateway.Translate(ctx, out.Cleaned, spec.TranslateTextTo)
		out.Translation = &t
	}

	if spec.Sentiment {
		s := r.gateway.AnalyzeSentiment(ctx, out.Cleaned)
		out.Sentiment = &s
	}

	if spec.Attributes {
		a := analyze.Analyze(out.Cleaned)
		out.Analysis = &a
	}

	if spec.Keywords > 0 {
		out.Keywords = analyze.ExtractKeywords(out.Cleaned, spec.Keywords)
	}

	if spec.Joke {
		joke, err := r.jokes.Fetch(ctx)
		if err != nil {
			log.Printf("[pipeline] joke fetch degraded: %v", err)
			joke = enrich.Joke{}
		}
		out.Joke = joke
	}

	if spec.Persist {
		if err := r.writer.Log(raw, out.Cleaned); err != nil {
			return nil, fmt.Errorf("failed to log request: %w", err)
		}
		paths, err := r.writer.WriteReport(report.Record{
			Cleaned:       out.Cleaned,
			Characters:    out.Stats.Characters,
			Words:         out.Stats.Words,
			JokeSetup:     out.Joke.Setup,
			JokePunchline: out.Joke.Punchline,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		out.Reports = &paths
	}

	return out, nil
}

// acquirePage scrapes the URL, preferring rendered mode when requested but
// falling back to the light fetch if rendering fails. Scheme validation
// errors are never retried.
func (r *Runner) acquirePage(ctx context.Context, url string, rendered bool) (*acquire.Page, error) {
	if rendered {
		page, err := r.scrape(ctx, url, &acquire.Options{Rendered: true})
		if err == nil {
			return page, nil
		}
		if errors.Is(err, acquire.ErrUnsupportedScheme) {
			return nil, err
		}
		log.Printf("[pipeline] rendered scrape failed, falling back to HTTP: %v", err)
	}
	return r.scrape(ctx, url, nil)
}
