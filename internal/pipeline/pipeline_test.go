package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/textpipe/internal/acquire"
	"github.com/jonathan/textpipe/internal/enrich"
	"github.com/jonathan/textpipe/internal/report"
)

func newTestRunner(t *testing.T) (*Runner, string) {
	t.Helper()

	dir := t.TempDir()
	writer, err := report.NewWriter(dir)
	require.NoError(t, err)

	jokeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"setup":"s","punchline":"p"}`))
	}))
	t.Cleanup(jokeSrv.Close)

	gateway := enrich.NewGateway(enrich.NewFallbackEnricher())
	return NewRunner(gateway, writer, enrich.NewJokeClient(jokeSrv.URL), nil), dir
}

func TestRun_CleanAndCount(t *testing.T) {
	r, _ := newTestRunner(t)

	out, err := r.Run(context.Background(), "  hello   world  ", Spec{})
	require.NoError(t, err)

	assert.Equal(t, "hello world", out.Cleaned)
	assert.Equal(t, 11, out.Stats.Characters)
	assert.Equal(t, 2, out.Stats.Words)
	assert.Nil(t, out.Reports)
}

func TestRun_TextTooShortWritesNothing(t *testing.T) {
	r, dir := newTestRunner(t)

	_, err := r.Run(context.Background(), " ok ", Spec{MinTextLen: 3, Persist: true, Joke: true})
	require.ErrorIs(t, err, ErrTextTooShort)

	reports, err := os.ReadDir(filepath.Join(dir, "reports"))
	require.NoError(t, err)
	assert.Empty(t, reports)

	_, statErr := os.Stat(filepath.Join(dir, "logs", "requests.log"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_PersistWritesReportsAndLogs(t *testing.T) {
	r, dir := newTestRunner(t)

	out, err := r.Run(context.Background(), "hello world", Spec{MinTextLen: 3, Persist: true, Joke: true})
	require.NoError(t, err)

	require.NotNil(t, out.Reports)
	for _, path := range []string{out.Reports.TXT, out.Reports.JSON, out.Reports.CSV} {
		_, err := os.Stat(path)
		assert.NoError(t, err, "report file %s should exist", path)
	}
	assert.Equal(t, "s", out.Joke.Setup)

	logData, err := os.ReadFile(filepath.Join(dir, "logs", "requests.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "CLEANED: hello world")
}

func TestRun_JokeFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	writer, err := report.NewWriter(dir)
	require.NoError(t, err)

	gateway := enrich.NewGateway(enrich.NewFallbackEnricher())
	r := NewRunner(gateway, writer, enrich.NewJokeClient("http://127.0.0.1:0"), nil)

	out, err := r.Run(context.Background(), "hello world", Spec{Joke: true, Persist: true})
	require.NoError(t, err)
	assert.Empty(t, out.Joke.Setup)
	assert.Empty(t, out.Joke.Punchline)
	assert.NotNil(t, out.Reports)
}

func TestRun_AcquireThinContent(t *testing.T) {
	r, _ := newTestRunner(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Thirty characters of body text</p></body></html>`))
	}))
	defer srv.Close()

	_, err := r.Run(context.Background(), srv.URL, Spec{Acquire: true})
	require.ErrorIs(t, err, ErrThinContent)
}

func TestRun_AcquireBadScheme(t *testing.T) {
	r, _ := newTestRunner(t)

	_, err := r.Run(context.Background(), "ftp://example.com", Spec{Acquire: true})
	require.ErrorIs(t, err, acquire.ErrUnsupportedScheme)
}

func TestRun_AcquireFullPipeline(t *testing.T) {
	r, _ := newTestRunner(t)

	body := "<html><head><title>Backend Engineer at Example</title></head><body>" +
		"<p>We need strong Python and Docker experience with Postgres knowledge.</p>" +
		"<p>English is the working language across all our engineering teams.</p>" +
		"</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	out, err := r.Run(context.Background(), srv.URL, Spec{
		Acquire:    true,
		Summarize:  true,
		Attributes: true,
		Keywords:   5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Domain)
	assert.Equal(t, srv.URL, out.URL)
	assert.NotEmpty(t, out.Summary)
	require.NotNil(t, out.Analysis)
	assert.Contains(t, out.Analysis.Skills, "python")
	assert.Contains(t, out.Analysis.TechStack, "postgres")
	assert.Contains(t, out.Analysis.Languages, "english")
	assert.GreaterOrEqual(t, out.Analysis.JobFitScore, 20)
	assert.NotEmpty(t, out.Keywords)
}

func TestRun_RenderedFallsBackToHTTP(t *testing.T) {
	dir := t.TempDir()
	writer, err := report.NewWriter(dir)
	require.NoError(t, err)

	calls := []bool{}
	scrape := func(ctx context.Context, url string, opts *acquire.Options) (*acquire.Page, error) {
		rendered := opts != nil && opts.Rendered
		calls = append(calls, rendered)
		if rendered {
			return nil, fmt.Errorf("no browser available")
		}
		return &acquire.Page{
			URL:    url,
			Domain: "example.com",
			Text:   strings.Repeat("readable content ", 10),
		}, nil
	}

	gateway := enrich.NewGateway(enrich.NewFallbackEnricher())
	r := NewRunner(gateway, writer, enrich.NewJokeClient(""), scrape)

	out, err := r.Run(context.Background(), "https://example.com/job", Spec{Acquire: true, Rendered: true})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, calls)
	assert.Equal(t, "example.com", out.Domain)
}

func TestRun_TranslationAndSentimentDegrade(t *testing.T) {
	r, _ := newTestRunner(t)

	out, err := r.Run(context.Background(), "I really enjoy this product", Spec{
		TranslateTextTo: "fa",
		Sentiment:       true,
	})
	require.NoError(t, err)

	require.NotNil(t, out.Translation)
	assert.Equal(t, enrich.SourceLangUnknown, out.Translation.SourceLang)
	assert.Equal(t, out.Cleaned, out.Translation.Translated)

	// The fallback provider has no sentiment model; the gateway degrades.
	require.NotNil(t, out.Sentiment)
	assert.Equal(t, enrich.LabelError, out.Sentiment.Label)
}
