package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/textpipe/internal/analyze"
	"github.com/jonathan/textpipe/internal/normalize"
	"github.com/jonathan/textpipe/internal/pipeline"
)

func TestReadURLs_SkipsBlanksAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://example.com/a\n\n# a comment\n  https://example.com/b  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := readURLs(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestReadURLs_MissingFile(t *testing.T) {
	_, err := readURLs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteRadarCSV_SkipsFailedURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	outcomes := []*pipeline.Outcome{
		{
			URL:     "https://example.com/job",
			Stats:   normalize.TextStats{Characters: 100, Words: 18},
			Summary: "A role summary",
			Analysis: &analyze.Analysis{
				Skills:      []string{"python", "sql"},
				Languages:   []string{"english"},
				TechStack:   []string{"docker"},
				JobFitScore: 54,
			},
		},
		nil,
	}

	require.NoError(t, writeRadarCSV(path, outcomes))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "url,characters,words,summary,skills,languages,tech_stack,job_fit_score", lines[0])
	assert.Contains(t, lines[1], "python; sql")
	assert.Contains(t, lines[1], "54")
}
