package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	return w
}

func TestWriteReport_AllThreeFormats(t *testing.T) {
	w := newTestWriter(t)

	record := Record{
		Cleaned:       "hello world",
		Characters:    11,
		Words:         2,
		JokeSetup:     "setup",
		JokePunchline: "punchline",
	}

	paths, err := w.WriteReport(record)
	require.NoError(t, err)

	// TXT mirrors the record.
	txt, err := os.ReadFile(paths.TXT)
	require.NoError(t, err)
	assert.Contains(t, string(txt), "Cleaned: hello world")
	assert.Contains(t, string(txt), "Characters: 11")
	assert.Contains(t, string(txt), "Words: 2")

	// JSON decodes back to the same record.
	var decoded Record
	data, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record, decoded)

	// CSV has header plus one row.
	f, err := os.Open(paths.CSV)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"cleaned", "characters", "words", "joke_setup", "joke_punchline"}, rows[0])
	assert.Equal(t, []string{"hello world", "11", "2", "setup", "punchline"}, rows[1])
}

func TestWriteReport_UniqueFilenamesSameSecond(t *testing.T) {
	w := newTestWriter(t)

	first, err := w.WriteReport(Record{Cleaned: "a"})
	require.NoError(t, err)
	second, err := w.WriteReport(Record{Cleaned: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, first.TXT, second.TXT)
	assert.NotEqual(t, first.JSON, second.JSON)
	assert.NotEqual(t, first.CSV, second.CSV)
}

func TestLog_AppendsBothLogs(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.Log("Raw  Text", "raw text"))
	require.NoError(t, w.Log("second", "second"))

	lineLog, err := os.ReadFile(filepath.Join(dir, "logs", "requests.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(lineLog)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "RAW: Raw  Text | CLEANED: raw text")

	jsonLog, err := os.ReadFile(filepath.Join(dir, "logs", "requests.jsonl"))
	require.NoError(t, err)
	jsonLines := strings.Split(strings.TrimSpace(string(jsonLog)), "\n")
	require.Len(t, jsonLines, 2)

	var entry map[string]string
	require.NoError(t, json.Unmarshal([]byte(jsonLines[0]), &entry))
	assert.Equal(t, "Raw  Text", entry["raw"])
	assert.Equal(t, "raw text", entry["cleaned"])
	assert.NotEmpty(t, entry["time"])
}

func TestWriteScrapeCSV(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.WriteScrapeCSV("https://example.com", []string{"line one", "line two"})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"index", "url", "line"}, rows[0])
	assert.Equal(t, []string{"0", "https://example.com", "line one"}, rows[1])
	assert.Equal(t, []string{"1", "https://example.com", "line two"}, rows[2])
}
