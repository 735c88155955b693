// Package report persists processed-text records as report artifacts and
// append-only request logs. Artifacts are immutable once written; filenames
// carry a timestamp for humans plus a random suffix so concurrent requests
// in the same second cannot collide.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	reportsDir = "reports"
	logsDir    = "logs"
	scrapeDir  = "data"
)

// Record is the logical content of a report artifact.
type Record struct {
	Cleaned       string `json:"cleaned"`
	Characters    int    `json:"characters"`
	Words         int    `json:"words"`
	JokeSetup     string `json:"joke_setup"`
	JokePunchline string `json:"joke_punchline"`
}

// Paths holds the three file paths of one written report.
type Paths struct {
	TXT  string `json:"txt"`
	JSON string `json:"json"`
	CSV  string `json:"csv"`
}

// Writer persists reports and logs under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir, creating the report, log and
// scrape directories if needed.
func NewWriter(baseDir string) (*Writer, error) {
	for _, dir := range []string{reportsDir, logsDir, scrapeDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return &Writer{baseDir: baseDir}, nil
}

// WriteReport writes the record in all three encodings. Either all three
// files are written or an error is returned; files written before a failure
// are left behind (writes are not transactional).
func (w *Writer) WriteReport(record Record) (Paths, error) {
	stem := fmt.Sprintf("report_%s_%s",
		time.Now().Format("20060102_150405"), shortID())

	paths := Paths{
		TXT:  filepath.Join(w.baseDir, reportsDir, stem+".txt"),
		JSON: filepath.Join(w.baseDir, reportsDir, stem+".json"),
		CSV:  filepath.Join(w.baseDir, reportsDir, stem+".csv"),
	}

	if err := writeTXT(paths.TXT, record); err != nil {
		return Paths{}, err
	}
	if err := writeJSON(paths.JSON, record); err != nil {
		return Paths{}, err
	}
	if err := writeCSV(paths.CSV, record); err != nil {
		return Paths{}, err
	}

	return paths, nil
}

// Log appends the request to both the line-oriented log and the JSON-lines
// log, each timestamped. Append-only; no rotation.
func (w *Writer) Log(raw, cleaned string) error {
	now := time.Now()

	line := fmt.Sprintf("[%s] RAW: %s | CLEANED: %s\n",
		now.Format("2006-01-02 15:04:05"), raw, cleaned)
	if err := appendFile(filepath.Join(w.baseDir, logsDir, "requests.log"), line); err != nil {
		return err
	}

	entry, err := json.Marshal(map[string]string{
		"time":    now.Format(time.RFC3339),
		"raw":     raw,
		"cleaned": cleaned,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	return appendFile(filepath.Join(w.baseDir, logsDir, "requests.jsonl"), string(entry)+"\n")
}

// WriteScrapeCSV writes scraped text line by line into a fresh CSV with
// columns index, url, line.
func (w *Writer) WriteScrapeCSV(url string, lines []string) (string, error) {
	path := filepath.Join(w.baseDir, scrapeDir, fmt.Sprintf("scrape_%s.csv", shortID()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create scrape CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"index", "url", "line"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, line := range lines {
		if err := cw.Write([]string{strconv.Itoa(i), url, line}); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return path, nil
}

// shortID returns the first uuid segment, enough to avoid same-second
// filename collisions without making filenames unwieldy.
func shortID() string {
	return uuid.New().String()[:8]
}

func writeTXT(path string, r Record) error {
	content := fmt.Sprintf("Cleaned: %s\nCharacters: %d\nWords: %d\nJoke: %s - %s\n",
		r.Cleaned, r.Characters, r.Words, r.JokeSetup, r.JokePunchline)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write TXT report: %w", err)
	}
	return nil
}

func writeJSON(path string, r Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

func writeCSV(path string, r Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	rows := [][]string{
		{"cleaned", "characters", "words", "joke_setup", "joke_punchline"},
		{r.Cleaned, strconv.Itoa(r.Characters), strconv.Itoa(r.Words), r.JokeSetup, r.JokePunchline},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV report: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}
