package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/textpipe/internal/pipeline"
)

// previewChars bounds the text preview returned by /scrape_url.
const previewChars = 300

// URLRequest is the body for scrape endpoints.
type URLRequest struct {
	URL string `json:"url" validate:"required"`
}

// URLTranslateRequest is the body for scrape endpoints that also translate
// the summary.
type URLTranslateRequest struct {
	URL         string `json:"url" validate:"required"`
	TranslateTo string `json:"translate_to,omitempty"`
}

// handleScrapeURL fetches a page in light HTTP mode and returns the raw
// extracted text with a short preview. Nothing is persisted.
func (s *Server) handleScrapeURL(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.URL, pipeline.Spec{Acquire: true})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":         out.URL,
		"domain":      out.Domain,
		"text_length": len([]rune(out.Raw)),
		"preview":     truncatePreview(out.Raw, previewChars),
		"text":        out.Raw,
	})
}

// handleScrapeURLAI scrapes with browser rendering and summarizes the
// cleaned text, optionally translating the summary.
func (s *Server) handleScrapeURLAI(w http.ResponseWriter, r *http.Request) {
	var req URLTranslateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.URL, pipeline.Spec{
		Acquire:            true,
		Rendered:           true,
		Summarize:          true,
		TranslateSummaryTo: req.TranslateTo,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	resp := map[string]any{
		"domain":     out.Domain,
		"cleaned":    out.Cleaned,
		"characters": out.Stats.Characters,
		"words":      out.Stats.Words,
		"summary":    out.Summary,
	}
	if out.SummaryTranslated != "" {
		resp["summary_translated"] = out.SummaryTranslated
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleScrapeToCSV scrapes a page and writes its text lines to a CSV file
// under the data directory.
func (s *Server) handleScrapeToCSV(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.URL, pipeline.Spec{Acquire: true})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	lines := splitLines(out.Raw)
	path, err := s.writer.WriteScrapeCSV(out.URL, lines)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to write CSV: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":      out.URL,
		"domain":   out.Domain,
		"lines":    len(lines),
		"csv_path": path,
	})
}

// handleAnalyzeURLAI scrapes a page, summarizes it and extracts the most
// frequent keywords.
func (s *Server) handleAnalyzeURLAI(w http.ResponseWriter, r *http.Request) {
	var req URLTranslateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.URL, pipeline.Spec{
		Acquire:            true,
		Summarize:          true,
		TranslateSummaryTo: req.TranslateTo,
		Keywords:           10,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	resp := map[string]any{
		"domain":     out.Domain,
		"characters": out.Stats.Characters,
		"words":      out.Stats.Words,
		"summary":    out.Summary,
		"keywords":   out.Keywords,
	}
	if out.SummaryTranslated != "" {
		resp["summary_translated"] = out.SummaryTranslated
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeJob scrapes a job posting with browser rendering and runs
// the full attribute analysis: summary with Persian translation, skills,
// languages, tech stack and fit score.
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.URL, pipeline.Spec{
		Acquire:            true,
		Rendered:           true,
		Summarize:          true,
		TranslateSummaryTo: "fa",
		Attributes:         true,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":                out.URL,
		"characters":         out.Stats.Characters,
		"words":              out.Stats.Words,
		"summary":            out.Summary,
		"summary_translated": out.SummaryTranslated,
		"skills":             out.Analysis.Skills,
		"languages":          out.Analysis.Languages,
		"tech_stack":         out.Analysis.TechStack,
		"job_fit_score":      out.Analysis.JobFitScore,
	})
}

// truncatePreview cuts text to at most n runes, appending an ellipsis when
// it was shortened.
func truncatePreview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

// splitLines breaks extracted page text into non-empty trimmed lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
