package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/textpipe/internal/acquire"
	"github.com/jonathan/textpipe/internal/pipeline"
)

// maxUploadBytes bounds multipart uploads held in memory.
const maxUploadBytes = 10 << 20

// TextRequest is the body for plain-text endpoints.
type TextRequest struct {
	Text string `json:"text"`
}

// TranslateRequest is the body for /translate.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// AIReportRequest is the body for /ai_report.
type AIReportRequest struct {
	Text        string `json:"text"`
	TranslateTo string `json:"translate_to,omitempty"`
}

// ProcessResponse is the payload for /process_text.
type ProcessResponse struct {
	Cleaned       string `json:"cleaned"`
	Characters    int    `json:"characters"`
	Words         int    `json:"words"`
	JokeSetup     string `json:"joke_setup"`
	JokePunchline string `json:"joke_punchline"`
	ReportTXT     string `json:"report_txt"`
	ReportJSON    string `json:"report_json"`
	ReportCSV     string `json:"report_csv"`
}

// AIReportResponse is the payload for /ai_report.
type AIReportResponse struct {
	Cleaned       string            `json:"cleaned"`
	Characters    int               `json:"characters"`
	Words         int               `json:"words"`
	Summary       string            `json:"summary"`
	JokeSetup     string            `json:"joke_setup"`
	JokePunchline string            `json:"joke_punchline"`
	Translated    *string           `json:"translated"`
	Reports       map[string]string `json:"reports"`
}

// decodeRequest decodes and validates a request body, failing with 400 on
// malformed JSON or a missing required field.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// handleProcess cleans and counts text from the query string; no artifacts.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	out, err := s.runner.Run(r.Context(), r.URL.Query().Get("text"), pipeline.Spec{Joke: true})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cleaned":        out.Cleaned,
		"characters":     out.Stats.Characters,
		"words":          out.Stats.Words,
		"joke_setup":     out.Joke.Setup,
		"joke_punchline": out.Joke.Punchline,
	})
}

// handleProcessText is the main clean + count + persist endpoint.
func (s *Server) handleProcessText(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.Text, pipeline.Spec{
		MinTextLen: 3,
		Joke:       true,
		Persist:    true,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ProcessResponse{
		Cleaned:       out.Cleaned,
		Characters:    out.Stats.Characters,
		Words:         out.Stats.Words,
		JokeSetup:     out.Joke.Setup,
		JokePunchline: out.Joke.Punchline,
		ReportTXT:     out.Reports.TXT,
		ReportJSON:    out.Reports.JSON,
		ReportCSV:     out.Reports.CSV,
	})
}

// handleAnalyzeOnly cleans and counts without any side effects.
func (s *Server) handleAnalyzeOnly(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.Text, pipeline.Spec{})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cleaned":    out.Cleaned,
		"characters": out.Stats.Characters,
		"words":      out.Stats.Words,
	})
}

// handleUploadFile processes an uploaded plain-text file.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	out, err := s.runner.Run(r.Context(), string(content), pipeline.Spec{
		Joke:    true,
		Persist: true,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"filename":    filename,
		"cleaned":     out.Cleaned,
		"characters":  out.Stats.Characters,
		"words":       out.Stats.Words,
		"report_txt":  out.Reports.TXT,
		"report_json": out.Reports.JSON,
		"report_csv":  out.Reports.CSV,
	})
}

// handleUploadPDF extracts text from an uploaded PDF before processing.
func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		s.errorResponse(w, http.StatusBadRequest, detailFileMustBePDF)
		return
	}

	text, err := acquire.ExtractPDF(content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to extract PDF text: "+err.Error())
		return
	}

	out, err := s.runner.Run(r.Context(), text, pipeline.Spec{
		Joke:    true,
		Persist: true,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"filename":    filename,
		"cleaned":     out.Cleaned,
		"characters":  out.Stats.Characters,
		"words":       out.Stats.Words,
		"report_txt":  out.Reports.TXT,
		"report_json": out.Reports.JSON,
		"report_csv":  out.Reports.CSV,
	})
}

// readUpload pulls the "file" part out of a multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file upload")
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read upload: "+err.Error())
		return "", nil, false
	}

	return header.Filename, content, true
}

// handleSummarize returns the original text with its summary.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	if len([]rune(strings.TrimSpace(req.Text))) < 10 {
		s.errorResponse(w, http.StatusBadRequest, "Text too short.")
		return
	}

	summary := s.gateway.Summarize(r.Context(), req.Text)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"original": req.Text,
		"summary":  summary,
	})
}

// handleTranslate translates text to the target language (default English).
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	result := s.gateway.Translate(r.Context(), req.Text, req.TargetLang)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAIReport runs the full clean + summarize + optional-translate +
// persist pipeline over submitted text.
func (s *Server) handleAIReport(w http.ResponseWriter, r *http.Request) {
	var req AIReportRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	out, err := s.runner.Run(r.Context(), req.Text, pipeline.Spec{
		MinTextLen:      3,
		Summarize:       true,
		TranslateTextTo: req.TranslateTo,
		Joke:            true,
		Persist:         true,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	var translated *string
	if out.Translation != nil {
		translated = &out.Translation.Translated
	}

	s.jsonResponse(w, http.StatusOK, AIReportResponse{
		Cleaned:       out.Cleaned,
		Characters:    out.Stats.Characters,
		Words:         out.Stats.Words,
		Summary:       out.Summary,
		JokeSetup:     out.Joke.Setup,
		JokePunchline: out.Joke.Punchline,
		Translated:    translated,
		Reports: map[string]string{
			"txt":  out.Reports.TXT,
			"json": out.Reports.JSON,
			"csv":  out.Reports.CSV,
		},
	})
}

// handleSentiment scores text with the basic English-only policy.
func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	result := s.gateway.AnalyzeSentiment(r.Context(), req.Text)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSentimentAI runs the language-aware sentiment pipeline. Validation
// failures are client errors; provider failures surface as server errors.
func (s *Server) handleSentimentAI(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	result, err := s.gateway.AnalyzeSentimentAware(r.Context(), req.Text)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"language":        result.Language,
		"label":           result.Label,
		"score":           result.Score,
		"translated_text": nullableString(result.TranslatedText),
	})
}

// nullableString maps "" to JSON null.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
