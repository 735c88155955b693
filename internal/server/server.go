package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/textpipe/internal/enrich"
	"github.com/jonathan/textpipe/internal/pipeline"
	"github.com/jonathan/textpipe/internal/report"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	runner     *pipeline.Runner
	gateway    *enrich.Gateway
	writer     *report.Writer
	validator  *validator.Validate
	closeFn    func() error
}

// Config holds server configuration.
type Config struct {
	Port    int
	DataDir string
	// APIKey, when set, enables the Gemini enrichment provider.
	// Without it the deterministic local fallback provider is used.
	APIKey string
	// JokeURL overrides the joke API endpoint (tests).
	JokeURL string
}

// New creates a server instance, selecting the enrichment provider once at
// process start: handlers never reach into a mutable global.
func New(cfg Config) (*Server, error) {
	writer, err := report.NewWriter(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create report writer: %w", err)
	}

	var provider enrich.Enricher
	var closeFn func() error
	if cfg.APIKey != "" {
		gemini, err := enrich.NewGeminiEnricher(context.Background(), cfg.APIKey, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini enricher: %w", err)
		}
		provider = gemini
		closeFn = gemini.Close
	} else {
		provider = enrich.NewFallbackEnricher()
	}
	log.Printf("Enrichment provider: %s", provider.Name())

	gateway := enrich.NewGateway(provider)
	runner := pipeline.NewRunner(gateway, writer, enrich.NewJokeClient(cfg.JokeURL), nil)

	s := newServer(cfg, runner, gateway, writer)
	s.closeFn = closeFn
	return s, nil
}

// newServer wires the router around pre-built collaborators.
func newServer(cfg Config, runner *pipeline.Runner, gateway *enrich.Gateway, writer *report.Writer) *Server {
	s := &Server{
		runner:    runner,
		gateway:   gateway,
		writer:    writer,
		validator: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /process", s.handleProcess)
	mux.HandleFunc("POST /process_text", s.handleProcessText)
	mux.HandleFunc("POST /analyze_only", s.handleAnalyzeOnly)
	mux.HandleFunc("POST /upload_file", s.handleUploadFile)
	mux.HandleFunc("POST /upload_pdf", s.handleUploadPDF)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("POST /translate", s.handleTranslate)
	mux.HandleFunc("POST /ai_report", s.handleAIReport)
	mux.HandleFunc("POST /sentiment", s.handleSentiment)
	mux.HandleFunc("POST /sentiment_ai", s.handleSentimentAI)
	mux.HandleFunc("POST /scrape_url", s.handleScrapeURL)
	mux.HandleFunc("POST /scrape_url_ai", s.handleScrapeURLAI)
	mux.HandleFunc("POST /scrape_to_csv", s.handleScrapeToCSV)
	mux.HandleFunc("POST /analyze_url_ai", s.handleAnalyzeURLAI)
	mux.HandleFunc("POST /analyze_job", s.handleAnalyzeJob)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // rendered scraping can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.closeFn != nil {
		if err := s.closeFn(); err != nil {
			log.Printf("Error closing enrichment provider: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHome returns the service banner.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.errorResponse(w, http.StatusNotFound, "not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Automation API is running!"})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// pipelineError maps a pipeline error onto status and detail.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), errorDetail(err))
}
