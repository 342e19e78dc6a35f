package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/DeafMist/news-tagger/internal/analyzer"
	"github.com/DeafMist/news-tagger/internal/config"
	"github.com/DeafMist/news-tagger/internal/language"
	"github.com/DeafMist/news-tagger/internal/logger"
	"github.com/DeafMist/news-tagger/internal/processing"
	"github.com/DeafMist/news-tagger/internal/taxonomy"
)

const (
	maxBodyBytes  = 1 << 20
	maxMinMatches = 50
)

func main() {
	log := logger.New("api")
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", slog.Any("err", err))
	}

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	tax, err := taxonomy.FromFileOrDefault(cfg.TaxonomyFile)
	if err != nil {
		log.Error("load taxonomy", slog.Any("err", err))
		os.Exit(1)
	}

	opts := []analyzer.Option{
		analyzer.WithTopWords(cfg.TopWords),
		analyzer.WithMinMatches(cfg.MinMatches),
		analyzer.WithAllowStrong(cfg.AllowStrong),
	}
	if cfg.DetectLanguage {
		opts = append(opts, analyzer.WithLanguageDetector(language.NewLingua()))
	}

	srv := &server{log: log, analyzer: analyzer.New(tax, opts...)}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type server struct {
	log      *slog.Logger
	analyzer *analyzer.Analyzer
}

type errorResponse struct {
	Error string `json:"error"`
}

type classifyRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
	// Document is a raw corpus file; when set the other text fields are ignored.
	Document string `json:"document"`
}

type categoryView struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Strong   []string `json:"strong"`
}

type taxonomyView struct {
	Fallback        string         `json:"fallback"`
	GenericCategory string         `json:"generic_category,omitempty"`
	GenericTerms    []string       `json:"generic_terms"`
	Categories      []categoryView `json:"categories"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/taxonomy", s.handleTaxonomy)
	r.Post("/classify", s.handleClassify)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	tax := s.analyzer.Taxonomy()

	view := taxonomyView{
		Fallback:        tax.Fallback,
		GenericCategory: tax.GenericCategory,
		GenericTerms:    nonNil(tax.GenericTerms),
		Categories:      make([]categoryView, 0, tax.Broad.Len()),
	}
	for _, c := range tax.Broad.Categories() {
		view.Categories = append(view.Categories, categoryView{
			Name:     c.Name,
			Keywords: nonNil(c.Keywords),
			Strong:   nonNil(tax.Strong.Keywords(c.Name)),
		})
	}

	writeJSON(w, http.StatusOK, view)
}

// handleClassify analyzes one article. Query parameters min_matches and
// allow_strong override the server defaults for this request.
func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	document := req.Document
	if strings.TrimSpace(document) == "" {
		document = analyzer.Document(
			processing.CleanText(req.Title),
			processing.CleanText(req.Description),
			processing.CleanText(req.Text),
		)
	}
	if strings.TrimSpace(document) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "title, description, text or document is required"})
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = processing.BuildDocumentID(req.Title, document)
	}
	if id == "" {
		id = uuid.NewString()
	}

	q := r.URL.Query()
	an := s.analyzer.WithSettings(
		clampInt(q.Get("min_matches"), s.analyzer.MinMatches(), maxMinMatches),
		parseBool(q.Get("allow_strong"), s.analyzer.AllowStrong()),
	)

	record := an.Analyze(id, document)
	s.log.Debug("classified",
		slog.String("id", id),
		slog.String("category", record.Category),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusOK, record)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func clampInt(raw string, fallback, limit int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > limit {
		return limit
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
