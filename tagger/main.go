package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/DeafMist/news-tagger/internal/analyzer"
	"github.com/DeafMist/news-tagger/internal/batch"
	"github.com/DeafMist/news-tagger/internal/config"
	"github.com/DeafMist/news-tagger/internal/corpus"
	"github.com/DeafMist/news-tagger/internal/language"
	"github.com/DeafMist/news-tagger/internal/logger"
	"github.com/DeafMist/news-tagger/internal/report"
	"github.com/DeafMist/news-tagger/internal/taxonomy"
)

func main() {
	log := logger.New("tagger")
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", slog.Any("err", err))
	}

	cfg, err := config.LoadTagger()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	app := newApp(log, cfg)
	if err := app.Run(os.Args); err != nil {
		log.Error("tagger failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func newApp(log *slog.Logger, cfg *config.Tagger) *cli.App {
	return &cli.App{
		Name:  "tagger",
		Usage: "classify a folder of news articles by headline and write JSON/CSV reports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Value: cfg.DataDir, Usage: "folder containing .txt news files"},
			&cli.StringFlag{Name: "out", Value: cfg.OutDir, Usage: "output folder for reports"},
			&cli.IntFlag{Name: "top", Value: cfg.TopWords, Usage: "frequent words kept per article"},
			&cli.IntFlag{Name: "min-matches", Value: cfg.MinMatches, Usage: "keyword hits that accept a category outright"},
			&cli.BoolFlag{Name: "disable-strong", Value: !cfg.AllowStrong, Usage: "disable strong-keyword single-hit acceptance"},
			&cli.StringFlag{Name: "taxonomy", Value: cfg.TaxonomyFile, Usage: "YAML taxonomy replacing the built-in one"},
			&cli.IntFlag{Name: "workers", Value: cfg.Workers, Usage: "files analyzed concurrently"},
			&cli.BoolFlag{Name: "detect-language", Value: cfg.DetectLanguage, Usage: "annotate records with the detected language"},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, log, options{
				DataDir:        c.String("data"),
				OutDir:         c.String("out"),
				TopWords:       c.Int("top"),
				MinMatches:     c.Int("min-matches"),
				AllowStrong:    !c.Bool("disable-strong"),
				TaxonomyFile:   c.String("taxonomy"),
				Workers:        c.Int("workers"),
				DetectLanguage: c.Bool("detect-language"),
			})
		},
	}
}

type options struct {
	DataDir        string
	OutDir         string
	TopWords       int
	MinMatches     int
	AllowStrong    bool
	TaxonomyFile   string
	Workers        int
	DetectLanguage bool
}

func run(parent context.Context, log *slog.Logger, opts options) error {
	if opts.MinMatches <= 0 {
		return fmt.Errorf("--min-matches must be positive")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	paths, err := corpus.ListTextFiles(opts.DataDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		log.Warn("no .txt files found", slog.String("data", opts.DataDir))
		return nil
	}

	tax, err := taxonomy.FromFileOrDefault(opts.TaxonomyFile)
	if err != nil {
		return err
	}

	analyzerOpts := []analyzer.Option{
		analyzer.WithTopWords(opts.TopWords),
		analyzer.WithMinMatches(opts.MinMatches),
		analyzer.WithAllowStrong(opts.AllowStrong),
	}
	if opts.DetectLanguage {
		analyzerOpts = append(analyzerOpts, analyzer.WithLanguageDetector(language.NewLingua()))
	}

	runner := &batch.Runner{
		Analyzer: analyzer.New(tax, analyzerOpts...),
		Workers:  opts.Workers,
		Log:      log,
	}
	records := runner.Run(ctx, paths)

	w := &report.Writer{Dir: opts.OutDir, CategoryOrder: tax.Broad.Names()}
	out, err := w.Write(records, time.Now())
	if err != nil {
		return err
	}

	log.Info("articles processed",
		slog.Int("files", len(paths)),
		slog.Int("analyzed", len(records)),
		slog.String("json", out.JSON),
		slog.String("csv", out.CSV),
		slog.String("summary", out.Summary),
	)
	return nil
}
