package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/DeafMist/news-tagger/internal/config"
	"github.com/DeafMist/news-tagger/internal/corpus"
	"github.com/DeafMist/news-tagger/internal/feeds"
	"github.com/DeafMist/news-tagger/internal/logger"
	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/newsdata"
)

func main() {
	log := logger.New("downloader")
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", slog.Any("err", err))
	}

	cfg, err := config.LoadDownloader()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	if err := newApp(log, cfg).Run(os.Args); err != nil {
		log.Error("downloader failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func newApp(log *slog.Logger, cfg *config.Downloader) *cli.App {
	return &cli.App{
		Name:  "downloader",
		Usage: "download a small multi-country news corpus as plain text files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-key", Value: cfg.APIKey, Usage: "NewsData.io API key"},
			&cli.StringFlag{Name: "countries", Value: strings.Join(cfg.Countries, ","), Usage: "comma-separated ISO2 country codes"},
			&cli.IntFlag{Name: "per-country", Value: cfg.PerCountry, Usage: "articles per country"},
			&cli.StringFlag{Name: "out", Value: cfg.OutDir, Usage: "output directory for .txt files"},
			&cli.StringFlag{Name: "categories", Value: strings.Join(cfg.Categories, ","), Usage: "optional comma-separated categories"},
			&cli.StringFlag{Name: "language-all", Value: cfg.LanguageAll, Usage: "force one language for every request"},
			&cli.StringFlag{Name: "feeds", Value: strings.Join(cfg.Feeds, ","), Usage: "comma-separated RSS/Atom feed URLs"},
			&cli.DurationFlag{Name: "pause", Value: cfg.Pause, Usage: "pause between API pages"},
		},
		Action: func(c *cli.Context) error {
			d := &downloader{
				log:     log,
				outDir:  c.String("out"),
				perItem: c.Int("per-country"),
			}
			if d.perItem <= 0 {
				return fmt.Errorf("--per-country must be positive")
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			countries := config.SplitLowerList(c.String("countries"))
			feedURLs := config.SplitList(c.String("feeds"))
			apiKey := strings.TrimSpace(c.String("api-key"))

			if apiKey == "" {
				if len(feedURLs) == 0 {
					return errors.New("an API key is required (--api-key or NEWSDATA_API_KEY)")
				}
				if len(countries) > 0 {
					log.Warn("no API key, skipping NewsData countries")
				}
				countries = nil
			}

			if len(countries) > 0 {
				client := newsdata.New(apiKey, cfg.Timeout, log)
				client.BaseURL = cfg.APIURL
				client.Pause = c.Duration("pause")
				d.fetchCountries(ctx, client, countries, newsdata.Query{
					Categories:  config.SplitLowerList(c.String("categories")),
					LanguageAll: strings.ToLower(strings.TrimSpace(c.String("language-all"))),
				})
			}
			if len(feedURLs) > 0 {
				d.fetchFeeds(ctx, feeds.NewFetcher(cfg.Timeout, log), feedURLs)
			}

			log.Info("done", slog.Int("files_written", d.written))
			return ctx.Err()
		},
	}
}

type countryFetcher interface {
	FetchCountry(ctx context.Context, q newsdata.Query) ([]models.RawArticle, error)
}

type feedFetcher interface {
	Fetch(ctx context.Context, url string, limit int) ([]models.RawArticle, error)
}

type downloader struct {
	log     *slog.Logger
	outDir  string
	perItem int
	written int
}

func (d *downloader) fetchCountries(ctx context.Context, client countryFetcher, countries []string, base newsdata.Query) {
	for _, country := range countries {
		if ctx.Err() != nil {
			return
		}
		log := d.log.With(slog.String("country", strings.ToUpper(country)))
		log.Info("fetching articles", slog.Int("limit", d.perItem))

		q := base
		q.Country = country
		q.PerCountry = d.perItem

		items, err := client.FetchCountry(ctx, q)
		if err != nil {
			log.Error("fetch failed", slog.Any("err", err))
		}
		if len(items) == 0 {
			log.Warn("no items saved")
			continue
		}
		d.save(log, country, items)
	}
}

func (d *downloader) fetchFeeds(ctx context.Context, f feedFetcher, urls []string) {
	var items []models.RawArticle
	for _, u := range urls {
		if ctx.Err() != nil {
			return
		}
		log := d.log.With(slog.String("feed", u))
		got, err := f.Fetch(ctx, u, d.perItem)
		if err != nil {
			log.Error("fetch failed", slog.Any("err", err))
			continue
		}
		log.Info("feed fetched", slog.Int("items", len(got)))
		items = append(items, got...)
	}
	if len(items) == 0 {
		return
	}
	d.save(d.log, feeds.Prefix, items)
}

func (d *downloader) save(log *slog.Logger, prefix string, items []models.RawArticle) {
	for i, item := range items {
		path, err := corpus.WriteArticle(d.outDir, prefix, i+1, item)
		if err != nil {
			log.Error("write article", slog.Any("err", err))
			continue
		}
		d.written++
		log.Info("saved", slog.String("path", path))
	}
}
