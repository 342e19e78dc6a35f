package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/config"
	"github.com/DeafMist/news-tagger/internal/header"
	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/newsdata"
)

type stubCountries struct {
	queries []newsdata.Query
	items   map[string][]models.RawArticle
	errs    map[string]error
}

func (s *stubCountries) FetchCountry(_ context.Context, q newsdata.Query) ([]models.RawArticle, error) {
	s.queries = append(s.queries, q)
	return s.items[q.Country], s.errs[q.Country]
}

type stubFeeds struct {
	items map[string][]models.RawArticle
}

func (s *stubFeeds) Fetch(_ context.Context, url string, limit int) ([]models.RawArticle, error) {
	items, ok := s.items[url]
	if !ok {
		return nil, errors.New("not found")
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func newDownloader(t *testing.T) *downloader {
	t.Helper()
	return &downloader{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		outDir:  t.TempDir(),
		perItem: 2,
	}
}

func TestFetchCountriesWritesFiles(t *testing.T) {
	d := newDownloader(t)
	stub := &stubCountries{
		items: map[string][]models.RawArticle{
			"mx": {
				{Country: "mx", Language: "es", Title: "Uno", Content: "a"},
				{Country: "mx", Language: "es", Title: "Dos", Content: "b"},
			},
			"gb": {{Country: "gb", Language: "en", Title: "Partial", Content: "c"}},
		},
		errs: map[string]error{"gb": errors.New("HTTP 429")},
	}

	d.fetchCountries(context.Background(), stub, []string{"mx", "ar", "gb"}, newsdata.Query{Categories: []string{"top"}})

	require.Equal(t, 3, d.written)
	require.Len(t, stub.queries, 3)
	require.Equal(t, 2, stub.queries[0].PerCountry)
	require.Equal(t, []string{"top"}, stub.queries[1].Categories)

	for _, name := range []string{"MX_001.txt", "MX_002.txt", "GB_001.txt"} {
		require.FileExists(t, filepath.Join(d.outDir, name))
	}
	require.NoFileExists(t, filepath.Join(d.outDir, "AR_001.txt"))

	raw, err := os.ReadFile(filepath.Join(d.outDir, "MX_002.txt"))
	require.NoError(t, err)
	require.Equal(t, "Dos", header.Parse(string(raw)).Title)
}

func TestFetchFeedsNumbersAcrossFeeds(t *testing.T) {
	d := newDownloader(t)
	stub := &stubFeeds{items: map[string][]models.RawArticle{
		"https://a.example/rss": {{Title: "A1", Content: "x"}, {Title: "A2", Content: "x"}, {Title: "A3", Content: "x"}},
		"https://b.example/rss": {{Title: "B1", Content: "x"}},
	}}

	d.fetchFeeds(context.Background(), stub, []string{"https://a.example/rss", "https://missing.example", "https://b.example/rss"})

	require.Equal(t, 3, d.written)
	raw, err := os.ReadFile(filepath.Join(d.outDir, "RSS_003.txt"))
	require.NoError(t, err)
	require.Equal(t, "B1", header.Parse(string(raw)).Title)
}

func TestAppRequiresAPIKeyWithoutFeeds(t *testing.T) {
	t.Setenv("NEWSDATA_API_KEY", "")
	t.Setenv("DOWNLOADER_FEEDS", "")
	cfg, err := config.LoadDownloader()
	require.NoError(t, err)

	app := newApp(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	err = app.Run([]string{"downloader", "--out", t.TempDir()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "API key")
}

func TestAppRejectsBadPerCountry(t *testing.T) {
	cfg, err := config.LoadDownloader()
	require.NoError(t, err)

	app := newApp(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	require.Error(t, app.Run([]string{"downloader", "--per-country", "0"}))
}
