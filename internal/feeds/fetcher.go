package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/DeafMist/news-tagger/internal/dedupe"
	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/processing"
)

// Prefix names corpus files written from feeds, e.g. RSS_001.txt.
const Prefix = "RSS"

// Fetcher harvests articles from RSS and Atom feeds.
type Fetcher struct {
	Parser *gofeed.Parser
	Log    *slog.Logger
	// Seen is shared across feeds so the same story is kept once.
	Seen *dedupe.Cache
}

// NewFetcher builds a fetcher whose HTTP requests time out after timeout.
func NewFetcher(timeout time.Duration, log *slog.Logger) *Fetcher {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: timeout}
	return &Fetcher{
		Parser: p,
		Log:    log,
		Seen:   dedupe.NewCache(4096, 24*time.Hour),
	}
}

// Fetch parses the feed at url and returns up to limit articles. Items
// without title and link, duplicates and items without text are skipped.
func (f *Fetcher) Fetch(ctx context.Context, url string, limit int) ([]models.RawArticle, error) {
	feed, err := f.Parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	return f.Collect(feed, limit), nil
}

// Collect maps parsed feed items to articles.
func (f *Fetcher) Collect(feed *gofeed.Feed, limit int) []models.RawArticle {
	out := make([]models.RawArticle, 0, max(limit, 0))
	if f.Seen == nil {
		f.Seen = dedupe.NewCache(4096, 24*time.Hour)
	}

	language := strings.ToLower(feed.Language)
	if i := strings.IndexAny(language, "-_"); i > 0 {
		language = language[:i]
	}

	for _, item := range feed.Items {
		if len(out) >= limit {
			break
		}

		title := processing.CleanText(item.Title)
		link := processing.SanitizeText(item.Link)
		if title == "" && link == "" {
			continue
		}
		if f.Seen.SeenAny(dedupe.KindLink, link, dedupe.KindTitle, title) {
			continue
		}

		content := processing.CleanText(item.Content)
		if content == "" {
			content = processing.CleanText(item.Description)
		}
		if content == "" {
			f.logger().Debug("skipping feed item without text", "link", link)
			continue
		}

		f.Seen.Mark(dedupe.KindLink, link)
		f.Seen.Mark(dedupe.KindTitle, title)

		out = append(out, models.RawArticle{
			Language:   language,
			Title:      orDefault(title, "(no title)"),
			Link:       orDefault(link, "(no link)"),
			PubDate:    pubDate(item),
			SourceID:   processing.SanitizeText(feed.Title),
			Categories: categories(item),
			Content:    content,
		})
	}
	return out
}

func pubDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return processing.SanitizeText(item.Published)
}

func categories(item *gofeed.Item) []string {
	out := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		if c = processing.SanitizeText(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Log != nil {
		return f.Log
	}
	return slog.Default()
}
