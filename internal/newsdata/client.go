package newsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DeafMist/news-tagger/internal/dedupe"
	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/processing"
)

const (
	// DefaultBaseURL is the NewsData.io latest-news endpoint.
	DefaultBaseURL = "https://newsdata.io/api/1/news"
	// DefaultPause separates page requests.
	DefaultPause = 600 * time.Millisecond

	noTitle = "(no title)"
	noLink  = "(no link)"

	errorBodyLimit = 200
)

// Query selects the articles fetched for one country.
type Query struct {
	Country    string
	PerCountry int
	Categories []string
	// LanguageAll forces one language for every country when set.
	LanguageAll string
}

// Client talks to the NewsData.io API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Pause   time.Duration
	Log     *slog.Logger
}

// New builds a client with default endpoint, pause and a timeout-bound
// HTTP client.
func New(apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
		Pause:   DefaultPause,
		Log:     log,
	}
}

type item struct {
	Title           string   `json:"title"`
	Link            string   `json:"link"`
	PubDate         string   `json:"pubDate"`
	SourceID        string   `json:"source_id"`
	Category        []string `json:"category"`
	Content         string   `json:"content"`
	FullDescription string   `json:"full_description"`
	Description     string   `json:"description"`
}

type response struct {
	Status   string `json:"status"`
	Results  []item `json:"results"`
	NextPage string `json:"nextPage"`
}

// LanguageFor picks the request language for a country: English for the
// US and GB, Spanish elsewhere.
func LanguageFor(country string) string {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "us", "gb":
		return "en"
	default:
		return "es"
	}
}

// FetchCountry pages through the API until q.PerCountry usable articles are
// collected or the results run out. On an HTTP failure the articles gathered
// so far are returned together with the error.
func (c *Client) FetchCountry(ctx context.Context, q Query) ([]models.RawArticle, error) {
	log := c.logger().With("country", strings.ToUpper(q.Country))

	country := strings.ToLower(strings.TrimSpace(q.Country))
	language := strings.ToLower(strings.TrimSpace(q.LanguageAll))
	if language == "" {
		language = LanguageFor(country)
	}

	params := url.Values{}
	params.Set("apikey", c.APIKey)
	params.Set("country", country)
	params.Set("language", language)
	if len(q.Categories) > 0 {
		params.Set("category", strings.Join(q.Categories, ","))
	}

	collected := make([]models.RawArticle, 0, max(q.PerCountry, 0))
	seen := dedupe.NewCache(max(q.PerCountry*4, 64), 24*time.Hour)

	for len(collected) < q.PerCountry {
		page, err := c.get(ctx, params)
		if err != nil {
			return collected, err
		}
		if len(page.Results) == 0 {
			log.Info("no more results")
			break
		}

		for _, it := range page.Results {
			if len(collected) >= q.PerCountry {
				break
			}
			article, ok := toArticle(it, country, language, seen)
			if !ok {
				continue
			}
			collected = append(collected, article)
		}

		if page.NextPage == "" || len(collected) >= q.PerCountry {
			break
		}
		params.Set("page", page.NextPage)

		if err := sleep(ctx, c.Pause); err != nil {
			return collected, err
		}
	}

	return collected, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (response, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return response{}, fmt.Errorf("newsdata: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return response{}, fmt.Errorf("decode news: %w", err)
	}
	return out, nil
}

func toArticle(it item, country, language string, seen *dedupe.Cache) (models.RawArticle, bool) {
	title := processing.CleanText(it.Title)
	link := processing.SanitizeText(it.Link)

	if title == "" && link == "" {
		return models.RawArticle{}, false
	}
	if seen.SeenAny(dedupe.KindLink, link, dedupe.KindTitle, title) {
		return models.RawArticle{}, false
	}

	content := processing.CleanText(bestContent(it))
	if content == "" {
		return models.RawArticle{}, false
	}

	seen.Mark(dedupe.KindLink, link)
	seen.Mark(dedupe.KindTitle, title)

	categories := it.Category
	if categories == nil {
		categories = []string{}
	}

	return models.RawArticle{
		Country:    country,
		Language:   language,
		Title:      orDefault(title, noTitle),
		Link:       orDefault(link, noLink),
		PubDate:    processing.SanitizeText(it.PubDate),
		SourceID:   processing.SanitizeText(it.SourceID),
		Categories: categories,
		Content:    content,
	}, true
}

func bestContent(it item) string {
	for _, v := range []string{it.Content, it.FullDescription, it.Description} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}
