package newsdata_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/newsdata"
)

type recorder struct {
	mu      sync.Mutex
	queries []map[string]string
}

func (r *recorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := map[string]string{}
	for k := range req.URL.Query() {
		q[k] = req.URL.Query().Get(k)
	}
	r.queries = append(r.queries, q)
}

func newClient(url string) *newsdata.Client {
	c := newsdata.New("secret", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.BaseURL = url
	c.Pause = 0
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestFetchCountryPagesAndFilters(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		switch r.URL.Query().Get("page") {
		case "":
			writeJSON(w, map[string]any{
				"status": "success",
				"results": []map[string]any{
					{"title": "Inflación sube", "link": "https://e.com/1", "content": "<p>Texto   uno</p>", "pubDate": "2024-03-01 10:00:00", "source_id": "e", "category": []string{"business"}},
					{"title": "Inflación sube", "link": "https://e.com/dup", "content": "duplicate title"},
					{"title": "", "link": "", "content": "orphan"},
					{"title": "Sin contenido", "link": "https://e.com/2", "content": "  "},
				},
				"nextPage": "p2",
			})
		case "p2":
			writeJSON(w, map[string]any{
				"status": "success",
				"results": []map[string]any{
					{"title": "", "link": "https://e.com/3", "full_description": "desde full description"},
					{"title": "Extra", "link": "https://e.com/4", "description": "never reached"},
				},
				"nextPage": "p3",
			})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	got, err := newClient(srv.URL).FetchCountry(context.Background(), newsdata.Query{
		Country:    "MX",
		PerCountry: 2,
		Categories: []string{"business", "technology"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "Inflación sube", got[0].Title)
	require.Equal(t, "Texto uno", got[0].Content)
	require.Equal(t, "mx", got[0].Country)
	require.Equal(t, "es", got[0].Language)
	require.Equal(t, []string{"business"}, got[0].Categories)
	require.Equal(t, "e", got[0].SourceID)

	require.Equal(t, "(no title)", got[1].Title)
	require.Equal(t, "https://e.com/3", got[1].Link)
	require.Equal(t, "desde full description", got[1].Content)
	require.NotNil(t, got[1].Categories)

	require.Len(t, rec.queries, 2)
	require.Equal(t, "secret", rec.queries[0]["apikey"])
	require.Equal(t, "mx", rec.queries[0]["country"])
	require.Equal(t, "es", rec.queries[0]["language"])
	require.Equal(t, "business,technology", rec.queries[0]["category"])
	require.Equal(t, "p2", rec.queries[1]["page"])
}

func TestFetchCountryStopsWithoutNextPage(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		writeJSON(w, map[string]any{
			"results": []map[string]any{{"title": "Only one", "link": "https://e.com/1", "description": "body"}},
		})
	}))
	defer srv.Close()

	got, err := newClient(srv.URL).FetchCountry(context.Background(), newsdata.Query{Country: "us", PerCountry: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, rec.queries, 1)
	require.Equal(t, "en", rec.queries[0]["language"])
}

func TestFetchCountryEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"results": []any{}, "nextPage": "p2"})
	}))
	defer srv.Close()

	got, err := newClient(srv.URL).FetchCountry(context.Background(), newsdata.Query{Country: "ar", PerCountry: 3})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFetchCountryHTTPErrorKeepsCollected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "" {
			writeJSON(w, map[string]any{
				"results":  []map[string]any{{"title": "First", "link": "https://e.com/1", "content": "body"}},
				"nextPage": "p2",
			})
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	got, err := newClient(srv.URL).FetchCountry(context.Background(), newsdata.Query{
		Country:     "gb",
		PerCountry:  3,
		LanguageAll: "PT",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
	require.Len(t, got, 1)
	require.Equal(t, "pt", got[0].Language)
}

func TestLanguageFor(t *testing.T) {
	require.Equal(t, "en", newsdata.LanguageFor("US"))
	require.Equal(t, "en", newsdata.LanguageFor("gb"))
	require.Equal(t, "es", newsdata.LanguageFor("br"))
}
