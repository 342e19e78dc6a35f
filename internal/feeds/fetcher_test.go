package feeds_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/feeds"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Diario Ejemplo</title>
  <language>es-MX</language>
  <item>
    <title>Banco central sube la tasa de interés</title>
    <link>https://example.com/a</link>
    <description><![CDATA[<p>La inflación&nbsp;preocupa</p>]]></description>
    <category>economia</category>
    <pubDate>Fri, 01 Mar 2024 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Banco central sube la tasa de interés</title>
    <link>https://example.com/dup</link>
    <description>same title</description>
  </item>
  <item>
    <title>Sin texto</title>
    <link>https://example.com/empty</link>
  </item>
  <item>
    <title>Gol en la final</title>
    <link>https://example.com/b</link>
    <description>Victoria del equipo local</description>
  </item>
  <item>
    <title>Over the limit</title>
    <link>https://example.com/c</link>
    <description>ignored</description>
  </item>
</channel>
</rss>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = io.WriteString(w, sampleRSS)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newServer(t)
	f := feeds.NewFetcher(5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	got, err := f.Fetch(context.Background(), srv.URL, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	require.Equal(t, "Banco central sube la tasa de interés", first.Title)
	require.Equal(t, "https://example.com/a", first.Link)
	require.Equal(t, "La inflación preocupa", first.Content)
	require.Equal(t, "es", first.Language)
	require.Equal(t, "Diario Ejemplo", first.SourceID)
	require.Equal(t, "2024-03-01T10:00:00Z", first.PubDate)
	require.Equal(t, []string{"economia"}, first.Categories)

	require.Equal(t, "Gol en la final", got[1].Title)
	require.NotNil(t, got[1].Categories)
}

func TestFetchSkipsAlreadySeen(t *testing.T) {
	srv := newServer(t)
	f := feeds.NewFetcher(5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := f.Fetch(context.Background(), srv.URL, 10)
	require.NoError(t, err)

	again, err := f.Fetch(context.Background(), srv.URL, 10)
	require.NoError(t, err)
	require.Empty(t, again)
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f := feeds.NewFetcher(time.Second, nil)
	_, err := f.Fetch(context.Background(), srv.URL, 1)
	require.Error(t, err)
}
