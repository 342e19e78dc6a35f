package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/DeafMist/news-tagger/internal/models"
)

// ContentMarker separates the header block from the article body.
const ContentMarker = "----- CONTENT -----"

// ListTextFiles returns the .txt files directly inside dir, sorted by path.
// A missing directory yields an empty list.
func ListTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadTextFile loads a corpus file as UTF-8. Files that are not valid UTF-8
// are decoded with the sniffed legacy encoding; undecodable bytes are dropped.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return decode(data), nil
}

func decode(data []byte) string {
	enc, name, _ := charset.DetermineEncoding(data, "text/plain")
	if name == "utf-8" || utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), "")
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return strings.ToValidUTF8(string(out), "")
}

// FileName builds the corpus name for the idx-th article of prefix,
// e.g. "MX_001.txt".
func FileName(prefix string, idx int) string {
	return fmt.Sprintf("%s_%03d.txt", strings.ToUpper(prefix), idx)
}

// WriteArticle stores a in dir using the corpus layout and returns the path.
func WriteArticle(dir, prefix string, idx int, a models.RawArticle) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(prefix, idx))
	if err := os.WriteFile(path, []byte(Render(a)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Render formats a as a corpus document.
func Render(a models.RawArticle) string {
	header := []string{
		"Title: " + a.Title,
		"Date: " + a.PubDate,
		"Source: " + a.SourceID,
		"Country: " + strings.ToUpper(a.Country),
		"Language: " + a.Language,
		"Link: " + a.Link,
		"",
		ContentMarker,
		"",
	}

	body := a.Content
	if !strings.HasPrefix(body, "\n") {
		body = "\n" + body
	}
	return strings.Join(header, "\n") + body
}
