package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/DeafMist/news-tagger/internal/models"
)

// TimestampLayout names report files, e.g. report-20240301-101500.json.
const TimestampLayout = "20060102-150405"

const (
	reportPrefix  = "report-"
	summaryPrefix = "summary-"
)

var csvHeader = []string{
	"file", "title", "category", "category_reason", "category_score",
	"category_hits", "most_frequent_words", "entities", "gpe", "dates",
}

// Paths are the files produced by one Write.
type Paths struct {
	JSON    string
	CSV     string
	Summary string
}

// CategoryCount is one row of the category summary.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Writer renders analysis records into timestamped report files.
type Writer struct {
	Dir string
	// CategoryOrder fixes the order of hits in the flattened CSV.
	// Categories not listed follow in name order.
	CategoryOrder []string
}

// Write creates Dir and stores the detailed JSON report, the flattened CSV
// and the category summary, all stamped with now.
func (w *Writer) Write(records []models.Analysis, now time.Time) (Paths, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create %s: %w", w.Dir, err)
	}

	ts := now.Format(TimestampLayout)
	paths := Paths{
		JSON:    filepath.Join(w.Dir, reportPrefix+ts+".json"),
		CSV:     filepath.Join(w.Dir, reportPrefix+ts+".csv"),
		Summary: filepath.Join(w.Dir, summaryPrefix+ts+".csv"),
	}

	if err := writeJSON(paths.JSON, records); err != nil {
		return Paths{}, err
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, csvHeader)
	for _, r := range records {
		rows = append(rows, w.flatten(r))
	}
	if err := writeCSV(paths.CSV, rows); err != nil {
		return Paths{}, err
	}

	summary := [][]string{{"category", "count"}}
	for _, c := range Summarize(records) {
		summary = append(summary, []string{c.Category, strconv.Itoa(c.Count)})
	}
	if err := writeCSV(paths.Summary, summary); err != nil {
		return Paths{}, err
	}

	return paths, nil
}

// Summarize counts records per category, largest first. Ties keep the order
// in which categories first appear.
func Summarize(records []models.Analysis) []CategoryCount {
	counts := make([]CategoryCount, 0)
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(counts)
			index[r.Category] = i
			counts = append(counts, CategoryCount{Category: r.Category})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

func (w *Writer) flatten(r models.Analysis) []string {
	return []string{
		r.File,
		r.Title,
		r.Category,
		r.CategoryReason,
		strconv.Itoa(r.CategoryScore),
		w.formatHits(r.CategoryHits),
		strings.Join(r.TopWords, ";"),
		strings.Join(r.Names, ";"),
		strings.Join(r.Places, ";"),
		strings.Join(r.Dates, ";"),
	}
}

func (w *Writer) formatHits(hits map[string][]string) string {
	if len(hits) == 0 {
		return ""
	}

	parts := make([]string, 0, len(hits))
	done := make(map[string]struct{}, len(hits))
	for _, cat := range w.CategoryOrder {
		kws, ok := hits[cat]
		if !ok {
			continue
		}
		if _, dup := done[cat]; dup {
			continue
		}
		done[cat] = struct{}{}
		parts = append(parts, cat+":"+strings.Join(kws, ","))
	}

	rest := make([]string, 0)
	for cat := range hits {
		if _, ok := done[cat]; !ok {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	for _, cat := range rest {
		parts = append(parts, cat+":"+strings.Join(hits[cat], ","))
	}
	return strings.Join(parts, ";")
}

func writeJSON(path string, records []models.Analysis) error {
	if records == nil {
		records = []models.Analysis{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
