package report_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/report"
)

func sampleRecords() []models.Analysis {
	return []models.Analysis{
		{
			File:           "US_001.txt",
			Title:          "Central bank raises interest rate amid inflation fears",
			Category:       "Economy",
			CategoryReason: "score>=2 (2)",
			CategoryScore:  2,
			CategoryHits: map[string][]string{
				"Technology": {"ai"},
				"Economy":    {"inflation", "interest rate"},
			},
			TopWords: []string{"central", "bank"},
			Names:    []string{},
			Places:   []string{},
			Dates:    []string{},
		},
		{
			File:           "MX_001.txt",
			Title:          "Inflación & <dólar> en México",
			Category:       "General",
			CategoryReason: "no_hits",
			CategoryHits:   map[string][]string{},
			TopWords:       []string{},
			Names:          []string{"Banco Central"},
			Places:         []string{"mexico"},
			Dates:          []string{"2024", "12/03/2024"},
		},
		{
			File:     "ES_001.txt",
			Category: "Economy",
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	now := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	w := &report.Writer{Dir: dir, CategoryOrder: []string{"Politics", "Economy", "Technology"}}

	paths, err := w.Write(sampleRecords(), now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report-20240301-101500.json"), paths.JSON)
	require.Equal(t, filepath.Join(dir, "report-20240301-101500.csv"), paths.CSV)
	require.Equal(t, filepath.Join(dir, "summary-20240301-101500.csv"), paths.Summary)

	raw, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	require.Contains(t, string(raw), "Inflación & <dólar> en México")
	require.Contains(t, string(raw), "\n  {")

	var decoded []models.Analysis
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, sampleRecords()[0].CategoryHits, decoded[0].CategoryHits)

	rows := readCSV(t, paths.CSV)
	require.Len(t, rows, 4)
	require.Equal(t, []string{
		"file", "title", "category", "category_reason", "category_score",
		"category_hits", "most_frequent_words", "entities", "gpe", "dates",
	}, rows[0])
	require.Equal(t, "Economy:inflation,interest rate;Technology:ai", rows[1][5])
	require.Equal(t, "central;bank", rows[1][6])
	require.Equal(t, "2", rows[1][4])
	require.Equal(t, "2024;12/03/2024", rows[2][9])
	require.Equal(t, "", rows[3][5])

	summary := readCSV(t, paths.Summary)
	require.Equal(t, [][]string{
		{"category", "count"},
		{"Economy", "2"},
		{"General", "1"},
	}, summary)
}

func TestWriteEmpty(t *testing.T) {
	dir := t.TempDir()
	w := &report.Writer{Dir: dir}

	paths, err := w.Write(nil, time.Now())
	require.NoError(t, err)

	raw, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(string(raw)))
	require.Len(t, readCSV(t, paths.Summary), 1)
}

func TestWriteUnknownCategoriesSorted(t *testing.T) {
	dir := t.TempDir()
	w := &report.Writer{Dir: dir, CategoryOrder: []string{"Sports"}}
	rec := models.Analysis{CategoryHits: map[string][]string{
		"Zeta":   {"z"},
		"Alpha":  {"a"},
		"Sports": {"win", "final"},
	}}

	paths, err := w.Write([]models.Analysis{rec}, time.Now())
	require.NoError(t, err)
	require.Equal(t, "Sports:win,final;Alpha:a;Zeta:z", readCSV(t, paths.CSV)[1][5])
}

func TestSummarizeTiesKeepFirstAppearance(t *testing.T) {
	records := []models.Analysis{
		{Category: "Sports"},
		{Category: "Health"},
		{Category: "Health"},
		{Category: "Politics"},
		{Category: "Sports"},
		{Category: "General"},
	}
	require.Equal(t, []report.CategoryCount{
		{Category: "Sports", Count: 2},
		{Category: "Health", Count: 2},
		{Category: "Politics", Count: 1},
		{Category: "General", Count: 1},
	}, report.Summarize(records))
	require.Empty(t, report.Summarize(nil))
}
