package batch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/DeafMist/news-tagger/internal/analyzer"
	"github.com/DeafMist/news-tagger/internal/corpus"
	"github.com/DeafMist/news-tagger/internal/models"
)

// DefaultWorkers is used when Runner.Workers is not positive.
const DefaultWorkers = 4

// ReadFunc loads one corpus file.
type ReadFunc func(path string) (string, error)

// Runner analyzes corpus files concurrently.
type Runner struct {
	// Analyzer defaults to one built on the built-in taxonomy.
	Analyzer *analyzer.Analyzer
	Workers  int
	Log      *slog.Logger
	// Read defaults to corpus.ReadTextFile.
	Read ReadFunc
}

type job struct {
	idx  int
	path string
}

type result struct {
	idx    int
	record models.Analysis
	ok     bool
}

// Run analyzes paths and returns one record per readable file, in input
// order. Unreadable files are logged and skipped. Files not yet started when
// ctx is cancelled are dropped.
func (r *Runner) Run(ctx context.Context, paths []string) []models.Analysis {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	read := r.Read
	if read == nil {
		read = corpus.ReadTextFile
	}
	an := r.Analyzer
	if an == nil {
		an = analyzer.New(nil)
	}
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan job)
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range jobs {
				text, err := read(j.path)
				if err != nil {
					log.Error("failed to read article", "worker_id", id, "path", j.path, "error", err)
					results <- result{idx: j.idx}
					continue
				}
				results <- result{
					idx:    j.idx,
					record: an.Analyze(filepath.Base(j.path), text),
					ok:     true,
				}
			}
		}(w)
	}

feed:
	for i, p := range paths {
		if ctx.Err() != nil {
			log.Warn("batch cancelled", "submitted", i, "total", len(paths))
			break
		}
		select {
		case <-ctx.Done():
			log.Warn("batch cancelled", "submitted", i, "total", len(paths))
			break feed
		case jobs <- job{idx: i, path: p}:
		}
	}
	close(jobs)

	wg.Wait()
	close(results)

	ordered := make([]*models.Analysis, len(paths))
	for res := range results {
		if res.ok {
			rec := res.record
			ordered[res.idx] = &rec
		}
	}

	out := make([]models.Analysis, 0, len(paths))
	for _, rec := range ordered {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}
