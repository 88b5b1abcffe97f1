// Package batch runs the per-creator analysis pipeline over a directory of
// scraped creator exports. Creators are distributed to a bounded worker pool;
// each worker analyzes disjoint creators and the results are merged only at
// the join point, so no mutable state is shared during analysis.
package batch

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veralens/creatorscope/internal/analyzer"
	"github.com/veralens/creatorscope/internal/logger"
	"github.com/veralens/creatorscope/internal/models"
	"github.com/veralens/creatorscope/internal/storage"
)

const maxWorkers = 16

// Runner coordinates a single batch analysis run
type Runner struct {
	baseDir  string
	analyzer *analyzer.Analyzer
	store    *storage.Storage
	workers  int
}

type creatorResult struct {
	username string
	record   *models.AnalysisRecord
	skipped  bool
	err      error
}

// NewRunner creates a batch runner over baseDir. A workers value of 0 selects
// the default pool size.
func NewRunner(baseDir string, a *analyzer.Analyzer, store *storage.Storage, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Runner{
		baseDir:  baseDir,
		analyzer: a,
		store:    store,
		workers:  workers,
	}
}

// DefaultWorkers returns the default pool size: 75% of available CPUs,
// at least 1, capped at 16.
func DefaultWorkers() int {
	workers := runtime.NumCPU() * 3 / 4
	if workers < 1 {
		workers = 1
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

// Run analyzes every creator in usernames and returns the run summary.
// Missing input files skip the creator with a placeholder record; decode
// failures count as errors and the batch continues.
func (r *Runner) Run(usernames []string) (*models.RunSummary, error) {
	start := now()
	summary := &models.RunSummary{
		RunID:         uuid.New().String(),
		TotalCreators: len(usernames),
	}

	logger.Info("Starting batch run %s: %d creators, %d workers", summary.RunID, len(usernames), r.workers)

	jobs := make(chan string)
	results := make(chan creatorResult)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for username := range jobs {
				results <- r.analyzeCreator(username)
			}
		}()
	}

	go func() {
		for _, username := range usernames {
			jobs <- username
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Join point: the only place results are merged
	for result := range results {
		switch {
		case result.skipped:
			summary.Skipped++
			logger.Warn("Skipping %s: %v", result.username, result.err)
			if result.record != nil {
				if err := r.store.AddRecord(result.record); err != nil {
					logger.Error("Failed to store placeholder for %s: %v", result.username, err)
				}
			}
		case result.err != nil:
			summary.Errors++
			logger.Error("Failed to analyze %s: %v", result.username, result.err)
		default:
			summary.Successful++
			if err := r.store.AddRecord(result.record); err != nil {
				logger.Error("Failed to store record for %s: %v", result.username, err)
			}
			if err := r.store.SaveCreatorFile(r.creatorDir(result.username), result.record); err != nil {
				logger.Error("Failed to save output for %s: %v", result.username, err)
			}
		}
	}

	summary.Elapsed = now().Sub(start)
	summary.USACreators, summary.GlobalCreators = r.store.RegionCounts()
	summary.SizeDistribution = r.store.SizeDistribution()

	if err := r.store.SaveMaster(); err != nil {
		return summary, err
	}

	logger.Info("Batch run %s complete: %d ok, %d skipped, %d errors in %s",
		summary.RunID, summary.Successful, summary.Skipped, summary.Errors, summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}

func (r *Runner) analyzeCreator(username string) creatorResult {
	dir := r.creatorDir(username)

	profile, scraped, err := LoadProfile(dir, username)
	if err != nil {
		return r.inputFailure(username, err)
	}

	posts, err := LoadPosts(dir, username)
	if err != nil {
		return r.inputFailure(username, err)
	}

	record := r.analyzer.Analyze(*profile, posts)
	record.ScrapedDateTime = scraped
	record.AnalyzedDateTime = now().Format(timestampLayout)

	return creatorResult{username: username, record: &record}
}

// inputFailure classifies a load error: missing files skip the creator with a
// missing_data placeholder, anything else is a hard error.
func (r *Runner) inputFailure(username string, err error) creatorResult {
	var skip *SkipError
	if errors.As(err, &skip) {
		placeholder := &models.AnalysisRecord{
			Username:         username,
			AnalyzedDateTime: now().Format(timestampLayout),
			MissingData:      true,
		}
		return creatorResult{username: username, record: placeholder, skipped: true, err: err}
	}
	return creatorResult{username: username, err: err}
}

func (r *Runner) creatorDir(username string) string {
	return filepath.Join(r.baseDir, username)
}
