// Package walkjob parallelizes the per-file work of a directory-wide symbol
// search: each file is read once, parsed into outline entries, and handed to
// the caller's classifier. Spec.md §5 permits parallel file-level parses as
// long as the outline cache is safe for concurrent read/insert; this is
// where that permission is exercised. Parser instances themselves are still
// never pooled — outline.Entries constructs and discards one per call, per
// the resource model — only the goroutines driving those calls are pooled.
package walkjob

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/tilth-dev/tilth/pkg/outline"
	"github.com/tilth-dev/tilth/pkg/sourcecache"
	"github.com/tilth-dev/tilth/pkg/tilthtypes"
	"github.com/tilth-dev/tilth/pkg/util"
)

// FileJob is a single file queued for parsing.
type FileJob struct {
	Path string
	Lang tilthtypes.Lang
}

// FileResult is the outcome of parsing one file: either entries and source
// text, or an error wrapped with the offending path.
type FileResult struct {
	Path     string
	Lang     tilthtypes.Lang
	Source   string
	Entries  []tilthtypes.OutlineEntry
	FlatDefs []tilthtypes.OutlineEntry
	Err      error
}

// Pool runs a bounded number of worker goroutines that read and parse files
// concurrently, using a shared Cache so the same file is never re-read.
type Pool struct {
	numWorkers int
	cache      *sourcecache.Cache
	logger     *slog.Logger

	jobs    chan FileJob
	results chan FileResult
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a pool sized to numWorkers, or util.GetOptimalPoolSize()
// when numWorkers is 0 (GetOptimalPoolSizeWithOverride treats any
// non-positive numWorkers as "no override"). cache is used to fetch each
// file's source exactly once even if the same path is ever submitted twice.
func NewPool(numWorkers int, cache *sourcecache.Cache, logger *slog.Logger) *Pool {
	numWorkers = util.GetOptimalPoolSizeWithOverride(numWorkers)
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		numWorkers: numWorkers,
		cache:      cache,
		logger:     logger,
		jobs:       make(chan FileJob, numWorkers*2),
		results:    make(chan FileResult, numWorkers*2),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the worker goroutines. Must be called before Submit.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.results <- p.process(job)
		}
	}
}

func (p *Pool) process(job FileJob) FileResult {
	source, err := p.cache.Get(job.Path)
	if err != nil {
		return FileResult{Path: job.Path, Lang: job.Lang, Err: fmt.Errorf("walkjob: read %q: %w", job.Path, err)}
	}

	entries, flatDefs, ok := outline.Entries(source, job.Lang, job.Path)
	if !ok {
		// Fallback-only language, or a parse failure: not an error, just
		// no structured entries to classify against.
		return FileResult{Path: job.Path, Lang: job.Lang, Source: source}
	}
	return FileResult{Path: job.Path, Lang: job.Lang, Source: source, Entries: entries, FlatDefs: flatDefs}
}

// Submit enqueues a job. Blocks if the queue is full.
func (p *Pool) Submit(job FileJob) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Results returns the channel workers publish completed jobs to.
func (p *Pool) Results() <-chan FileResult {
	return p.results
}

// FinishSubmitting closes the jobs channel; call once all Submit calls are
// done, before draining Results.
func (p *Pool) FinishSubmitting() {
	close(p.jobs)
}

// Wait blocks until every worker has exited, then closes the results
// channel so a range over Results() terminates.
func (p *Pool) Wait() {
	p.wg.Wait()
	close(p.results)
}

// Stop cancels any in-flight work early.
func (p *Pool) Stop() {
	p.cancel()
}

// Run is the common case: submit every path, close, and collect every
// result into a slice, in the order of paths, once all workers finish.
func Run(paths []string, langOf func(string) tilthtypes.Lang, cache *sourcecache.Cache, numWorkers int, logger *slog.Logger) []FileResult {
	pool := NewPool(numWorkers, cache, logger)
	pool.Start()

	go func() {
		for _, p := range paths {
			pool.Submit(FileJob{Path: p, Lang: langOf(p)})
		}
		pool.FinishSubmitting()
	}()

	go pool.Wait()

	results := make([]FileResult, 0, len(paths))
	for r := range pool.Results() {
		results = append(results, r)
	}

	// Workers finish in any order; put results back in the order of paths.
	order := make(map[string]int, len(paths))
	for i, p := range paths {
		order[p] = i
	}
	sort.SliceStable(results, func(i, j int) bool { return order[results[i].Path] < order[results[j].Path] })
	return results
}
