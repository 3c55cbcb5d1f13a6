// Package scheduler runs batches over the enabled news sources. A batch visits sources one by one,
// each through SourceProcessor, and keeps a progress snapshot readable while it runs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/renewscope/pkg/domain"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore

// ErrRunning is returned by RunNow when a batch is already in progress
var ErrRunning = errors.New("batch already running")

// SourceStore provides enabled sources and records check outcomes
type SourceStore interface {
	ListEnabled(ctx context.Context) ([]domain.Source, error)
	UpdateCheck(ctx context.Context, id int64, projectsFound int, checkErr error) error
}

// Processor handles a single source
type Processor interface {
	Process(ctx context.Context, src domain.Source) (SourceResult, error)
}

// ArticlePruner forgets old processed article urls
type ArticlePruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config holds scheduler configuration
type Config struct {
	UpdateInterval         time.Duration
	SourceDelay            time.Duration
	MaxRuntime             time.Duration
	MaxConsecutiveFailures int
	RunOnStart             bool
	ArticleRetention       time.Duration // 0 keeps processed urls forever
}

// Scheduler runs batches on demand and periodically. Only one batch runs at a time.
type Scheduler struct {
	sources   SourceStore
	processor Processor
	pruner    ArticlePruner
	cfg       Config

	mu       sync.RWMutex // guards progress
	progress domain.Progress

	ctx    context.Context // lifetime of the scheduler, canceled by Stop
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new scheduler instance, pruner may be nil
func NewScheduler(sources SourceStore, processor Processor, pruner ArticlePruner, cfg Config) *Scheduler {
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = 6 * time.Hour
	}
	if cfg.SourceDelay < 0 {
		cfg.SourceDelay = 0
	}
	if cfg.MaxRuntime <= 0 {
		cfg.MaxRuntime = 10 * time.Minute
	}
	if cfg.MaxConsecutiveFailures <= 0 {
		cfg.MaxConsecutiveFailures = 5
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{sources: sources, processor: processor, pruner: pruner, cfg: cfg, ctx: ctx, cancel: cancel}
}

// Run triggers periodic batches until ctx is done. The first batch starts after UpdateInterval,
// or right away with RunOnStart.
func (s *Scheduler) Run(ctx context.Context) {
	lgr.Printf("[INFO] scheduler started with update interval %v", s.cfg.UpdateInterval)
	if s.cfg.RunOnStart {
		s.trigger(ctx)
	}

	ticker := time.NewTicker(s.cfg.UpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if err := s.RunNow(ctx); err != nil {
		lgr.Printf("[INFO] periodic batch skipped: %v", err)
	}
}

// RunNow starts a batch in background and returns immediately, ErrRunning if one is in progress.
// The batch outlives ctx cancellation, it stops on Stop or after MaxRuntime.
func (s *Scheduler) RunNow(ctx context.Context) error {
	runID, ok := s.begin()
	if !ok {
		return ErrRunning
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		bctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(s.ctx, cancel)
		defer stop()
		_ = s.batch(bctx, runID)
	}()
	return nil
}

// RunBatch runs a batch synchronously and returns its final progress
func (s *Scheduler) RunBatch(ctx context.Context) (domain.Progress, error) {
	runID, ok := s.begin()
	if !ok {
		return s.Progress(), ErrRunning
	}
	err := s.batch(ctx, runID)
	return s.Progress(), err
}

// Progress returns a snapshot of the current or last batch
func (s *Scheduler) Progress() domain.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := s.progress
	if res.InProgress {
		res.Elapsed = time.Since(res.StartedAt)
	}
	return res
}

// Stop cancels a running batch and waits for it to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.cancel()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// begin resets progress for a new batch, false if a batch is running
func (s *Scheduler) begin() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress.InProgress {
		return "", false
	}
	s.progress = domain.Progress{RunID: uuid.NewString(), InProgress: true, StartedAt: time.Now()}
	return s.progress.RunID, true
}

func (s *Scheduler) update(fn func(p *domain.Progress)) {
	s.mu.Lock()
	fn(&s.progress)
	s.mu.Unlock()
}

// batch visits all enabled sources. Returns the error the batch finished with, partial counts are kept.
func (s *Scheduler) batch(ctx context.Context, runID string) (err error) {
	lgr.Printf("[INFO] batch %s started", runID)
	defer func() { s.finish(runID, err) }()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.MaxRuntime)
	defer cancel()

	sources, err := s.sources.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}
	s.update(func(p *domain.Progress) { p.Total = len(sources) })

	failures := 0
	for i, src := range sources {
		if i > 0 && s.cfg.SourceDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.cfg.SourceDelay):
			}
		}
		if ctx.Err() != nil {
			break
		}

		s.update(func(p *domain.Progress) { p.CurrentSource = src.URL })
		res, procErr := s.processor.Process(ctx, src)
		s.update(func(p *domain.Progress) {
			p.Processed++
			p.ProjectsAdded += res.Added
		})
		if ctx.Err() != nil {
			break
		}

		// bookkeeping survives batch cancellation
		if err := s.sources.UpdateCheck(context.WithoutCancel(ctx), src.ID, res.Added, procErr); err != nil {
			lgr.Printf("[WARN] can't update source %s: %v", src.URL, err)
		}

		if procErr == nil {
			failures = 0
			continue
		}
		failures++
		lgr.Printf("[WARN] source %s failed (%d in a row): %v", src.URL, failures, procErr)
		if failures >= s.cfg.MaxConsecutiveFailures {
			return fmt.Errorf("stopped after %d consecutive failures: %w", failures, procErr)
		}
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.New("timeout")
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return nil
}

func (s *Scheduler) finish(runID string, err error) {
	var added int
	var elapsed time.Duration
	s.update(func(p *domain.Progress) {
		p.InProgress = false
		p.Completed = true
		p.CurrentSource = ""
		p.Elapsed = time.Since(p.StartedAt)
		if err != nil {
			p.Error = err.Error()
		}
		added, elapsed = p.ProjectsAdded, p.Elapsed
	})

	BatchDuration.Set(elapsed.Seconds())
	if err != nil {
		BatchRuns.WithLabelValues("failed").Inc()
		lgr.Printf("[WARN] batch %s finished with error after %v: %v, %d projects added", runID, elapsed, err, added)
	} else {
		BatchRuns.WithLabelValues("ok").Inc()
		lgr.Printf("[INFO] batch %s completed in %v, %d projects added", runID, elapsed, added)
	}

	if s.pruner != nil && s.cfg.ArticleRetention > 0 {
		n, err := s.pruner.DeleteOlderThan(s.ctx, time.Now().Add(-s.cfg.ArticleRetention))
		if err != nil {
			lgr.Printf("[WARN] can't prune processed articles: %v", err)
		} else if n > 0 {
			lgr.Printf("[DEBUG] pruned %d processed articles", n)
		}
	}
}
