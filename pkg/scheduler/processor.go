package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/time/rate"

	"github.com/umputun/renewscope/pkg/classifier"
	"github.com/umputun/renewscope/pkg/content"
	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/repository"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// ErrNoCandidates is returned when a source yields no candidate article urls
var ErrNoCandidates = errors.New("no candidate urls")

// Fetcher harvests candidate article urls from a source page
type Fetcher interface {
	CandidateURLs(ctx context.Context, sourceURL string) []string
}

// Extractor downloads an article and returns its readable content
type Extractor interface {
	Extract(ctx context.Context, url string) (*domain.ExtractedContent, error)
}

// Classifier applies the relevance gate to article text
type Classifier interface {
	Classify(text string) classifier.Decision
}

// FieldExtractor builds a project record from accepted content
type FieldExtractor interface {
	Extract(c domain.ExtractedContent, t domain.ProjectType) domain.Project
}

// ProjectStore persists projects
type ProjectStore interface {
	AddIfAbsent(ctx context.Context, p *domain.Project) (bool, error)
}

// ArticleStore remembers processed article urls
type ArticleStore interface {
	Seen(ctx context.Context, url string) (bool, error)
	MarkSeen(ctx context.Context, url, outcome string) error
}

// RejectionStore is the diagnostic sink for rejected articles
type RejectionStore interface {
	Add(ctx context.Context, rej *domain.Rejection) error
}

// SourceResult counts what happened to the candidates of one source
type SourceResult struct {
	Candidates int `json:"candidates"`
	Skipped    int `json:"skipped"` // already processed in earlier batches
	Extracted  int `json:"extracted"`
	Accepted   int `json:"accepted"`
	Added      int `json:"added"`
	Rejected   int `json:"rejected"`
}

// ProcessorConfig holds SourceProcessor dependencies and settings
type ProcessorConfig struct {
	Fetcher        Fetcher
	Extractor      Extractor
	Classifier     Classifier
	FieldExtractor FieldExtractor
	Projects       ProjectStore
	Articles       ArticleStore
	Rejections     RejectionStore
	RateLimit      time.Duration // minimal interval between article downloads, 0 disables pacing
}

// SourceProcessor runs one source through fetch, extract, classify, field extraction and storage
type SourceProcessor struct {
	fetcher    Fetcher
	extractor  Extractor
	classifier Classifier
	fields     FieldExtractor
	projects   ProjectStore
	articles   ArticleStore
	rejections RejectionStore
	limiter    *rate.Limiter
}

// NewSourceProcessor makes a processor with the given dependencies
func NewSourceProcessor(cfg ProcessorConfig) *SourceProcessor {
	return &SourceProcessor{
		fetcher:    cfg.Fetcher,
		extractor:  cfg.Extractor,
		classifier: cfg.Classifier,
		fields:     cfg.FieldExtractor,
		projects:   cfg.Projects,
		articles:   cfg.Articles,
		rejections: cfg.Rejections,
		limiter:    newLimiter(cfg.RateLimit),
	}
}

// newLimiter allows one request per interval, unlimited for non-positive interval
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Process handles all candidates of the source sequentially. Failures of individual articles are
// logged and skipped. The returned error is ErrNoCandidates, a context error or a storage failure.
func (p *SourceProcessor) Process(ctx context.Context, src domain.Source) (SourceResult, error) {
	var res SourceResult
	urls := p.fetcher.CandidateURLs(ctx, src.URL)
	res.Candidates = len(urls)
	if len(urls) == 0 {
		return res, ErrNoCandidates
	}
	lgr.Printf("[DEBUG] %d candidates from %s", len(urls), src.URL)

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := p.processArticle(ctx, u, &res); err != nil {
			return res, err
		}
	}
	lgr.Printf("[INFO] source %s: %d candidates, %d extracted, %d accepted, %d added, %d rejected",
		src.URL, res.Candidates, res.Extracted, res.Accepted, res.Added, res.Rejected)
	return res, nil
}

// processArticle returns an error only when the batch can't continue
func (p *SourceProcessor) processArticle(ctx context.Context, url string, res *SourceResult) error {
	seen, err := p.articles.Seen(ctx, url)
	if err != nil {
		return fmt.Errorf("check article %s: %w", url, err)
	}
	if seen {
		res.Skipped++
		ArticlesTotal.WithLabelValues(outcomeSkipped).Inc()
		return nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	extracted, err := p.extractor.Extract(ctx, url)
	if err != nil {
		ArticlesTotal.WithLabelValues(outcomeFailed).Inc()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, content.ErrNoContent) {
			// network failures are retried in the next batch
			lgr.Printf("[WARN] can't extract %s: %v", url, err)
			return nil
		}
		lgr.Printf("[DEBUG] no usable content at %s: %v", url, err)
		p.reject(ctx, &domain.Rejection{URL: url, Reason: domain.RejectExtraction}, res)
		return p.markSeen(ctx, url, repository.OutcomeFailed)
	}
	res.Extracted++

	decision := p.classifier.Classify(extracted.Title + "\n" + extracted.Text)
	if !decision.Accepted {
		ArticlesTotal.WithLabelValues(outcomeRejected).Inc()
		lgr.Printf("[DEBUG] rejected %s: %s, scores %+v", url, decision.Reason, decision.Scores)
		p.reject(ctx, &domain.Rejection{
			URL:     url,
			Title:   extracted.Title,
			Snippet: domain.Snippet(extracted.Text),
			Scores:  decision.Scores,
			Reason:  decision.Reason,
		}, res)
		return p.markSeen(ctx, url, repository.OutcomeRejected)
	}
	res.Accepted++
	ArticlesTotal.WithLabelValues(outcomeAccepted).Inc()

	project := p.fields.Extract(*extracted, decision.Type)
	added, err := p.projects.AddIfAbsent(ctx, &project)
	if err != nil {
		lgr.Printf("[WARN] can't store project from %s: %v", url, err)
		return nil
	}
	if added {
		res.Added++
		ProjectsAdded.WithLabelValues(string(project.Type)).Inc()
		lgr.Printf("[INFO] new %s project %q by %s from %s", project.Type, project.Name, project.Company, url)
	}
	return p.markSeen(ctx, url, repository.OutcomeProject)
}

func (p *SourceProcessor) reject(ctx context.Context, rej *domain.Rejection, res *SourceResult) {
	res.Rejected++
	RejectionsTotal.WithLabelValues(string(rej.Reason)).Inc()
	if err := p.rejections.Add(ctx, rej); err != nil {
		lgr.Printf("[WARN] can't record rejection of %s: %v", rej.URL, err)
	}
}

func (p *SourceProcessor) markSeen(ctx context.Context, url, outcome string) error {
	if err := p.articles.MarkSeen(ctx, url, outcome); err != nil {
		return fmt.Errorf("mark article %s: %w", url, err)
	}
	return nil
}
