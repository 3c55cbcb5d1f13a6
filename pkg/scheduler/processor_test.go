package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/renewscope/pkg/classifier"
	"github.com/umputun/renewscope/pkg/content"
	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/fields"
	"github.com/umputun/renewscope/pkg/repository"
	"github.com/umputun/renewscope/pkg/scheduler/mocks"
)

const (
	acceptedText = "Adani Green Energy announced a 5 GW solar manufacturing facility in Gujarat with an " +
		"investment of $2 billion, expected to be completed by 2026"
	coalText = "Coal India reported higher quarterly thermal output, no renewable investments announced"
)

func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func newTestProcessor(repos *repository.Repositories, fetcher Fetcher, extractor Extractor) *SourceProcessor {
	return NewSourceProcessor(ProcessorConfig{
		Fetcher:        fetcher,
		Extractor:      extractor,
		Classifier:     classifier.New(classifier.DefaultParams(), nil),
		FieldExtractor: fields.New(fields.DefaultUSDINR),
		Projects:       repos.Project,
		Articles:       repos.Article,
		Rejections:     repos.Rejection,
	})
}

func TestSourceProcessor_Process(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	fetcher := &mocks.FetcherMock{
		CandidateURLsFunc: func(ctx context.Context, sourceURL string) []string {
			return []string{
				"https://example.com/news/adani-solar",
				"https://example.com/news/coal-output",
				"https://example.com/news/empty-page",
				"https://example.com/news/timeout",
			}
		},
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, url string) (*domain.ExtractedContent, error) {
			switch url {
			case "https://example.com/news/adani-solar":
				return &domain.ExtractedContent{URL: url, Title: "Adani unveils solar plan", Text: acceptedText}, nil
			case "https://example.com/news/coal-output":
				return &domain.ExtractedContent{URL: url, Title: "Coal output rises", Text: coalText}, nil
			case "https://example.com/news/empty-page":
				return nil, fmt.Errorf("extract %s: %w", url, content.ErrNoContent)
			default:
				return nil, errors.New("connection reset")
			}
		},
	}

	proc := newTestProcessor(repos, fetcher, extractor)
	res, err := proc.Process(ctx, domain.Source{ID: 1, URL: "https://example.com/news"})
	require.NoError(t, err)
	assert.Equal(t, SourceResult{Candidates: 4, Extracted: 2, Accepted: 1, Added: 1, Rejected: 2}, res)

	projects, err := repos.Project.List(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.TypeSolar, projects[0].Type)
	assert.Equal(t, "https://example.com/news/adani-solar", projects[0].Source)

	rejections, err := repos.Rejection.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rejections, 2)
	reasons := []domain.RejectReason{rejections[0].Reason, rejections[1].Reason}
	assert.ElementsMatch(t, []domain.RejectReason{domain.RejectCategory, domain.RejectExtraction}, reasons)

	for url, want := range map[string]bool{
		"https://example.com/news/adani-solar": true,
		"https://example.com/news/coal-output": true,
		"https://example.com/news/empty-page":  true,
		"https://example.com/news/timeout":     false,
	} {
		seen, err := repos.Article.Seen(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, want, seen, url)
	}

	t.Run("second pass skips processed urls", func(t *testing.T) {
		res, err := proc.Process(ctx, domain.Source{ID: 1, URL: "https://example.com/news"})
		require.NoError(t, err)
		assert.Equal(t, SourceResult{Candidates: 4, Skipped: 3}, res)
		assert.Len(t, extractor.ExtractCalls(), 5, "only the failed download is retried")
	})
}

func TestSourceProcessor_DeadLinks(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/news/missing":
			http.NotFound(w, r)
		case "/news/report.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer ts.Close()

	fetcher := &mocks.FetcherMock{
		CandidateURLsFunc: func(ctx context.Context, sourceURL string) []string {
			return []string{ts.URL + "/news/missing", ts.URL + "/news/report.pdf", ts.URL + "/news/busy"}
		},
	}
	extractor := content.NewHTTPExtractor(content.Options{Timeout: 5 * time.Second})

	res, err := newTestProcessor(repos, fetcher, extractor).Process(ctx, domain.Source{URL: ts.URL + "/news"})
	require.NoError(t, err)
	assert.Equal(t, SourceResult{Candidates: 3, Rejected: 2}, res)

	tests := []struct {
		path    string
		outcome string
	}{
		{path: "/news/missing", outcome: repository.OutcomeFailed},
		{path: "/news/report.pdf", outcome: repository.OutcomeFailed},
		{path: "/news/busy", outcome: ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var outcome string
			err := repos.DB.GetContext(ctx, &outcome, "SELECT outcome FROM articles WHERE url = ?", ts.URL+tt.path)
			if tt.outcome == "" {
				require.ErrorIs(t, err, sql.ErrNoRows, "server errors are retried in the next batch")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
		})
	}

	rejections, err := repos.Rejection.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rejections, 2)
	for _, r := range rejections {
		assert.Equal(t, domain.RejectExtraction, r.Reason)
	}
}

func TestSourceProcessor_DuplicateProject(t *testing.T) {
	repos := setupRepos(t)
	fetcher := &mocks.FetcherMock{
		CandidateURLsFunc: func(ctx context.Context, sourceURL string) []string {
			return []string{"https://example.com/a", "https://example.com/a"}
		},
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, url string) (*domain.ExtractedContent, error) {
			return &domain.ExtractedContent{URL: url, Title: "Adani unveils solar plan", Text: acceptedText}, nil
		},
	}

	res, err := newTestProcessor(repos, fetcher, extractor).Process(context.Background(), domain.Source{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)

	count, err := repos.Project.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSourceProcessor_NoCandidates(t *testing.T) {
	repos := setupRepos(t)
	fetcher := &mocks.FetcherMock{
		CandidateURLsFunc: func(ctx context.Context, sourceURL string) []string { return nil },
	}
	extractor := &mocks.ExtractorMock{}

	res, err := newTestProcessor(repos, fetcher, extractor).Process(context.Background(), domain.Source{URL: "https://example.com"})
	require.ErrorIs(t, err, ErrNoCandidates)
	assert.Equal(t, SourceResult{}, res)
	assert.Empty(t, extractor.ExtractCalls())
}

func TestSourceProcessor_Canceled(t *testing.T) {
	repos := setupRepos(t)
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &mocks.FetcherMock{
		CandidateURLsFunc: func(ctx context.Context, sourceURL string) []string {
			return []string{"https://example.com/a", "https://example.com/b"}
		},
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, url string) (*domain.ExtractedContent, error) {
			cancel()
			return nil, ctx.Err()
		},
	}

	_, err := newTestProcessor(repos, fetcher, extractor).Process(ctx, domain.Source{URL: "https://example.com"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, extractor.ExtractCalls(), 1)
}

func TestSourceProcessor_RateLimit(t *testing.T) {
	repos := setupRepos(t)
	fetcher := &mocks.FetcherMock{
		CandidateURLsFunc: func(ctx context.Context, sourceURL string) []string {
			return []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
		},
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, url string) (*domain.ExtractedContent, error) {
			return &domain.ExtractedContent{URL: url, Title: "weather", Text: "The weather was pleasant"}, nil
		},
	}
	proc := newTestProcessor(repos, fetcher, extractor)
	proc.limiter = newLimiter(50 * time.Millisecond)

	st := time.Now()
	res, err := proc.Process(context.Background(), domain.Source{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rejected)
	assert.GreaterOrEqual(t, time.Since(st), 100*time.Millisecond)
}
