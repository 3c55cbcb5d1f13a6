package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// article outcomes
const (
	OutcomeProject  = "project"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// ArticleRepository remembers processed article urls
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// Seen reports whether the url was already processed
func (r *ArticleRepository) Seen(ctx context.Context, url string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE url = ?", url); err != nil {
		return false, fmt.Errorf("check article: %w", err)
	}
	return count > 0, nil
}

// MarkSeen records the url with its outcome, replacing an earlier record
func (r *ArticleRepository) MarkSeen(ctx context.Context, url, outcome string) error {
	return withRetry(ctx, "mark article", func() error {
		query := `INSERT INTO articles (url, outcome, seen_at) VALUES (?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET outcome = excluded.outcome, seen_at = excluded.seen_at`
		_, err := r.db.ExecContext(ctx, query, url, outcome, time.Now().UTC())
		return err
	})
}

// DeleteOlderThan forgets articles seen before the cutoff, failed ones become eligible for a retry
func (r *ArticleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := withRetry(ctx, "delete old articles", func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE seen_at < ?", cutoff.UTC())
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
