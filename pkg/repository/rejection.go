package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/renewscope/pkg/db"
	"github.com/umputun/renewscope/pkg/domain"
)

// RejectionRepository stores diagnostic records of articles the gate did not accept
type RejectionRepository struct {
	db *sqlx.DB
}

// NewRejectionRepository creates a new rejection repository
func NewRejectionRepository(database *sqlx.DB) *RejectionRepository {
	return &RejectionRepository{db: database}
}

// Add stores a rejection, the snippet is truncated to domain.MaxSnippetLength
func (r *RejectionRepository) Add(ctx context.Context, rej *domain.Rejection) error {
	cats := rej.Scores.Categories
	if cats == nil {
		cats = map[domain.ProjectType]float64{}
	}
	catsJSON, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	best, _ := rej.Scores.Best()
	row := &db.Rejection{
		URL:           rej.URL,
		Title:         rej.Title,
		Snippet:       domain.Snippet(rej.Snippet),
		CountryScore:  rej.Scores.Country,
		Categories:    string(catsJSON),
		BestType:      string(best),
		PipelineScore: rej.Scores.Pipeline,
		Completed:     rej.Scores.Completed,
		Reason:        string(rej.Reason),
		CreatedAt:     time.Now().UTC(),
	}

	return withRetry(ctx, "add rejection", func() error {
		query := `INSERT INTO rejections (url, title, snippet, country_score, categories, best_type,
				pipeline_score, completed, reason, created_at)
			VALUES (:url, :title, :snippet, :country_score, :categories, :best_type,
				:pipeline_score, :completed, :reason, :created_at)`
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		rej.ID = id
		rej.CreatedAt = row.CreatedAt
		rej.Snippet = row.Snippet
		return nil
	})
}

// List returns the latest rejections, all of them if limit is not positive
func (r *RejectionRepository) List(ctx context.Context, limit int) ([]domain.Rejection, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []db.Rejection
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM rejections ORDER BY id DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("list rejections: %w", err)
	}
	res := make([]domain.Rejection, 0, len(rows))
	for i := range rows {
		rej, err := toDomainRejection(&rows[i])
		if err != nil {
			return nil, err
		}
		res = append(res, *rej)
	}
	return res, nil
}

// Get returns a rejection by id or ErrNotFound
func (r *RejectionRepository) Get(ctx context.Context, id int64) (*domain.Rejection, error) {
	var row db.Rejection
	err := r.db.GetContext(ctx, &row, "SELECT * FROM rejections WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rejection %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rejection: %w", err)
	}
	return toDomainRejection(&row)
}

// SetReview stores a reviewer verdict on the rejection
func (r *RejectionRepository) SetReview(ctx context.Context, id int64, review string) error {
	return withRetry(ctx, "set rejection review", func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE rejections SET review = ? WHERE id = ?", review, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("rejection %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// Stats counts rejections per reason and per best scoring category
func (r *RejectionRepository) Stats(ctx context.Context) (domain.RejectionStats, error) {
	stats := domain.RejectionStats{
		ByReason:      map[domain.RejectReason]int{},
		TopCategories: map[domain.ProjectType]int{},
	}

	var reasons []db.ReasonCount
	if err := r.db.SelectContext(ctx, &reasons,
		"SELECT reason AS key, COUNT(*) AS cnt FROM rejections GROUP BY reason"); err != nil {
		return stats, fmt.Errorf("count rejection reasons: %w", err)
	}
	for _, rc := range reasons {
		stats.ByReason[domain.RejectReason(rc.Key)] = rc.Count
		stats.Total += rc.Count
	}

	var cats []db.ReasonCount
	if err := r.db.SelectContext(ctx, &cats,
		"SELECT best_type AS key, COUNT(*) AS cnt FROM rejections WHERE best_type != '' GROUP BY best_type"); err != nil {
		return stats, fmt.Errorf("count rejection categories: %w", err)
	}
	for _, rc := range cats {
		stats.TopCategories[domain.ProjectType(rc.Key)] = rc.Count
	}
	return stats, nil
}

func toDomainRejection(row *db.Rejection) (*domain.Rejection, error) {
	cats := map[domain.ProjectType]float64{}
	if row.Categories != "" {
		if err := json.Unmarshal([]byte(row.Categories), &cats); err != nil {
			return nil, fmt.Errorf("unmarshal categories of rejection %d: %w", row.ID, err)
		}
	}
	return &domain.Rejection{
		ID:      row.ID,
		URL:     row.URL,
		Title:   row.Title,
		Snippet: row.Snippet,
		Scores: domain.Scores{
			Country:    row.CountryScore,
			Categories: cats,
			Pipeline:   row.PipelineScore,
			Completed:  row.Completed,
		},
		Reason:    domain.RejectReason(row.Reason),
		Review:    row.Review.String,
		CreatedAt: row.CreatedAt,
	}, nil
}
