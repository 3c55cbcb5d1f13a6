package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/renewscope/pkg/db"
	"github.com/umputun/renewscope/pkg/domain"
)

// SourceRepository handles news source records
type SourceRepository struct {
	db *sqlx.DB
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(database *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: database}
}

// Add inserts a source, an existing url is left untouched. Sets ID when inserted.
func (r *SourceRepository) Add(ctx context.Context, src *domain.Source) (bool, error) {
	if src.URL == "" {
		return false, errors.New("empty source url")
	}
	var added bool
	err := withRetry(ctx, "add source", func() error {
		res, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO sources (url, name, enabled) VALUES (?, ?, ?)",
			src.URL, src.Name, src.Enabled)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if added = n > 0; !added {
			return nil
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		src.ID = id
		return nil
	})
	return added, err
}

// SeedDefaults adds enabled sources for the given urls, returns the number of new ones
func (r *SourceRepository) SeedDefaults(ctx context.Context, urls []string) (int, error) {
	added := 0
	for _, u := range urls {
		ok, err := r.Add(ctx, &domain.Source{URL: u, Enabled: true})
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// Get returns a source by id or ErrNotFound
func (r *SourceRepository) Get(ctx context.Context, id int64) (*domain.Source, error) {
	var row db.Source
	err := r.db.GetContext(ctx, &row, "SELECT * FROM sources WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return toDomainSource(&row), nil
}

// List returns all sources ordered by id
func (r *SourceRepository) List(ctx context.Context) ([]domain.Source, error) {
	return r.list(ctx, "SELECT * FROM sources ORDER BY id")
}

// ListEnabled returns sources the scheduler should check
func (r *SourceRepository) ListEnabled(ctx context.Context) ([]domain.Source, error) {
	return r.list(ctx, "SELECT * FROM sources WHERE enabled = 1 ORDER BY id")
}

func (r *SourceRepository) list(ctx context.Context, query string) ([]domain.Source, error) {
	var rows []db.Source
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	res := make([]domain.Source, len(rows))
	for i := range rows {
		res[i] = *toDomainSource(&rows[i])
	}
	return res, nil
}

// SetEnabled enables or disables a source
func (r *SourceRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return withRetry(ctx, "update source status", func() error {
		return r.execOne(ctx, id, "UPDATE sources SET enabled = ? WHERE id = ?", enabled, id)
	})
}

// Delete removes a source
func (r *SourceRepository) Delete(ctx context.Context, id int64) error {
	return withRetry(ctx, "delete source", func() error {
		return r.execOne(ctx, id, "DELETE FROM sources WHERE id = ?", id)
	})
}

// UpdateCheck records the outcome of a source check. A nil checkErr clears the last error.
func (r *SourceRepository) UpdateCheck(ctx context.Context, id int64, projectsFound int, checkErr error) error {
	lastErr := db.NullString{}
	if checkErr != nil {
		lastErr = db.NullString{String: checkErr.Error(), Valid: true}
	}
	return withRetry(ctx, "update source check", func() error {
		query := `UPDATE sources
			SET last_checked = ?, last_error = ?, projects_found = projects_found + ?
			WHERE id = ?`
		return r.execOne(ctx, id, query, time.Now().UTC(), lastErr, projectsFound, id)
	})
}

func (r *SourceRepository) execOne(ctx context.Context, id int64, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("source %d: %w", id, ErrNotFound)
	}
	return nil
}

func toDomainSource(row *db.Source) *domain.Source {
	src := &domain.Source{
		ID:            row.ID,
		URL:           row.URL,
		Name:          row.Name,
		Enabled:       row.Enabled,
		LastError:     row.LastError.String,
		ProjectsFound: row.ProjectsFound,
		CreatedAt:     row.CreatedAt,
	}
	if row.LastChecked.Valid {
		t := row.LastChecked.Time
		src.LastChecked = &t
	}
	return src
}
