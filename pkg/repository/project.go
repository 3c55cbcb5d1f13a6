package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/renewscope/pkg/db"
	"github.com/umputun/renewscope/pkg/domain"
)

// ProjectFilter narrows project listing, zero values mean no filter
type ProjectFilter struct {
	Type   domain.ProjectType
	State  string
	Status string
	Query  string // substring of name, company or location
	Limit  int
	Offset int
}

// ProjectRepository handles project persistence
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// AddIfAbsent inserts the project unless one with the same source url, or the same name and company
// (case-insensitive), already exists. Reports whether the project was inserted and sets its ID.
func (r *ProjectRepository) AddIfAbsent(ctx context.Context, p *domain.Project) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, fmt.Errorf("invalid project: %w", err)
	}
	row := toProjectRow(p)
	now := time.Now().UTC()
	if row.LastUpdated.IsZero() {
		row.LastUpdated = now
	}
	row.CreatedAt = now

	var added bool
	err := withRetry(ctx, "add project", func() error {
		added = false
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		exists, err := r.exists(ctx, tx, p)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		query := `INSERT INTO projects (type, name, company, ownership, pli, state, location, announcement_date,
				category, input, output, capacity_kind, capacity_value, feedstock_type, status, land_acquisition,
				power_approval, environment_clearance, almm_listing, investment_usd, investment_inr,
				expected_completion, source, last_updated, created_at)
			VALUES (:type, :name, :company, :ownership, :pli, :state, :location, :announcement_date,
				:category, :input, :output, :capacity_kind, :capacity_value, :feedstock_type, :status, :land_acquisition,
				:power_approval, :environment_clearance, :almm_listing, :investment_usd, :investment_inr,
				:expected_completion, :source, :last_updated, :created_at)`
		res, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		p.ID = id
		p.CreatedAt = row.CreatedAt
		p.LastUpdated = row.LastUpdated
		added = true
		return nil
	})
	return added, err
}

// exists checks source url first, then name with company. Placeholder names are matched by source only.
func (r *ProjectRepository) exists(ctx context.Context, tx *sqlx.Tx, p *domain.Project) (bool, error) {
	var count int
	if p.Source != "" {
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM projects WHERE source = ?", p.Source); err != nil {
			return false, fmt.Errorf("check source: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	if p.Name == "" || p.Name == domain.UnnamedProject {
		return false, nil
	}
	err := tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM projects WHERE lower(name) = lower(?) AND lower(company) = lower(?)", p.Name, p.Company)
	if err != nil {
		return false, fmt.Errorf("check name: %w", err)
	}
	return count > 0, nil
}

// GetByID returns a project or ErrNotFound
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var row db.Project
	err := r.db.GetContext(ctx, &row, "SELECT * FROM projects WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return toDomainProject(&row), nil
}

// List returns projects matching the filter, newest first
func (r *ProjectRepository) List(ctx context.Context, f ProjectFilter) ([]domain.Project, error) {
	q := sq.Select("*").From("projects").OrderBy("id DESC")
	if f.Type != "" {
		q = q.Where(sq.Eq{"type": string(f.Type)})
	}
	if f.State != "" {
		q = q.Where("lower(state) = lower(?)", f.State)
	}
	if f.Status != "" {
		q = q.Where("lower(status) = lower(?)", f.Status)
	}
	if f.Query != "" {
		like := "%" + escapeLike(strings.ToLower(f.Query)) + "%"
		q = q.Where(sq.Or{
			sq.Expr(`lower(name) LIKE ? ESCAPE '\'`, like),
			sq.Expr(`lower(company) LIKE ? ESCAPE '\'`, like),
			sq.Expr(`lower(location) LIKE ? ESCAPE '\'`, like),
		})
	}
	switch {
	case f.Limit > 0:
		q = q.Limit(uint64(f.Limit))
	case f.Offset > 0:
		q = q.Limit(math.MaxInt64) // sqlite needs LIMIT with OFFSET
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project query: %w", err)
	}
	var rows []db.Project
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	res := make([]domain.Project, len(rows))
	for i := range rows {
		res[i] = *toDomainProject(&rows[i])
	}
	return res, nil
}

// Count returns the number of stored projects
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM projects"); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

// CountByType returns the number of projects per type
func (r *ProjectRepository) CountByType(ctx context.Context) (map[domain.ProjectType]int, error) {
	var rows []db.ReasonCount
	if err := r.db.SelectContext(ctx, &rows, "SELECT type AS key, COUNT(*) AS cnt FROM projects GROUP BY type"); err != nil {
		return nil, fmt.Errorf("count projects by type: %w", err)
	}
	res := make(map[domain.ProjectType]int, len(rows))
	for _, row := range rows {
		res[domain.ProjectType(row.Key)] = row.Count
	}
	return res, nil
}

// Delete removes a project, ErrNotFound if it does not exist
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return withRetry(ctx, "delete project", func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func toProjectRow(p *domain.Project) *db.Project {
	return &db.Project{
		ID:                   p.ID,
		Type:                 string(p.Type),
		Name:                 p.Name,
		Company:              p.Company,
		Ownership:            p.Ownership,
		PLI:                  p.PLI,
		State:                p.State,
		Location:             p.Location,
		AnnouncementDate:     p.AnnouncementDate,
		Category:             string(p.Category),
		Input:                p.Input,
		Output:               p.Output,
		CapacityKind:         string(p.Capacity.Kind),
		CapacityValue:        p.Capacity.Value,
		FeedstockType:        p.FeedstockType,
		Status:               p.Status,
		LandAcquisition:      p.LandAcquisition,
		PowerApproval:        p.PowerApproval,
		EnvironmentClearance: p.EnvironmentClearance,
		ALMMListing:          p.ALMMListing,
		InvestmentUSD:        p.InvestmentUSD,
		InvestmentINR:        p.InvestmentINR,
		ExpectedCompletion:   p.ExpectedCompletion,
		Source:               p.Source,
		LastUpdated:          p.LastUpdated,
		CreatedAt:            p.CreatedAt,
	}
}

func toDomainProject(row *db.Project) *domain.Project {
	return &domain.Project{
		ID:                   row.ID,
		Type:                 domain.ProjectType(row.Type),
		Name:                 row.Name,
		Company:              row.Company,
		Ownership:            row.Ownership,
		PLI:                  row.PLI,
		State:                row.State,
		Location:             row.Location,
		AnnouncementDate:     row.AnnouncementDate,
		Category:             domain.Category(row.Category),
		Input:                row.Input,
		Output:               row.Output,
		Capacity:             domain.Capacity{Kind: domain.CapacityKind(row.CapacityKind), Value: row.CapacityValue},
		FeedstockType:        row.FeedstockType,
		Status:               row.Status,
		LandAcquisition:      row.LandAcquisition,
		PowerApproval:        row.PowerApproval,
		EnvironmentClearance: row.EnvironmentClearance,
		ALMMListing:          row.ALMMListing,
		InvestmentUSD:        row.InvestmentUSD,
		InvestmentINR:        row.InvestmentINR,
		ExpectedCompletion:   row.ExpectedCompletion,
		Source:               row.Source,
		LastUpdated:          row.LastUpdated,
		CreatedAt:            row.CreatedAt,
	}
}
