package server

import (
	"context"
	"fmt"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// ListProjects returns projects matching the filter
func (r *RepositoryAdapter) ListProjects(ctx context.Context, f repository.ProjectFilter) ([]domain.Project, error) {
	return r.repos.Project.List(ctx, f)
}

// GetProject returns a project by id
func (r *RepositoryAdapter) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return r.repos.Project.GetByID(ctx, id)
}

// DeleteProject removes a project by id
func (r *RepositoryAdapter) DeleteProject(ctx context.Context, id int64) error {
	return r.repos.Project.Delete(ctx, id)
}

// CountProjects returns number of projects per type
func (r *RepositoryAdapter) CountProjects(ctx context.Context) (map[domain.ProjectType]int, error) {
	return r.repos.Project.CountByType(ctx)
}

// ImportProjects stores projects that are not in the registry yet and returns how many were added.
// Invalid rows are skipped, storage errors stop the import.
func (r *RepositoryAdapter) ImportProjects(ctx context.Context, projects []domain.Project) (int, error) {
	added := 0
	for i := range projects {
		p := projects[i]
		if err := p.Validate(); err != nil {
			continue
		}
		ok, err := r.repos.Project.AddIfAbsent(ctx, &p)
		if err != nil {
			return added, fmt.Errorf("import project %q: %w", p.Name, err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// ListSources returns all sources
func (r *RepositoryAdapter) ListSources(ctx context.Context) ([]domain.Source, error) {
	return r.repos.Source.List(ctx)
}

// AddSource registers a source, false if the url is already known
func (r *RepositoryAdapter) AddSource(ctx context.Context, src *domain.Source) (bool, error) {
	return r.repos.Source.Add(ctx, src)
}

// SetSourceEnabled toggles a source
func (r *RepositoryAdapter) SetSourceEnabled(ctx context.Context, id int64, enabled bool) error {
	return r.repos.Source.SetEnabled(ctx, id, enabled)
}

// DeleteSource removes a source
func (r *RepositoryAdapter) DeleteSource(ctx context.Context, id int64) error {
	return r.repos.Source.Delete(ctx, id)
}

// ListRejections returns newest rejections, limit <= 0 means all
func (r *RepositoryAdapter) ListRejections(ctx context.Context, limit int) ([]domain.Rejection, error) {
	return r.repos.Rejection.List(ctx, limit)
}

// GetRejection returns a rejection by id
func (r *RepositoryAdapter) GetRejection(ctx context.Context, id int64) (*domain.Rejection, error) {
	return r.repos.Rejection.Get(ctx, id)
}

// SetRejectionReview stores a review verdict on the rejection
func (r *RepositoryAdapter) SetRejectionReview(ctx context.Context, id int64, review string) error {
	return r.repos.Rejection.SetReview(ctx, id, review)
}

// RejectionStats returns rejection counts by reason and category
func (r *RepositoryAdapter) RejectionStats(ctx context.Context) (domain.RejectionStats, error) {
	return r.repos.Rejection.Stats(ctx)
}
