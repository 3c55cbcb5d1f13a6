package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/repository"
)

func setupAdapter(t *testing.T) *RepositoryAdapter {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return NewRepositoryAdapter(repos)
}

func TestRepositoryAdapter_Projects(t *testing.T) {
	ctx := context.Background()
	adapter := setupAdapter(t)

	bad := testProject(4, domain.TypeSolar, "Broken Capacity Solar Park")
	bad.Capacity.Kind = domain.KindElectrolyzer
	added, err := adapter.ImportProjects(ctx, []domain.Project{
		testProject(1, domain.TypeSolar, "Khavda Solar Park"),
		testProject(2, domain.TypeWind, "Bhuj Wind Farm"),
		testProject(3, domain.TypeSolar, "Khavda Solar Park"), // same name and company
		bad,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	counts, err := adapter.CountProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.ProjectType]int{domain.TypeSolar: 1, domain.TypeWind: 1}, counts)

	wind, err := adapter.ListProjects(ctx, repository.ProjectFilter{Type: domain.TypeWind})
	require.NoError(t, err)
	require.Len(t, wind, 1)
	assert.Equal(t, "Bhuj Wind Farm", wind[0].Name)

	got, err := adapter.GetProject(ctx, wind[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Adani Green Energy", got.Company)

	require.NoError(t, adapter.DeleteProject(ctx, wind[0].ID))
	_, err = adapter.GetProject(ctx, wind[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepositoryAdapter_Sources(t *testing.T) {
	ctx := context.Background()
	adapter := setupAdapter(t)

	src := &domain.Source{URL: "https://mercomindia.com/feed", Name: "Mercom", Enabled: true}
	ok, err := adapter.AddSource(ctx, src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotZero(t, src.ID)

	ok, err = adapter.AddSource(ctx, &domain.Source{URL: "https://mercomindia.com/feed", Name: "Mercom again"})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, adapter.SetSourceEnabled(ctx, src.ID, false))
	sources, err := adapter.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.False(t, sources[0].Enabled)

	require.NoError(t, adapter.DeleteSource(ctx, src.ID))
	sources, err = adapter.ListSources(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestRepositoryAdapter_Rejections(t *testing.T) {
	ctx := context.Background()
	adapter := setupAdapter(t)

	rej := &domain.Rejection{
		URL:     "https://example.com/germany-solar",
		Title:   "Germany adds solar capacity",
		Snippet: "Germany installed record solar capacity",
		Scores:  domain.Scores{Country: 0.1, Categories: map[domain.ProjectType]float64{domain.TypeSolar: 0.6}},
		Reason:  domain.RejectCountry,
	}
	require.NoError(t, adapter.repos.Rejection.Add(ctx, rej))

	list, err := adapter.ListRejections(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, adapter.SetRejectionReview(ctx, list[0].ID, "not a project (0.95): foreign market"))
	got, err := adapter.GetRejection(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "not a project (0.95): foreign market", got.Review)

	stats, err := adapter.RejectionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByReason[domain.RejectCountry])
}
