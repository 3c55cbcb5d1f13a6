package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/renewscope/pkg/cleanup"
	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/llm"
	"github.com/umputun/renewscope/pkg/repository"
	"github.com/umputun/renewscope/pkg/scheduler"
	"github.com/umputun/renewscope/pkg/sheet"
	"github.com/umputun/renewscope/pkg/trainer"
	"github.com/umputun/renewscope/server/mocks"
)

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// uploadRequest builds a multipart request with the content under the "file" field
func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func testProject(id int64, t domain.ProjectType, name string) domain.Project {
	p := domain.NewProject(t)
	p.ID = id
	p.Name = name
	p.Company = "Adani Green Energy"
	p.State = "Gujarat"
	p.Capacity.Value = 2.5
	p.Source = "https://example.com/news/" + fmt.Sprint(id)
	p.CreatedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p.LastUpdated = p.CreatedAt
	return p
}

func TestServer_Status(t *testing.T) {
	db := &mocks.DatabaseMock{
		CountProjectsFunc: func(ctx context.Context) (map[domain.ProjectType]int, error) {
			return map[domain.ProjectType]int{domain.TypeSolar: 2, domain.TypeWind: 1}, nil
		},
		ListSourcesFunc: func(ctx context.Context) ([]domain.Source, error) {
			return []domain.Source{{ID: 1, Enabled: true}, {ID: 2}}, nil
		},
	}
	srv := testServer(t, Deps{DB: db})

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status         string         `json:"status"`
		Version        string         `json:"version"`
		Projects       int            `json:"projects"`
		ProjectsByType map[string]int `json:"projects_by_type"`
		Sources        int            `json:"sources"`
		EnabledSources int            `json:"enabled_sources"`
	}
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, 3, resp.Projects)
	assert.Equal(t, map[string]int{"Solar": 2, "Wind": 1}, resp.ProjectsByType)
	assert.Equal(t, 2, resp.Sources)
	assert.Equal(t, 1, resp.EnabledSources)

	t.Run("count error", func(t *testing.T) {
		db := &mocks.DatabaseMock{
			CountProjectsFunc: func(ctx context.Context) (map[domain.ProjectType]int, error) {
				return nil, errors.New("db locked")
			},
		}
		rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "db locked")
	})
}

func TestServer_Progress(t *testing.T) {
	progress := domain.Progress{RunID: "run-1", InProgress: true, Total: 4, Processed: 1, CurrentSource: "https://example.com"}
	sched := &mocks.SchedulerMock{ProgressFunc: func() domain.Progress { return progress }}
	srv := testServer(t, Deps{Scheduler: sched})

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/progress", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Progress
	decodeJSON(t, rec, &got)
	assert.Equal(t, progress, got)
	assert.Len(t, sched.ProgressCalls(), 1)
}

func TestServer_RunBatch(t *testing.T) {
	tests := []struct {
		name   string
		runErr error
		code   int
		body   string
	}{
		{name: "started", code: http.StatusAccepted, body: `"status":"started"`},
		{name: "already running", runErr: scheduler.ErrRunning, code: http.StatusConflict, body: scheduler.ErrRunning.Error()},
		{name: "failed", runErr: errors.New("boom"), code: http.StatusInternalServerError, body: "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &mocks.SchedulerMock{
				RunNowFunc:   func(ctx context.Context) error { return tt.runErr },
				ProgressFunc: func() domain.Progress { return domain.Progress{RunID: "r1", InProgress: true} },
			}
			rec := serve(testServer(t, Deps{Scheduler: sched}), httptest.NewRequest(http.MethodPost, "/api/v1/run", http.NoBody))
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.Len(t, sched.RunNowCalls(), 1)
		})
	}
}

func TestServer_ListProjects(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		code       int
		wantFilter repository.ProjectFilter
	}{
		{name: "defaults", query: "", code: http.StatusOK, wantFilter: repository.ProjectFilter{Limit: 100}},
		{name: "all filters", query: "?type=green+hydrogen&state=Gujarat&status=Approved&q=adani&limit=10&offset=20",
			code: http.StatusOK, wantFilter: repository.ProjectFilter{Type: domain.TypeHydrogen, State: "Gujarat",
				Status: "Approved", Query: "adani", Limit: 10, Offset: 20}},
		{name: "limit capped", query: "?limit=5000", code: http.StatusOK, wantFilter: repository.ProjectFilter{Limit: 1000}},
		{name: "unknown type", query: "?type=coal", code: http.StatusBadRequest},
		{name: "bad limit", query: "?limit=abc", code: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", code: http.StatusBadRequest},
		{name: "negative offset", query: "?offset=-1", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &mocks.DatabaseMock{
				ListProjectsFunc: func(ctx context.Context, f repository.ProjectFilter) ([]domain.Project, error) {
					return []domain.Project{testProject(1, domain.TypeSolar, "Khavda Solar Park")}, nil
				},
			}
			rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodGet, "/api/v1/projects"+tt.query, http.NoBody))
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code != http.StatusOK {
				assert.Empty(t, db.ListProjectsCalls())
				return
			}

			require.Len(t, db.ListProjectsCalls(), 1)
			assert.Equal(t, tt.wantFilter, db.ListProjectsCalls()[0].F)

			var resp struct {
				Projects []domain.Project `json:"projects"`
				Limit    int              `json:"limit"`
				Offset   int              `json:"offset"`
			}
			decodeJSON(t, rec, &resp)
			require.Len(t, resp.Projects, 1)
			assert.Equal(t, "Khavda Solar Park", resp.Projects[0].Name)
			assert.InDelta(t, 2.5, resp.Projects[0].Capacity.Value, 0.001)
			assert.Equal(t, tt.wantFilter.Limit, resp.Limit)
			assert.Equal(t, tt.wantFilter.Offset, resp.Offset)
		})
	}
}

func TestServer_GetProject(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetProjectFunc: func(ctx context.Context, id int64) (*domain.Project, error) {
			switch id {
			case 7:
				p := testProject(7, domain.TypeWind, "Bhuj Wind Farm")
				return &p, nil
			case 8:
				return nil, errors.New("disk failure")
			}
			return nil, fmt.Errorf("project %d: %w", id, repository.ErrNotFound)
		},
	}
	srv := testServer(t, Deps{DB: db})

	tests := []struct {
		name string
		path string
		code int
		body string
	}{
		{name: "found", path: "/api/v1/projects/7", code: http.StatusOK, body: `"name":"Bhuj Wind Farm"`},
		{name: "not found", path: "/api/v1/projects/42", code: http.StatusNotFound, body: "not found"},
		{name: "store error", path: "/api/v1/projects/8", code: http.StatusInternalServerError, body: "disk failure"},
		{name: "bad id", path: "/api/v1/projects/abc", code: http.StatusBadRequest, body: `invalid id \"abc\"`},
		{name: "zero id", path: "/api/v1/projects/0", code: http.StatusBadRequest, body: "invalid id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(srv, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestServer_DeleteProject(t *testing.T) {
	db := &mocks.DatabaseMock{
		DeleteProjectFunc: func(ctx context.Context, id int64) error {
			if id == 3 {
				return nil
			}
			return repository.ErrNotFound
		},
	}
	srv := testServer(t, Deps{DB: db})

	rec := serve(srv, httptest.NewRequest(http.MethodDelete, "/api/v1/projects/3", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":3}`, rec.Body.String())

	rec = serve(srv, httptest.NewRequest(http.MethodDelete, "/api/v1/projects/4", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Len(t, db.DeleteProjectCalls(), 2)
	assert.Equal(t, int64(4), db.DeleteProjectCalls()[1].Id)
}

func TestServer_Sources(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		db := &mocks.DatabaseMock{
			ListSourcesFunc: func(ctx context.Context) ([]domain.Source, error) {
				return []domain.Source{{ID: 1, URL: "https://mercomindia.com/feed", Name: "Mercom", Enabled: true}}, nil
			},
		}
		rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodGet, "/api/v1/sources", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
		var sources []domain.Source
		decodeJSON(t, rec, &sources)
		require.Len(t, sources, 1)
		assert.Equal(t, "Mercom", sources[0].Name)
	})

	t.Run("add", func(t *testing.T) {
		tests := []struct {
			name     string
			body     string
			added    bool
			code     int
			wantName string
		}{
			{name: "new source", body: `{"url":"https://mercomindia.com/feed","name":" Mercom "}`, added: true,
				code: http.StatusCreated, wantName: "Mercom"},
			{name: "name from host", body: `{"url":"https://www.saurenergy.com/news"}`, added: true,
				code: http.StatusCreated, wantName: "www.saurenergy.com"},
			{name: "duplicate", body: `{"url":"https://mercomindia.com/feed"}`, code: http.StatusConflict},
			{name: "bad scheme", body: `{"url":"ftp://example.com/feed"}`, code: http.StatusBadRequest},
			{name: "not a url", body: `{"url":"mercom"}`, code: http.StatusBadRequest},
			{name: "bad json", body: `{"url":`, code: http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db := &mocks.DatabaseMock{
					AddSourceFunc: func(ctx context.Context, src *domain.Source) (bool, error) {
						src.ID = 10
						return tt.added, nil
					},
				}
				req := httptest.NewRequest(http.MethodPost, "/api/v1/sources", strings.NewReader(tt.body))
				rec := serve(testServer(t, Deps{DB: db}), req)
				require.Equal(t, tt.code, rec.Code, rec.Body.String())
				if tt.code == http.StatusBadRequest {
					assert.Empty(t, db.AddSourceCalls())
					return
				}
				require.Len(t, db.AddSourceCalls(), 1)
				assert.True(t, db.AddSourceCalls()[0].Src.Enabled)
				if tt.code != http.StatusCreated {
					return
				}
				var src domain.Source
				decodeJSON(t, rec, &src)
				assert.Equal(t, int64(10), src.ID)
				assert.Equal(t, tt.wantName, src.Name)
			})
		}
	})

	t.Run("toggle", func(t *testing.T) {
		tests := []struct {
			name        string
			path        string
			code        int
			wantEnabled bool
		}{
			{name: "enable", path: "/api/v1/sources/5/enable", code: http.StatusOK, wantEnabled: true},
			{name: "disable", path: "/api/v1/sources/5/disable", code: http.StatusOK, wantEnabled: false},
			{name: "bad action", path: "/api/v1/sources/5/pause", code: http.StatusBadRequest},
			{name: "bad id", path: "/api/v1/sources/x/enable", code: http.StatusBadRequest},
			{name: "not found", path: "/api/v1/sources/99/enable", code: http.StatusNotFound, wantEnabled: true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db := &mocks.DatabaseMock{
					SetSourceEnabledFunc: func(ctx context.Context, id int64, enabled bool) error {
						if id == 99 {
							return repository.ErrNotFound
						}
						return nil
					},
				}
				rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodPut, tt.path, http.NoBody))
				require.Equal(t, tt.code, rec.Code, rec.Body.String())
				if tt.code == http.StatusBadRequest {
					assert.Empty(t, db.SetSourceEnabledCalls())
					return
				}
				require.Len(t, db.SetSourceEnabledCalls(), 1)
				assert.Equal(t, tt.wantEnabled, db.SetSourceEnabledCalls()[0].Enabled)
			})
		}
	})

	t.Run("delete", func(t *testing.T) {
		db := &mocks.DatabaseMock{DeleteSourceFunc: func(ctx context.Context, id int64) error { return nil }}
		rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodDelete, "/api/v1/sources/2", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, db.DeleteSourceCalls(), 1)
		assert.Equal(t, int64(2), db.DeleteSourceCalls()[0].Id)
	})
}

func TestServer_Export(t *testing.T) {
	projects := []domain.Project{
		testProject(2, domain.TypeWind, "Bhuj Wind Farm"),
		testProject(1, domain.TypeSolar, "Khavda Solar Park"),
	}
	db := &mocks.DatabaseMock{
		ListProjectsFunc: func(ctx context.Context, f repository.ProjectFilter) ([]domain.Project, error) {
			return projects, nil
		},
		ListSourcesFunc: func(ctx context.Context) ([]domain.Source, error) {
			return []domain.Source{{ID: 1, URL: "https://mercomindia.com/feed", Name: "Mercom", Enabled: true}}, nil
		},
	}
	rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodGet, "/api/v1/export", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="renewscope-`)
	assert.Equal(t, repository.ProjectFilter{}, db.ListProjectsCalls()[0].F)

	imported, err := sheet.Import(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	require.Len(t, imported, 2)
	names := []string{imported[0].Name, imported[1].Name}
	assert.ElementsMatch(t, []string{"Bhuj Wind Farm", "Khavda Solar Park"}, names)
}

func TestServer_Import(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sheet.Export(&buf, []domain.Project{
		testProject(1, domain.TypeSolar, "Khavda Solar Park"),
		testProject(2, domain.TypeBattery, "Rajasthan BESS Project"),
	}, nil))

	db := &mocks.DatabaseMock{
		ImportProjectsFunc: func(ctx context.Context, projects []domain.Project) (int, error) {
			return len(projects) - 1, nil
		},
	}
	srv := testServer(t, Deps{DB: db})

	rec := serve(srv, uploadRequest(t, "/api/v1/import", "projects.xlsx", buf.Bytes()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"read":2,"added":1}`, rec.Body.String())
	require.Len(t, db.ImportProjectsCalls(), 1)
	assert.Len(t, db.ImportProjectsCalls()[0].Projects, 2)

	t.Run("not a workbook", func(t *testing.T) {
		rec := serve(srv, uploadRequest(t, "/api/v1/import", "projects.xlsx", []byte("not a zip")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "import projects.xlsx")
	})

	t.Run("no file", func(t *testing.T) {
		rec := serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/import", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid upload")
	})
}

func TestServer_Training(t *testing.T) {
	stats := trainer.Stats{RowsRead: 3, RowsUsed: 2, Keywords: map[domain.ProjectType]int{domain.TypeSolar: 12}}
	tr := &mocks.TrainerMock{
		IngestReaderFunc: func(ctx context.Context, name string, r io.Reader) (trainer.Stats, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return trainer.Stats{}, err
			}
			if !strings.Contains(string(data), "Solar") {
				return trainer.Stats{}, errors.New("no usable rows")
			}
			return stats, nil
		},
		StatsFunc: func() trainer.Stats { return stats },
	}
	srv := testServer(t, Deps{Trainer: tr})

	t.Run("ingest", func(t *testing.T) {
		csv := "Type,Name,Company\nSolar,Khavda Solar Park,Adani\n"
		rec := serve(srv, uploadRequest(t, "/api/v1/training", "training.csv", []byte(csv)))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got trainer.Stats
		decodeJSON(t, rec, &got)
		assert.Equal(t, stats, got)
		require.Len(t, tr.IngestReaderCalls(), 1)
		assert.Equal(t, "training.csv", tr.IngestReaderCalls()[0].Name)
	})

	t.Run("ingest error", func(t *testing.T) {
		rec := serve(srv, uploadRequest(t, "/api/v1/training", "empty.csv", []byte("Type,Name\n")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ingest empty.csv: no usable rows")
	})

	t.Run("stats", func(t *testing.T) {
		rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/training", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"rows_used":2`)
		assert.Len(t, tr.StatsCalls(), 1)
	})
}

func TestServer_Diagnostics(t *testing.T) {
	rejections := []domain.Rejection{
		{ID: 2, URL: "https://example.com/b", Title: "Solar tariffs in Germany", Reason: domain.RejectCountry},
		{ID: 1, URL: "https://example.com/a", Title: "Wind farm commissioned", Reason: domain.RejectCompleted},
	}
	db := &mocks.DatabaseMock{
		ListRejectionsFunc: func(ctx context.Context, limit int) ([]domain.Rejection, error) {
			return rejections[:min(limit, len(rejections))], nil
		},
		RejectionStatsFunc: func(ctx context.Context) (domain.RejectionStats, error) {
			return domain.RejectionStats{Total: 2, ByReason: map[domain.RejectReason]int{
				domain.RejectCountry: 1, domain.RejectCompleted: 1}}, nil
		},
	}
	srv := testServer(t, Deps{DB: db})

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics?limit=1", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Rejection
	decodeJSON(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, 1, db.ListRejectionsCalls()[0].Limit)

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultListLimit, db.ListRejectionsCalls()[1].Limit)

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics/stats", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.RejectionStats
	decodeJSON(t, rec, &stats)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByReason[domain.RejectCountry])
}

func TestServer_Review(t *testing.T) {
	rej := domain.Rejection{ID: 5, URL: "https://example.com/a", Title: "ReNew plans 1 GW solar park in Odisha",
		Reason: domain.RejectCountry}
	newDB := func() *mocks.DatabaseMock {
		return &mocks.DatabaseMock{
			GetRejectionFunc: func(ctx context.Context, id int64) (*domain.Rejection, error) {
				if id != rej.ID {
					return nil, repository.ErrNotFound
				}
				r := rej
				return &r, nil
			},
			SetRejectionReviewFunc: func(ctx context.Context, id int64, review string) error { return nil },
		}
	}

	t.Run("not configured", func(t *testing.T) {
		db := newDB()
		rec := serve(testServer(t, Deps{DB: db}), httptest.NewRequest(http.MethodPost, "/api/v1/diagnostics/5/review", http.NoBody))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Empty(t, db.GetRejectionCalls())
	})

	verdict := llm.Verdict{IsProject: true, Type: "Solar", Confidence: 0.9, Explanation: "new 1 GW park announced"}
	tests := []struct {
		name       string
		path       string
		reviewErr  error
		code       int
		wantStored bool
	}{
		{name: "reviewed", path: "/api/v1/diagnostics/5/review", code: http.StatusOK, wantStored: true},
		{name: "unknown rejection", path: "/api/v1/diagnostics/6/review", code: http.StatusNotFound},
		{name: "llm failure", path: "/api/v1/diagnostics/5/review", reviewErr: errors.New("rate limited"), code: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newDB()
			reviewer := &mocks.ReviewerMock{
				ReviewFunc: func(ctx context.Context, r domain.Rejection) (llm.Verdict, error) {
					return verdict, tt.reviewErr
				},
			}
			rec := serve(testServer(t, Deps{DB: db, Reviewer: reviewer}), httptest.NewRequest(http.MethodPost, tt.path, http.NoBody))
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if !tt.wantStored {
				assert.Empty(t, db.SetRejectionReviewCalls())
				return
			}
			require.Len(t, reviewer.ReviewCalls(), 1)
			assert.Equal(t, rej.Title, reviewer.ReviewCalls()[0].Rej.Title)
			require.Len(t, db.SetRejectionReviewCalls(), 1)
			assert.Equal(t, "project (Solar, 0.90): new 1 GW park announced", db.SetRejectionReviewCalls()[0].Review)
			assert.Contains(t, rec.Body.String(), `"is_project":true`)
		})
	}
}

func TestServer_Cleanup(t *testing.T) {
	cleaner := &mocks.CleanerMock{
		RunFunc: func(ctx context.Context, dryRun bool) (cleanup.Result, error) {
			res := cleanup.Result{DryRun: dryRun, Projects: []cleanup.Candidate{{ID: 3, Name: "Test Project", Reason: cleanup.ReasonPlaceholder}}}
			if !dryRun {
				res.Removed = 1
			}
			return res, nil
		},
	}
	srv := testServer(t, Deps{Cleaner: cleaner})

	rec := serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/cleanup?dry_run=true", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	var res cleanup.Result
	decodeJSON(t, rec, &res)
	assert.True(t, res.DryRun)
	assert.Zero(t, res.Removed)
	require.Len(t, res.Projects, 1)

	rec = serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/cleanup", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &res)
	assert.False(t, res.DryRun)
	assert.Equal(t, 1, res.Removed)

	calls := cleaner.RunCalls()
	require.Len(t, calls, 2)
	assert.True(t, calls[0].DryRun)
	assert.False(t, calls[1].DryRun)
}
