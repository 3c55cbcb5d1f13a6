package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/repository"
	"github.com/umputun/renewscope/pkg/scheduler"
	"github.com/umputun/renewscope/pkg/sheet"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// statusHandler returns server status with registry counts
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	byType, err := s.db.CountProjects(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to count projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	total := 0
	for _, n := range byType {
		total += n
	}

	sources, err := s.db.ListSources(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	enabled := 0
	for _, src := range sources {
		if src.Enabled {
			enabled++
		}
	}

	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":           "ok",
		"version":          s.cfg.Version,
		"uptime":           time.Since(s.startedAt).Truncate(time.Second).String(),
		"projects":         total,
		"projects_by_type": byType,
		"sources":          len(sources),
		"enabled_sources":  enabled,
		"time":             time.Now().UTC(),
	})
}

// progressHandler returns the snapshot of the current or last batch
func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.scheduler.Progress())
}

// runHandler starts a batch, 409 if one is already running
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	err := s.scheduler.RunNow(r.Context())
	switch {
	case errors.Is(err, scheduler.ErrRunning):
		renderJSON(w, r, http.StatusConflict, rest.JSON{"error": err.Error(), "progress": s.scheduler.Progress()})
	case err != nil:
		lgr.Printf("[ERROR] failed to start batch: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
	default:
		renderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "started", "progress": s.scheduler.Progress()})
	}
}

// listProjectsHandler returns projects filtered by type, state, status and free text
func (s *Server) listProjectsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProjectFilter{
		State:  q.Get("state"),
		Status: q.Get("status"),
		Query:  q.Get("q"),
	}
	if v := q.Get("type"); v != "" {
		t, ok := domain.ParseProjectType(v)
		if !ok {
			renderError(w, r, fmt.Errorf("unknown project type %q", v), http.StatusBadRequest)
			return
		}
		filter.Type = t
	}

	var err error
	if filter.Limit, filter.Offset, err = pagination(r); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	projects, err := s.db.ListProjects(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to list projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"projects": projects, "limit": filter.Limit, "offset": filter.Offset})
}

// getProjectHandler returns a single project
func (s *Server) getProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	p, err := s.db.GetProject(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get project")
		return
	}
	renderJSON(w, r, http.StatusOK, p)
}

// deleteProjectHandler removes a project
func (s *Server) deleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.db.DeleteProject(r.Context(), id); err != nil {
		renderStoreError(w, r, err, "delete project")
		return
	}
	lgr.Printf("[INFO] project %d deleted", id)
	renderJSON(w, r, http.StatusOK, rest.JSON{"deleted": id})
}

// listSourcesHandler returns all registered sources
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.ListSources(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, sources)
}

// addSourceHandler registers a new source, 409 if the url is already known
func (s *Server) addSourceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	u, err := url.ParseRequestURI(strings.TrimSpace(req.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		renderError(w, r, fmt.Errorf("invalid source url %q", req.URL), http.StatusBadRequest)
		return
	}

	src := &domain.Source{URL: u.String(), Name: strings.TrimSpace(req.Name), Enabled: true}
	if src.Name == "" {
		src.Name = u.Host
	}
	added, err := s.db.AddSource(r.Context(), src)
	if err != nil {
		lgr.Printf("[ERROR] failed to add source: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !added {
		renderError(w, r, fmt.Errorf("source %s already exists", src.URL), http.StatusConflict)
		return
	}
	lgr.Printf("[INFO] source %s added", src.URL)
	renderJSON(w, r, http.StatusCreated, src)
}

// toggleSourceHandler enables or disables a source
func (s *Server) toggleSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var enabled bool
	switch r.PathValue("action") {
	case "enable":
		enabled = true
	case "disable":
	default:
		renderError(w, r, errors.New("invalid action"), http.StatusBadRequest)
		return
	}

	if err := s.db.SetSourceEnabled(r.Context(), id, enabled); err != nil {
		renderStoreError(w, r, err, "toggle source")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "enabled": enabled})
}

// deleteSourceHandler removes a source
func (s *Server) deleteSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.db.DeleteSource(r.Context(), id); err != nil {
		renderStoreError(w, r, err, "delete source")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"deleted": id})
}

// exportHandler sends the registry as xlsx workbook
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projects, err := s.db.ListProjects(ctx, repository.ProjectFilter{})
	if err != nil {
		lgr.Printf("[ERROR] failed to list projects for export: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	sources, err := s.db.ListSources(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list sources for export: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := sheet.Export(&buf, projects, sources); err != nil {
		lgr.Printf("[ERROR] failed to export projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("renewscope-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		lgr.Printf("[WARN] failed to write export: %v", err)
	}
}

// importHandler loads projects from an uploaded xlsx workbook
func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	file, name, err := uploadedFile(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	projects, err := sheet.Import(file)
	if err != nil {
		renderError(w, r, fmt.Errorf("import %s: %w", name, err), http.StatusBadRequest)
		return
	}
	added, err := s.db.ImportProjects(r.Context(), projects)
	if err != nil {
		lgr.Printf("[ERROR] failed to store imported projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[INFO] imported %s: %d projects read, %d added", name, len(projects), added)
	renderJSON(w, r, http.StatusOK, rest.JSON{"read": len(projects), "added": added})
}

// trainingHandler ingests an uploaded xlsx or csv training file
func (s *Server) trainingHandler(w http.ResponseWriter, r *http.Request) {
	file, name, err := uploadedFile(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	stats, err := s.trainer.IngestReader(r.Context(), name, file)
	if err != nil {
		renderError(w, r, fmt.Errorf("ingest %s: %w", name, err), http.StatusBadRequest)
		return
	}
	lgr.Printf("[INFO] training file %s ingested, %d of %d rows used", name, stats.RowsUsed, stats.RowsRead)
	renderJSON(w, r, http.StatusOK, stats)
}

// trainingStatsHandler returns the current training profile stats
func (s *Server) trainingStatsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.trainer.Stats())
}

// listRejectionsHandler returns recent rejected articles
func (s *Server) listRejectionsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _, err := pagination(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	rejections, err := s.db.ListRejections(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to list rejections: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rejections)
}

// rejectionStatsHandler returns rejection counts by reason and category
func (s *Server) rejectionStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.RejectionStats(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get rejection stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// reviewHandler asks the llm reviewer about a rejected article and stores the verdict
func (s *Server) reviewHandler(w http.ResponseWriter, r *http.Request) {
	if s.reviewer == nil {
		renderError(w, r, errors.New("llm review is not configured"), http.StatusServiceUnavailable)
		return
	}
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	rej, err := s.db.GetRejection(ctx, id)
	if err != nil {
		renderStoreError(w, r, err, "get rejection")
		return
	}

	verdict, err := s.reviewer.Review(ctx, *rej)
	if err != nil {
		lgr.Printf("[WARN] review of rejection %d failed: %v", id, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	if err := s.db.SetRejectionReview(ctx, id, verdict.String()); err != nil {
		renderStoreError(w, r, err, "store review")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "verdict": verdict, "review": verdict.String()})
}

// cleanupHandler removes irrelevant projects, dry_run=true only lists them
func (s *Server) cleanupHandler(w http.ResponseWriter, r *http.Request) {
	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))
	res, err := s.cleaner.Run(r.Context(), dryRun)
	if err != nil {
		lgr.Printf("[ERROR] cleanup failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// renderStoreError maps repository.ErrNotFound to 404, everything else to 500
func renderStoreError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	lgr.Printf("[ERROR] failed to %s: %v", op, err)
	renderError(w, r, err, http.StatusInternalServerError)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// pagination reads limit and offset query params, limit defaults to 100 and is capped at 1000
func pagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
	}
	limit = min(limit, maxListLimit)
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}
	return limit, offset, nil
}

// uploadedFile returns the multipart "file" field and its name
func uploadedFile(r *http.Request) (multipart.File, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", fmt.Errorf("invalid upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing file: %w", err)
	}
	return file, header.Filename, nil
}
