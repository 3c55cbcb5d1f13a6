package server

import (
	"fmt"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/feed"
	"github.com/umputun/renewscope/pkg/repository"
)

const defaultRSSLimit = 50

// rssHandler serves RSS feed of newest projects
// Supports both /rss/{type} and /rss?type=... patterns
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProjectFilter{Limit: defaultRSSLimit}

	name := r.PathValue("type")
	if name == "" {
		name = r.URL.Query().Get("type")
	}
	if name != "" {
		t, ok := domain.ParseProjectType(name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown project type %q", name), http.StatusBadRequest)
			return
		}
		filter.Type = t
	}

	projects, err := s.db.ListProjects(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to get projects for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(baseURL(r)).GenerateRSS(projects, filter.Type)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// baseURL of the service as seen by the client
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
