package domain

import "time"

// Source is a news page or feed checked for project announcements
type Source struct {
	ID            int64      `json:"id"`
	URL           string     `json:"url"`
	Name          string     `json:"name"`
	Enabled       bool       `json:"enabled"`
	LastChecked   *time.Time `json:"last_checked,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	ProjectsFound int        `json:"projects_found"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Progress is a point-in-time view of a batch run
type Progress struct {
	RunID         string        `json:"run_id"`
	InProgress    bool          `json:"in_progress"`
	Completed     bool          `json:"completed"`
	Total         int           `json:"total_sources"`
	Processed     int           `json:"processed_sources"`
	ProjectsAdded int           `json:"projects_added"`
	CurrentSource string        `json:"current_source,omitempty"`
	Error         string        `json:"error,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	Elapsed       time.Duration `json:"elapsed"`
}
