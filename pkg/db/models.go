// Package db defines database row models shared by repositories
package db

import (
	"database/sql"
	"time"
)

type (
	// NullString is a type alias for sql.NullString
	NullString = sql.NullString
	// NullTime is a type alias for sql.NullTime
	NullTime = sql.NullTime
)

// Project is a stored project record, capacity is kept as kind and value columns
type Project struct {
	ID                   int64     `db:"id"`
	Type                 string    `db:"type"`
	Name                 string    `db:"name"`
	Company              string    `db:"company"`
	Ownership            string    `db:"ownership"`
	PLI                  string    `db:"pli"`
	State                string    `db:"state"`
	Location             string    `db:"location"`
	AnnouncementDate     string    `db:"announcement_date"`
	Category             string    `db:"category"`
	Input                string    `db:"input"`
	Output               string    `db:"output"`
	CapacityKind         string    `db:"capacity_kind"`
	CapacityValue        float64   `db:"capacity_value"`
	FeedstockType        string    `db:"feedstock_type"`
	Status               string    `db:"status"`
	LandAcquisition      string    `db:"land_acquisition"`
	PowerApproval        string    `db:"power_approval"`
	EnvironmentClearance string    `db:"environment_clearance"`
	ALMMListing          string    `db:"almm_listing"`
	InvestmentUSD        float64   `db:"investment_usd"`
	InvestmentINR        float64   `db:"investment_inr"`
	ExpectedCompletion   string    `db:"expected_completion"`
	Source               string    `db:"source"`
	LastUpdated          time.Time `db:"last_updated"`
	CreatedAt            time.Time `db:"created_at"`
}

// Source is a news source row
type Source struct {
	ID            int64          `db:"id"`
	URL           string         `db:"url"`
	Name          string         `db:"name"`
	Enabled       bool           `db:"enabled"`
	LastChecked   sql.NullTime   `db:"last_checked"`
	LastError     sql.NullString `db:"last_error"`
	ProjectsFound int            `db:"projects_found"`
	CreatedAt     time.Time      `db:"created_at"`
}

// Article records a processed article url and its outcome
type Article struct {
	URL     string    `db:"url"`
	Outcome string    `db:"outcome"`
	SeenAt  time.Time `db:"seen_at"`
}

// Rejection is a diagnostic row for an article the gate did not accept.
// Categories holds per-type scores as a JSON object.
type Rejection struct {
	ID            int64          `db:"id"`
	URL           string         `db:"url"`
	Title         string         `db:"title"`
	Snippet       string         `db:"snippet"`
	CountryScore  float64        `db:"country_score"`
	Categories    string         `db:"categories"`
	BestType      string         `db:"best_type"`
	PipelineScore float64        `db:"pipeline_score"`
	Completed     bool           `db:"completed"`
	Reason        string         `db:"reason"`
	Review        sql.NullString `db:"review"`
	CreatedAt     time.Time      `db:"created_at"`
}

// ReasonCount is a grouped count row
type ReasonCount struct {
	Key   string `db:"key"`
	Count int    `db:"cnt"`
}
