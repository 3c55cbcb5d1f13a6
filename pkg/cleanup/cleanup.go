// Package cleanup removes stored projects that turned out to be news noise rather than projects.
// A project is removed when its name or source looks like an interview, event, opinion or market
// report, or when it carries no capacity and no investment and nothing in its name or source hints
// at physical infrastructure.
package cleanup

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/repository"
)

// Store lists and deletes projects
type Store interface {
	List(ctx context.Context, f repository.ProjectFilter) ([]domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

// Candidate is a project selected for removal
type Candidate struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result of a cleanup run
type Result struct {
	Removed  int         `json:"removed"`
	DryRun   bool        `json:"dry_run"`
	Projects []Candidate `json:"projects"`
}

// removal reasons
const (
	ReasonIrrelevant  = "irrelevant content"
	ReasonNoData      = "no capacity or investment"
	ReasonPlaceholder = "placeholder name without data"
	ReasonShortName   = "short name without data"
)

const minNameLength = 15

var irrelevantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(interview|discussion|q&a|conversation|talks? to|speaks? to)\b`),
	regexp.MustCompile(`(?i)\b(leading with|vision for|champions?|missing link)\b`),
	regexp.MustCompile(`(?i)\b(podcast|webinar|events?|conference|summit|conclave|roundtable)\b`),
	regexp.MustCompile(`(?i)\b(opinion|commentary|analysis|perspective|outlook|trends?|explained|breaking down)\b`),
	regexp.MustCompile(`(?i)\b(energy transition|renewable energy sector|clean energy space)\b`),
	regexp.MustCompile(`(?i)\b(output hits|energy output|quarterly results|annual report|market report|stock price|share price)\b`),
	regexp.MustCompile(`(?i)\b(landmark case|legal ruling|court decision|climate case)\b`),
}

var infrastructureTerms = []string{
	"mw project", "gw project", "mwh project", "gwh project", "tender", "epc", "secures", "awarded",
	"construction", "commissioning", "ground breaking", "foundation stone", "plant", "facility",
	"factory", "gigafactory", "park",
}

// Cleaner finds and removes irrelevant projects
type Cleaner struct {
	store Store
}

// New makes a cleaner working on the given store
func New(store Store) *Cleaner {
	return &Cleaner{store: store}
}

// Run removes irrelevant projects, with dryRun it only reports what would be removed
func (c *Cleaner) Run(ctx context.Context, dryRun bool) (Result, error) {
	projects, err := c.store.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return Result{}, fmt.Errorf("list projects: %w", err)
	}

	res := Result{DryRun: dryRun, Projects: []Candidate{}}
	for _, p := range projects {
		reason, remove := Check(p)
		if !remove {
			continue
		}
		res.Projects = append(res.Projects, Candidate{ID: p.ID, Name: p.Name, Reason: reason})
		if dryRun {
			continue
		}
		if err := c.store.Delete(ctx, p.ID); err != nil {
			return res, fmt.Errorf("delete project %d: %w", p.ID, err)
		}
		res.Removed++
		lgr.Printf("[INFO] removed irrelevant project %d %q: %s", p.ID, p.Name, reason)
	}

	lgr.Printf("[INFO] cleanup complete, %d of %d projects selected, %d removed", len(res.Projects), len(projects), res.Removed)
	return res, nil
}

// Check reports whether the project should be removed and why
func Check(p domain.Project) (reason string, remove bool) {
	for _, re := range irrelevantPatterns {
		if re.MatchString(p.Name) || re.MatchString(sourcePath(p.Source)) {
			return ReasonIrrelevant, true
		}
	}

	if p.Capacity.Value > 0 || p.InvestmentUSD > 0 || p.InvestmentINR > 0 {
		return "", false
	}

	switch {
	case p.Name == domain.UnnamedProject:
		return ReasonPlaceholder, true
	case len(p.Name) < minNameLength:
		return ReasonShortName, true
	case !hasInfrastructureTerm(p.Name + " " + sourcePath(p.Source)):
		return ReasonNoData, true
	}
	return "", false
}

func hasInfrastructureTerm(s string) bool {
	lower := strings.ToLower(s)
	for _, term := range infrastructureTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// sourcePath turns the article url path into words, "/news/adani-solar-plant" -> "news adani solar plant"
func sourcePath(src string) string {
	if i := strings.Index(src, "://"); i >= 0 {
		src = src[i+3:]
	}
	if i := strings.Index(src, "/"); i >= 0 {
		src = src[i:]
	} else {
		return ""
	}
	return strings.Join(strings.FieldsFunc(src, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.' || r == '?' || r == '=' || r == '&'
	}), " ")
}
