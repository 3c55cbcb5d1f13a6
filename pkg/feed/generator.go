// Package feed renders discovered projects as an RSS 2.0 feed.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/renewscope/pkg/domain"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Atom    string   `xml:"xmlns:atom,attr"`
	Channel *Channel `xml:"channel"`
}

// Channel is the single channel of the feed
type Channel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	AtomLink      *AtomLink `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []*Item   `xml:"item"`
}

// AtomLink is the self reference of the feed
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// Item is a project entry of the feed
type Item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        GUID     `xml:"guid"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

// GUID is an item id, not a permalink
type GUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Generator creates RSS feeds from stored projects
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator, baseURL is used for channel and self links
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS makes a feed of projects, newest first as given. Empty type means all types.
func (g *Generator) GenerateRSS(projects []domain.Project, t domain.ProjectType) (string, error) {
	title := "Renewscope - All Projects"
	selfLink := g.baseURL + "/rss"
	if t != "" {
		title = fmt.Sprintf("Renewscope - %s Projects", t)
		selfLink = g.baseURL + "/rss/" + strings.ToLower(string(t))
	}

	items := make([]*Item, 0, len(projects))
	for _, p := range projects {
		items = append(items, g.item(p))
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &Channel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Renewable energy projects announced in India",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal rss: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) item(p domain.Project) *Item {
	title := fmt.Sprintf("[%s] %s", p.Type, p.Name)
	if p.Capacity.Value > 0 {
		title += ", " + p.Capacity.String()
	}

	lines := []string{
		"Company: " + p.Company,
		"Location: " + location(p),
		"Status: " + p.Status,
		"Capacity: " + p.Capacity.String(),
	}
	if p.InvestmentUSD > 0 {
		lines = append(lines, fmt.Sprintf("Investment: $%.1f million (INR %.1f billion)", p.InvestmentUSD, p.InvestmentINR))
	}
	if p.ExpectedCompletion != domain.Unknown && p.ExpectedCompletion != "" {
		lines = append(lines, "Expected completion: "+p.ExpectedCompletion)
	}

	published := p.CreatedAt
	if published.IsZero() {
		published = p.LastUpdated
	}

	categories := []string{string(p.Type), string(p.Category)}
	if p.State != domain.Unknown && p.State != "" {
		categories = append(categories, p.State)
	}

	return &Item{
		Title:       title,
		Link:        p.Source,
		GUID:        GUID{Value: fmt.Sprintf("%s/api/v1/projects/%d", g.baseURL, p.ID)},
		Description: strings.Join(lines, "\n"),
		PubDate:     published.Format(time.RFC1123Z),
		Categories:  categories,
	}
}

func location(p domain.Project) string {
	switch {
	case p.Location != domain.NotAvailable && p.Location != "" && p.Location != p.State:
		return p.Location + ", " + p.State
	default:
		return p.State
	}
}
