package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/renewscope/pkg/domain"
)

func testProjects() []domain.Project {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	solar := domain.NewProject(domain.TypeSolar)
	solar.ID = 7
	solar.Name = "Adani Gujarat Solar Plant"
	solar.Company = "Adani Green Energy"
	solar.State = "Gujarat"
	solar.Location = "Khavda"
	solar.Capacity.Value = 5
	solar.InvestmentUSD = 2000
	solar.InvestmentINR = 165
	solar.ExpectedCompletion = "2026"
	solar.Source = "https://example.com/news/adani-solar"
	solar.CreatedAt = created

	battery := domain.NewProject(domain.TypeBattery)
	battery.ID = 8
	battery.Name = "Rajasthan BESS"
	battery.Source = "https://example.com/news/bess"
	battery.LastUpdated = created.Add(time.Hour)

	return []domain.Project{solar, battery}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	g := NewGenerator("https://renewscope.example.com/")
	g.now = func() time.Time { return time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) }

	t.Run("all projects", func(t *testing.T) {
		rss, err := g.GenerateRSS(testProjects(), "")
		require.NoError(t, err)

		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Renewscope - All Projects</title>`)
		assert.Contains(t, rss, `<link>https://renewscope.example.com/</link>`)
		assert.Contains(t, rss, `href="https://renewscope.example.com/rss"`)
		assert.Contains(t, rss, `<lastBuildDate>Sun, 02 Mar 2025 00:00:00 +0000</lastBuildDate>`)

		var doc RSS
		require.NoError(t, xml.Unmarshal([]byte(rss), &doc))
		require.Len(t, doc.Channel.Items, 2)

		solar := doc.Channel.Items[0]
		assert.Equal(t, "[Solar] Adani Gujarat Solar Plant, 5 GW", solar.Title)
		assert.Equal(t, "https://example.com/news/adani-solar", solar.Link)
		assert.Equal(t, "https://renewscope.example.com/api/v1/projects/7", solar.GUID.Value)
		assert.False(t, solar.GUID.IsPermaLink)
		assert.Equal(t, "Sat, 01 Mar 2025 12:00:00 +0000", solar.PubDate)
		assert.Equal(t, []string{"Solar", "Generation", "Gujarat"}, solar.Categories)
		assert.Contains(t, solar.Description, "Location: Khavda, Gujarat")
		assert.Contains(t, solar.Description, "Investment: $2000.0 million (INR 165.0 billion)")
		assert.Contains(t, solar.Description, "Expected completion: 2026")

		battery := doc.Channel.Items[1]
		assert.Equal(t, "[Battery] Rajasthan BESS", battery.Title)
		assert.Equal(t, "Sat, 01 Mar 2025 13:00:00 +0000", battery.PubDate)
		assert.Equal(t, []string{"Battery", "Storage"}, battery.Categories)
		assert.Contains(t, battery.Description, "Capacity: NA")
		assert.NotContains(t, battery.Description, "Investment")
	})

	t.Run("single type", func(t *testing.T) {
		rss, err := g.GenerateRSS(nil, domain.TypeHydrogen)
		require.NoError(t, err)
		assert.Contains(t, rss, `<title>Renewscope - Hydrogen Projects</title>`)
		assert.Contains(t, rss, `href="https://renewscope.example.com/rss/hydrogen"`)
		assert.NotContains(t, rss, "<item>")
	})
}
