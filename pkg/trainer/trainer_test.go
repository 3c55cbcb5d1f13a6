package trainer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/umputun/renewscope/pkg/domain"
)

func TestTrainer_IngestRowsBoost(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)

	rows := [][]string{
		{"Type", "Name", "Company", "Category", "Generation Capacity (GW)"},
		{"Solar", "Khavda Renewable Energy Park", "Adani Green Energy", "Generation", "30"},
		{"Solar", "Pavagada Solar Park", "KSPDCL", "Generation", "2.05"},
		{"", "", "", "", ""},
		{"Coal", "Mine expansion", "Coal India", "", ""},
	}
	stats, err := tr.IngestRows("Projects", rows)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.RowsRead)
	assert.Equal(t, 2, stats.RowsUsed)
	assert.Positive(t, stats.Keywords[domain.TypeSolar])
	assert.Positive(t, stats.Phrases[domain.TypeSolar])

	kws := tr.Keywords(domain.TypeSolar)
	assert.Contains(t, kws, "khavda")
	assert.Contains(t, kws, "adani green energy")
	assert.Contains(t, kws, "generation")
	assert.NotContains(t, kws, "energy", "stop word")

	related := tr.ScoreBoost("Work starts on the Khavda renewable energy park", domain.TypeSolar)
	unrelated := tr.ScoreBoost("The cricket match was postponed", domain.TypeSolar)
	assert.Greater(t, related, unrelated)
	assert.Zero(t, unrelated)
	assert.Zero(t, tr.ScoreBoost("Khavda renewable energy park", domain.TypeWind), "untrained type")
}

func TestTrainer_ScoreBoostShortName(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)

	_, err = tr.IngestRows("Sheet1", [][]string{{"Type", "Name", "Company"}, {"Solar", "Bhadla Park", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"bhadla", "park"}, tr.Keywords(domain.TypeSolar))

	related := tr.ScoreBoost("the bhadla park expansion", domain.TypeSolar)
	unrelated := tr.ScoreBoost("monsoon delays harvest in punjab", domain.TypeSolar)
	assert.Greater(t, related, unrelated)
	assert.InDelta(t, 0.4, related, 1e-9, "two keywords and one phrase")
	assert.Zero(t, unrelated)
}

func TestTrainer_ScoreBoostCap(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)

	_, err = tr.IngestRows("Wind Projects", [][]string{{"name"}, {"Kutch Wind"}})
	require.NoError(t, err)
	assert.Len(t, tr.Keywords(domain.TypeWind), 2)
	assert.InDelta(t, 0.4, tr.ScoreBoost("kutch wind", domain.TypeWind), 1e-9)

	_, err = tr.IngestRows("Wind Projects", [][]string{
		{"name"}, {"Kutch Wind Farm Alpha Beta Gamma Delta Epsilon Zeta Eta Theta Iota"},
	})
	require.NoError(t, err)
	boost := tr.ScoreBoost("kutch wind farm alpha beta gamma delta epsilon zeta eta theta iota", domain.TypeWind)
	assert.InDelta(t, 0.95, boost, 1e-9)
}

func TestTrainer_SheetNameType(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	stats, err := tr.IngestRows("Green Hydrogen Projects", [][]string{
		{"ProjectName", "Developer", "electrolyzerCapacity"},
		{"Kakinada Hydrogen Hub", "AM Green", "1,300"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RowsUsed)
	assert.Contains(t, tr.Keywords(domain.TypeHydrogen), "kakinada")
	assert.Contains(t, tr.Keywords(domain.TypeHydrogen), "am green")
	assert.Equal(t, []float64{1300}, tr.profile.Category(domain.TypeHydrogen).Metrics["electrolyzer_capacity"])
}

func TestTrainer_IngestFilesAndPersist(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "training", "profile.json")

	xlsxPath := filepath.Join(dir, "examples.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Battery Projects")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Battery Projects", "A1", &[]interface{}{"Name", "Company", "Storage Capacity (GWh)"}))
	require.NoError(t, f.SetSheetRow("Battery Projects", "A2", &[]interface{}{"Bhadla Storage Block", "Greenko", 4}))
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	csvPath := filepath.Join(dir, "wind.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("type,name,company\nwind,Jaisalmer Wind Cluster,Suzlon\n"), 0o600))

	tr, err := New(profilePath)
	require.NoError(t, err)

	stats, err := tr.Ingest(context.Background(), xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RowsUsed)
	assert.Contains(t, tr.Keywords(domain.TypeBattery), "bhadla")

	stats, err = tr.Ingest(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RowsUsed)
	assert.Contains(t, tr.Keywords(domain.TypeWind), "suzlon")

	_, err = tr.Ingest(context.Background(), filepath.Join(dir, "notes.txt"))
	require.Error(t, err)

	// reload from the side file
	reloaded, err := New(profilePath)
	require.NoError(t, err)
	assert.Equal(t, tr.Keywords(domain.TypeBattery), reloaded.Keywords(domain.TypeBattery))
	assert.Equal(t, tr.Keywords(domain.TypeWind), reloaded.Keywords(domain.TypeWind))
	assert.Equal(t, []float64{4}, reloaded.profile.Category(domain.TypeBattery).Metrics["storage_capacity"])

	entries, err := os.ReadDir(filepath.Dir(profilePath))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestTrainer_IngestReaderUnsupported(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	_, err = tr.IngestReader(context.Background(), "data.json", strings.NewReader("{}"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	p, err := Load(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, p)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"solar":{"keywords":["a1","b2","c3"]}}`), 0o600))
	p, err = Load(good)
	require.NoError(t, err)
	require.NotNil(t, p.Category(domain.TypeSolar))
	assert.NotNil(t, p.Category(domain.TypeSolar).Phrases)
	assert.Len(t, p.Category(domain.TypeSolar).Keywords, 3)
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Generation Capacity (GW)": "generation_capacity",
		"generationCapacity":       "generation_capacity",
		"project-type":             "project_type",
		"  Name ":                  "name",
		"PLI":                      "pli",
		"Investment (USD Million)": "investment",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeHeader(in))
		})
	}
}

func TestTokensAndPhrases(t *testing.T) {
	assert.Equal(t, []string{"khavda", "renewable", "park"}, Tokens("Khavda Renewable Energy Park"))
	assert.Equal(t, []string{"khavda renewable", "renewable energy", "energy park"}, Phrases("Khavda Renewable Energy Park"))
	assert.Empty(t, Phrases("single"))
}
