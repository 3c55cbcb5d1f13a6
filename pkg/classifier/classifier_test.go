package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/renewscope/pkg/domain"
)

const adaniText = "Adani Green Energy announced a 5 GW solar manufacturing facility in Gujarat with an " +
	"investment of $2 billion, expected to be completed by 2026"

func TestClassifier_Scenarios(t *testing.T) {
	c := New(DefaultParams(), nil)

	tests := []struct {
		name     string
		text     string
		accepted bool
		reason   domain.RejectReason
		wantType domain.ProjectType
	}{
		{name: "announced solar facility", text: adaniText, accepted: true, wantType: domain.TypeSolar},
		{name: "coal output news", text: "Coal India reported higher quarterly thermal output, no renewable investments announced",
			reason: domain.RejectCategory},
		{name: "completed facility with india context",
			text:   "Adani Solar has inaugurated its 2 GW solar facility in Gujarat, India, now fully operational",
			reason: domain.RejectCompleted, wantType: domain.TypeSolar},
		{name: "not about india", text: "A 300 MW wind farm is under construction in Texas, developers announced on Monday",
			reason: domain.RejectCountry, wantType: domain.TypeWind},
		{name: "no signal at all", text: "The weather was pleasant and the match ended in a draw", reason: domain.RejectCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := c.Classify(tt.text)
			assert.Equal(t, tt.accepted, d.Accepted, "scores: %+v", d.Scores)
			assert.Equal(t, tt.reason, d.Reason)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, d.Type)
			}
		})
	}
}

func TestClassifier_CompletedScenarioWithoutContext(t *testing.T) {
	c := New(DefaultParams(), nil)
	text := "Adani Solar has inaugurated its 2 GW facility, now fully operational"

	score, completed := c.ScorePipeline(text)
	assert.True(t, completed)
	assert.InDelta(t, 0.0, score, 0.0001)

	// a company alone scores 0.2 on country, so the country gate rejects before the completion check
	d := c.Classify(text)
	assert.False(t, d.Accepted)
	assert.Equal(t, domain.RejectCountry, d.Reason)
	assert.InDelta(t, 0.2, d.Scores.Country, 0.0001)
}

func TestClassifier_ScoreCountry(t *testing.T) {
	c := New(DefaultParams(), nil)
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty", text: "", want: 0},
		{name: "no markers", text: "the quick brown fox jumps over the lazy dog", want: 0},
		{name: "primary only", text: "the Indian government approved a scheme", want: 0.5},
		{name: "state only", text: "a new plant in Rajasthan", want: 0.3},
		{name: "company and state", text: "Tata Power will build a plant in Odisha", want: 0.5},
		{name: "currency only", text: "an outlay of Rs 500 crore", want: 0.2},
		{name: "all tiers capped", text: "India MNRE said NTPC will invest Rs 2,000 crore in Gujarat", want: 1.0},
		{name: "substring is not a match", text: "the indiana plant", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.ScoreCountry(tt.text), 0.0001)
		})
	}
}

func TestClassifier_ScoreCountryWithSimilarity(t *testing.T) {
	plain := New(DefaultParams(), nil)
	params := DefaultParams()
	params.UseSimilarity = true
	refined := New(params, nil)

	text := "a solar project in rajasthan with capacity of 500 mw"
	assert.Greater(t, refined.ScoreCountry(text), plain.ScoreCountry(text))
	assert.LessOrEqual(t, refined.ScoreCountry(adaniText+" india mnre seci crore"), 1.0)
}

func TestClassifier_ScoreCategories(t *testing.T) {
	c := New(DefaultParams(), nil)

	t.Run("zero matches", func(t *testing.T) {
		scores := c.ScoreCategories("quarterly results of a bank were published")
		require.Len(t, scores, len(domain.ProjectTypes))
		for typ, v := range scores {
			assert.Zero(t, v, "type %s", typ)
		}
	})

	t.Run("capacity evidence beats vocabulary", func(t *testing.T) {
		withCapacity := c.ScoreCategories("a 500 MW wind project")[domain.TypeWind]
		withoutCapacity := c.ScoreCategories("a wind project")[domain.TypeWind]
		assert.InDelta(t, 0.45, withCapacity, 0.0001)
		assert.InDelta(t, 0.15, withoutCapacity, 0.0001)
	})

	t.Run("whole word beats substring", func(t *testing.T) {
		whole := c.ScoreCategories("new battery line")[domain.TypeBattery]
		sub := c.ScoreCategories("new batteryless line")[domain.TypeBattery]
		assert.Greater(t, whole, sub)
		assert.Greater(t, sub, 0.0)
	})

	t.Run("clipped at 0.9", func(t *testing.T) {
		text := "solar photovoltaic solar pv solar park solar plant solar module solar cell solar panel wafer 2 GW solar"
		assert.InDelta(t, 0.9, c.ScoreCategories(text)[domain.TypeSolar], 0.0001)
	})

	t.Run("storage units", func(t *testing.T) {
		scores := c.ScoreCategories("a 2 GWh battery energy storage system")
		best, _ := domain.Scores{Categories: scores}.Best()
		assert.Equal(t, domain.TypeBattery, best)
	})

	t.Run("hydrogen is not hydro", func(t *testing.T) {
		scores := c.ScoreCategories("a green hydrogen plant with 100 MW electrolyser capacity")
		assert.Greater(t, scores[domain.TypeHydrogen], scores[domain.TypeHydro])
	})
}

type boosterFunc func(text string, t domain.ProjectType) float64

func (f boosterFunc) ScoreBoost(text string, t domain.ProjectType) float64 { return f(text, t) }

func TestClassifier_Booster(t *testing.T) {
	booster := boosterFunc(func(text string, typ domain.ProjectType) float64 {
		if typ == domain.TypeSolar && strings.Contains(strings.ToLower(text), "khavda") {
			return 0.6
		}
		return 0
	})
	c := New(DefaultParams(), booster)

	assert.InDelta(t, 0.95, c.ScoreCategories("Khavda 2 GW solar park, solar plant, solar module")[domain.TypeSolar], 0.0001)
	assert.InDelta(t, 0.6, c.ScoreCategories("Khavda park")[domain.TypeSolar], 0.0001)
	assert.InDelta(t, 0.15, c.ScoreCategories("solar")[domain.TypeSolar], 0.0001)
}

func TestClassifier_ScorePipeline(t *testing.T) {
	c := New(DefaultParams(), nil)
	tests := []struct {
		name      string
		text      string
		score     float64
		completed bool
	}{
		{name: "no markers is lenient", text: "company results were reported", score: 0.4},
		{name: "strong pipeline", text: "the firm announced it plans to build a plant", score: 0.9},
		{name: "one pipeline marker", text: "the plant is under construction", score: 0.7},
		{name: "completed only", text: "the plant was inaugurated last week", score: 0, completed: true},
		{name: "tie", text: "phase one was commissioned and phase two is under construction", score: 0.4},
		{name: "completed dominates", text: "inaugurated and fully operational, the company announced", score: 0.1, completed: true},
		{name: "future commissioning is pipeline", text: "the plant is yet to be commissioned", score: 0.7},
		{name: "to be completed", text: "the project is expected to be completed by 2027", score: 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, completed := c.ScorePipeline(tt.text)
			assert.InDelta(t, tt.score, score, 0.0001)
			assert.Equal(t, tt.completed, completed)
		})
	}
}

func TestClassifier_ThresholdOverrides(t *testing.T) {
	strict := New(Params{CountryThreshold: 0.9}, nil)
	d := strict.Classify(adaniText)
	assert.False(t, d.Accepted)
	assert.Equal(t, domain.RejectCountry, d.Reason)

	c := New(Params{}, nil)
	assert.Equal(t, DefaultParams(), c.params)
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("solar plant india", "india solar plant"), 0.0001)
	assert.Zero(t, Similarity("alpha beta", "gamma delta"))
	assert.Zero(t, Similarity("", "gamma delta"))
	v := Similarity("solar plant in india", "india solar wind hydro")
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, 1.0)
}
