// Package classifier decides whether an article describes an in-pipeline Indian renewable
// energy project. It scores text on three independent axes (country, energy category and
// pipeline status) and applies them as a short-circuiting gate in that order.
package classifier

import (
	"math"
	"strings"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/lexicon"
)

// score increments
const (
	wholeWordHit   = 0.15
	substringHit   = 0.05
	capacityBonus  = 0.3
	maxRawCategory = 0.9
	maxBoosted     = 0.95
	minSubstrLen   = 4
	epsilon        = 1e-9
)

// Booster returns an extra category score learned from training data
type Booster interface {
	ScoreBoost(text string, t domain.ProjectType) float64
}

// Params defines gate thresholds and optional refinements
type Params struct {
	CountryThreshold  float64
	CategoryThreshold float64
	PipelineThreshold float64
	UseSimilarity     bool
	SimilarityWeight  float64
}

// DefaultParams returns thresholds country 0.5, category 0.4, pipeline 0.4
func DefaultParams() Params {
	return Params{CountryThreshold: 0.5, CategoryThreshold: 0.4, PipelineThreshold: 0.4, SimilarityWeight: 0.2}
}

// Decision is the outcome of the relevance gate
type Decision struct {
	Scores   domain.Scores
	Type     domain.ProjectType
	Accepted bool
	Reason   domain.RejectReason
}

// Classifier scores and gates article text. It is immutable after New and safe for concurrent use.
type Classifier struct {
	params  Params
	booster Booster
	tiers   []countryTier
}

// New makes a classifier, booster may be nil
func New(params Params, booster Booster) *Classifier {
	def := DefaultParams()
	if params.CountryThreshold <= 0 {
		params.CountryThreshold = def.CountryThreshold
	}
	if params.CategoryThreshold <= 0 {
		params.CategoryThreshold = def.CategoryThreshold
	}
	if params.PipelineThreshold <= 0 {
		params.PipelineThreshold = def.PipelineThreshold
	}
	if params.SimilarityWeight <= 0 {
		params.SimilarityWeight = def.SimilarityWeight
	}
	return &Classifier{params: params, booster: booster, tiers: buildCountryTiers()}
}

// Classify computes all scores and applies the gate: country, then category, then pipeline status
func (c *Classifier) Classify(text string) Decision {
	scores := domain.Scores{
		Country:    c.ScoreCountry(text),
		Categories: c.ScoreCategories(text),
	}
	scores.Pipeline, scores.Completed = c.ScorePipeline(text)

	best, bestScore := scores.Best()
	res := Decision{Scores: scores, Type: best}
	switch {
	case scores.Country+epsilon < c.params.CountryThreshold:
		res.Reason = domain.RejectCountry
	case bestScore+epsilon < c.params.CategoryThreshold:
		res.Reason = domain.RejectCategory
	case scores.Completed || scores.Pipeline+epsilon < c.params.PipelineThreshold:
		res.Reason = domain.RejectCompleted
	default:
		res.Accepted = true
	}
	return res
}

// ScoreCountry returns India relevance in [0,1], the sum of triggered marker tiers
func (c *Classifier) ScoreCountry(text string) float64 {
	lower := normalize(text)
	if lower == "" {
		return 0
	}
	score := 0.0
	for _, tier := range c.tiers {
		for _, term := range tier.terms {
			if lexicon.ContainsWord(lower, term) {
				score += tier.weight
				break
			}
		}
	}
	if c.params.UseSimilarity {
		score += c.params.SimilarityWeight * Similarity(lower, countryReference)
	}
	return math.Min(score, 1.0)
}

// ScoreCategories returns per-type relevance. Whole-word keyword hits weigh more than substring
// hits and capacity evidence adds a fixed bonus. Trained boost is applied on top of the clipped score.
func (c *Classifier) ScoreCategories(text string) map[domain.ProjectType]float64 {
	lower := normalize(text)
	res := make(map[domain.ProjectType]float64, len(domain.ProjectTypes))
	for _, t := range domain.ProjectTypes {
		rule := categoryRules[t]
		score := 0.0
		for _, kw := range rule.keywords {
			switch {
			case lexicon.ContainsWord(lower, kw):
				score += wholeWordHit
			case len(kw) >= minSubstrLen && strings.Contains(lower, kw):
				score += substringHit
			}
		}
		for _, re := range rule.capacity {
			if re.MatchString(lower) {
				score += capacityBonus
				break
			}
		}
		score = math.Min(score, maxRawCategory)
		if c.booster != nil {
			score = math.Min(score+c.booster.ScoreBoost(text, t), maxBoosted)
		}
		res[t] = round(score)
	}
	return res
}

// ScorePipeline counts announced/under-construction markers against completed markers.
// Ties and texts without any marker get the lenient 0.4, so they pass the default gate.
func (c *Classifier) ScorePipeline(text string) (score float64, completed bool) {
	lower := normalize(text)
	pipeline := 0
	for _, m := range pipelineMarkers {
		if lexicon.ContainsWord(lower, m) {
			pipeline++
		}
	}
	done := 0
	for _, m := range completedMarkers {
		if completedMention(lower, m) {
			done++
		}
	}

	switch {
	case done > 0 && pipeline == 0:
		return 0.0, true
	case pipeline >= 2 && done == 0:
		return 0.9, false
	case pipeline > done:
		return 0.7, false
	case pipeline == done:
		return 0.4, false
	default:
		return 0.1, true
	}
}

// completedMention reports a completed marker not preceded by a future prefix like "to be"
func completedMention(text, marker string) bool {
	for _, idx := range lexicon.WordIndexes(text, marker) {
		future := false
		for _, p := range futurePrefixes {
			if strings.HasSuffix(text[:idx], p) {
				future = true
				break
			}
		}
		if !future {
			return true
		}
	}
	return false
}

// normalize lower-cases text and collapses whitespace
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}
