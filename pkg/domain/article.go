package domain

import (
	"time"
)

// MinTextLength is the minimum body length for extracted content to be usable
const MinTextLength = 200

// ExtractedContent is the readable part of an article page
type ExtractedContent struct {
	URL       string
	Title     string
	Text      string
	Published *time.Time
	Strategy  string // name of the extraction strategy that produced the text
}

// Usable reports whether the body text is long enough to classify
func (c *ExtractedContent) Usable() bool {
	return c != nil && len(c.Text) >= MinTextLength
}

// Scores holds the three relevance axes computed for a text
type Scores struct {
	Country    float64                 `json:"country"`
	Categories map[ProjectType]float64 `json:"categories"`
	Pipeline   float64                 `json:"pipeline"`
	Completed  bool                    `json:"completed"`
}

// Best returns the highest scoring category, ties resolved by ProjectTypes order
func (s Scores) Best() (ProjectType, float64) {
	var best ProjectType
	bestScore := -1.0
	for _, t := range ProjectTypes {
		if v, ok := s.Categories[t]; ok && v > bestScore {
			best, bestScore = t, v
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}

// RejectReason tells why an article did not pass the relevance gate
type RejectReason string

// rejection reasons
const (
	RejectCountry    RejectReason = "low_country_score"
	RejectCategory   RejectReason = "low_category_score"
	RejectCompleted  RejectReason = "completed_project"
	RejectExtraction RejectReason = "extraction_failed"
)

// Rejection is a diagnostic record of an article that was not turned into a project
type Rejection struct {
	ID        int64        `json:"id"`
	URL       string       `json:"url"`
	Title     string       `json:"title"`
	Snippet   string       `json:"snippet"`
	Scores    Scores       `json:"scores"`
	Reason    RejectReason `json:"reason"`
	Review    string       `json:"review,omitempty"` // free-form verdict added by a reviewer, empty until reviewed
	CreatedAt time.Time    `json:"created_at"`
}

// MaxSnippetLength limits the text stored with a rejection
const MaxSnippetLength = 500

// Snippet returns the first MaxSnippetLength runes of text
func Snippet(text string) string {
	r := []rune(text)
	if len(r) <= MaxSnippetLength {
		return text
	}
	return string(r[:MaxSnippetLength])
}

// RejectionStats summarizes the diagnostic sink
type RejectionStats struct {
	Total         int                  `json:"total"`
	ByReason      map[RejectReason]int `json:"by_reason"`
	TopCategories map[ProjectType]int  `json:"top_categories"`
}
