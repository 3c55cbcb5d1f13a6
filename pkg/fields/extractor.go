// Package fields turns accepted article text into a structured project record.
// Every sub-extraction is independent, a miss or a failure leaves the field at its default.
package fields

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/lexicon"
)

const (
	maxNameLength    = 100
	maxCompanyLength = 50
	locationWindow   = 100
)

// DefaultUSDINR is the approximate exchange rate used to estimate a missing currency
const DefaultUSDINR = 82.5

var (
	sentenceRe    = regexp.MustCompile(`[^.!?\n]+[.!?]?`)
	projectNounRe = regexp.MustCompile(`(?i)\b(?:project|plant|farm|facility|park|factory|gigafactory)\b`)
	corporateRe   = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&.\-]*(?:\s+[A-Z][A-Za-z0-9&.\-]*){0,4})\s+` +
		`(Pvt\.?\s+Ltd\.?|Private\s+Limited|Ltd\.?|Limited|Corp\.?|Corporation|Inc\.?)`)
	districtRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+district\b`)
)

// locationRes holds "in X, State", "at X in State" and "near X in State" per region
var locationRes = func() map[string]*regexp.Regexp {
	res := map[string]*regexp.Regexp{}
	for _, region := range lexicon.Regions() {
		res[region] = regexp.MustCompile(`(?:\bin|\bat|\bnear)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?)` +
			`(?:\s+district)?(?:,\s*|\s+in\s+)` + regexp.QuoteMeta(region) + `\b`)
	}
	return res
}()

// Extractor pulls project fields from text accepted by the classifier
type Extractor struct {
	usdINR float64
	now    func() time.Time
}

// Option customizes the Extractor
type Option func(*Extractor)

// WithClock sets the time source used for relative completion dates and default announcement date
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New makes an extractor. usdINR is the rupees per dollar rate for currency estimation,
// the estimate is a display convenience only.
func New(usdINR float64, opts ...Option) *Extractor {
	if usdINR <= 0 {
		usdINR = DefaultUSDINR
	}
	e := &Extractor{usdINR: usdINR, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds a project record of type t from the article. It never fails.
func (e *Extractor) Extract(c domain.ExtractedContent, t domain.ProjectType) domain.Project {
	p := domain.NewProject(t)
	now := e.now()
	text := c.Text
	lower := strings.ToLower(text)

	p.Source = c.URL
	p.LastUpdated = now
	p.AnnouncementDate = now.Format("2006-01-02")
	if c.Published != nil && !c.Published.IsZero() {
		p.AnnouncementDate = c.Published.Format("2006-01-02")
	}

	safe("name", func() { p.Name = e.Name(text, c.Title) })
	safe("company", func() { p.Company = e.Company(text) })
	safe("location", func() { p.State, p.Location = e.Location(text) })
	safe("capacity", func() { p.Capacity = e.Capacity(text, t) })
	safe("investment", func() { p.InvestmentUSD, p.InvestmentINR = e.Investment(text) })
	safe("completion", func() { p.ExpectedCompletion = e.Completion(text) })
	safe("status", func() { p.Status = e.Status(lower) })
	safe("category", func() { p.Category = e.Category(lower, t) })
	safe("feedstock", func() {
		if t == domain.TypeBiofuel {
			p.FeedstockType = e.Feedstock(lower)
		}
	})
	safe("io", func() { p.Input, p.Output = e.inputOutput(t, p.Category, p.FeedstockType) })
	return p
}

// Name prefers the title, then the first sentence naming a project noun
func (e *Extractor) Name(text, title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return truncate(title, maxNameLength)
	}
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if projectNounRe.MatchString(s) {
			return truncate(strings.TrimSpace(s), maxNameLength)
		}
	}
	return domain.UnnamedProject
}

// Company returns the earliest mentioned known company, else the most frequent corporate-suffix name
func (e *Extractor) Company(text string) string {
	lower := strings.ToLower(text)
	best, bestIdx := "", -1
	for _, name := range lexicon.Companies {
		idx := lexicon.IndexWord(lower, strings.ToLower(name))
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && len(name) > len(best)) {
			best, bestIdx = name, idx
		}
	}
	if best != "" {
		return best
	}

	counts := map[string]int{}
	var order []string
	for _, m := range corporateRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1] + " " + m[2])
		if isGovernment(name) {
			continue
		}
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	if len(order) == 0 {
		return domain.Unknown
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	return truncate(order[0], maxCompanyLength)
}

// Location returns the first mentioned state or union territory and a place name found near it
func (e *Extractor) Location(text string) (state, location string) {
	lower := strings.ToLower(text)
	state, location = domain.Unknown, domain.NotAvailable
	stateIdx := -1
	for _, region := range lexicon.Regions() {
		idx := lexicon.IndexWord(lower, strings.ToLower(region))
		if idx < 0 {
			continue
		}
		if stateIdx < 0 || idx < stateIdx || (idx == stateIdx && len(region) > len(state)) {
			state, stateIdx = region, idx
		}
	}
	if stateIdx < 0 {
		return state, location
	}

	// lower-casing keeps byte offsets for ascii region names, the window is taken from the original text
	from := max(0, stateIdx-locationWindow)
	to := min(len(text), stateIdx+len(state)+locationWindow)
	window := text[from:to]
	if !utf8.ValidString(window) {
		window = strings.ToValidUTF8(window, "")
	}

	// the state name may be written in any case, match it case-insensitively inside the window
	caseFixed := replaceFold(window, state)
	if m := locationRes[state].FindStringSubmatch(caseFixed); m != nil && !strings.EqualFold(m[1], state) {
		return state, m[1]
	}
	if m := districtRe.FindStringSubmatch(window); m != nil {
		return state, m[1]
	}
	return state, location
}

// Capacity applies the type's unit rules in order, the first match wins
func (e *Extractor) Capacity(text string, t domain.ProjectType) domain.Capacity {
	for _, r := range capacityRules[t] {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := parseNumber(m[1])
		if err != nil {
			continue
		}
		return domain.Capacity{Kind: r.kind, Value: roundTo(v*r.factor, 6)}
	}
	return domain.Capacity{Kind: domain.PrimaryCapacityKind(t)}
}

// Investment returns USD millions and INR billions, estimating a missing side with the exchange rate
func (e *Extractor) Investment(text string) (usd, inr float64) {
	usd = firstAmount(text, usdRules)
	inr = firstAmount(text, inrRules)
	switch {
	case usd > 0 && inr == 0:
		inr = usd * e.usdINR / 1000
	case inr > 0 && usd == 0:
		usd = inr * 1000 / e.usdINR
	}
	return roundTo(usd, 2), roundTo(inr, 2)
}

// Completion returns the expected completion as written (year, quarter, fiscal year or month),
// a year computed from "within N years/months", or Unknown
func (e *Extractor) Completion(text string) string {
	for _, re := range completionRules {
		if m := re.FindStringSubmatch(text); m != nil {
			return formatPeriod(m[1])
		}
	}
	if m := relativeCompletion.FindStringSubmatch(text); m != nil {
		count, ok := numberWords[strings.ToLower(m[1])]
		if !ok {
			c, err := strconv.Atoi(m[1])
			if err != nil {
				return domain.Unknown
			}
			count = c
		}
		now := e.now()
		if strings.HasPrefix(strings.ToLower(m[2]), "year") {
			return strconv.Itoa(now.Year() + count)
		}
		return strconv.Itoa(now.AddDate(0, count, 0).Year())
	}
	return domain.Unknown
}

// Status returns the first status in priority order whose keyword is present, default Announced
func (e *Extractor) Status(lower string) string {
	for _, r := range statusRules {
		for _, kw := range r.keywords {
			if lexicon.ContainsWord(lower, kw) {
				return r.status
			}
		}
	}
	return domain.StatusAnnounced
}

// Category picks the business category by keyword count, hydrogen and biofuel are always Production
func (e *Extractor) Category(lower string, t domain.ProjectType) domain.Category {
	if t == domain.TypeHydrogen || t == domain.TypeBiofuel {
		return domain.CategoryProduction
	}
	best, bestCount := domain.DefaultCategory(t), 0
	for _, cat := range categoryOrder {
		count := 0
		for _, kw := range categoryKeywords[cat] {
			count += lexicon.CountWord(lower, kw)
		}
		if count > bestCount {
			best, bestCount = cat, count
		}
	}
	return best
}

// Feedstock returns the first known biofuel feedstock mentioned
func (e *Extractor) Feedstock(lower string) string {
	for _, f := range feedstocks {
		if lexicon.ContainsWord(lower, f) {
			return titleCase(f)
		}
	}
	return domain.NotAvailable
}

func (e *Extractor) inputOutput(t domain.ProjectType, cat domain.Category, feedstock string) (in, out string) {
	pair, ok := inputOutput[t]
	if !ok {
		return domain.NotAvailable, domain.NotAvailable
	}
	if mpair, ok := manufacturingIO[t]; ok && cat == domain.CategoryManufacturing {
		pair = mpair
	}
	in, out = pair[0], pair[1]
	if t == domain.TypeBiofuel && feedstock != domain.NotAvailable && feedstock != "" {
		in = feedstock
	}
	return in, out
}

func firstAmount(text string, rules []currencyScale) float64 {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, err := parseNumber(m[1]); err == nil {
			return v * r.factor
		}
	}
	return 0
}

// safe runs a sub-extraction, a panic leaves the field untouched
func safe(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[WARN] field extraction %s failed: %v", name, r)
		}
	}()
	fn()
}

func isGovernment(name string) bool {
	lower := strings.ToLower(name)
	for _, g := range lexicon.GovernmentTerms {
		if lexicon.ContainsWord(lower, g) {
			return true
		}
	}
	return false
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit]))
}

// formatPeriod normalizes "q3 2025", "fy 2026", "december 2025" and plain years
func formatPeriod(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "q") || strings.HasPrefix(lower, "fy") {
		return strings.ToUpper(s)
	}
	return titleCase(s)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// replaceFold rewrites case variants of term in s to the term's canonical spelling
func replaceFold(s, term string) string {
	lowerS, lowerT := strings.ToLower(s), strings.ToLower(term)
	if len(lowerS) != len(s) || len(lowerT) != len(term) {
		return s
	}
	var b strings.Builder
	last := 0
	for _, idx := range lexicon.WordIndexes(lowerS, lowerT) {
		b.WriteString(s[last:idx])
		b.WriteString(term)
		last = idx + len(term)
	}
	b.WriteString(s[last:])
	return b.String()
}
