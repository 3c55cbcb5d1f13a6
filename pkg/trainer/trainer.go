// Package trainer learns per-type vocabulary from example project spreadsheets and turns it into
// a category score boost for the classifier. The profile only grows, it is persisted to a JSON side file.
package trainer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pkgz/lgr"
	"github.com/xuri/excelize/v2"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/lexicon"
)

const (
	keywordBoost = 0.1
	phraseBoost  = 0.2
	maxBoost     = 0.95
)

var (
	wordRe   = regexp.MustCompile(`\b\w+\b`)
	parensRe = regexp.MustCompile(`\([^)]*\)`)
)

var stopWords = map[string]bool{
	"project": true, "power": true, "energy": true, "plant": true, "system": true, "a": true,
	"the": true, "of": true, "in": true, "at": true, "and": true, "for": true, "to": true, "by": true,
	"na": true, "unknown": true,
}

// columnAliases maps normalized alternative header names to canonical column names
var columnAliases = map[string]string{
	"project_type":     "type",
	"energy_type":      "type",
	"technology":       "type",
	"project_name":     "name",
	"title":            "name",
	"organization":     "company",
	"developer":        "company",
	"company_name":     "company",
	"project_category": "category",
}

// metricColumns lists capacity-like columns recorded as metrics per type
var metricColumns = map[domain.ProjectType][]string{
	domain.TypeSolar:    {"generation_capacity", "cell_capacity", "module_capacity", "cell_module_capacity"},
	domain.TypeWind:     {"generation_capacity"},
	domain.TypeHydro:    {"generation_capacity"},
	domain.TypeBattery:  {"storage_capacity"},
	domain.TypeHydrogen: {"electrolyzer_capacity", "hydrogen_production"},
	domain.TypeBiofuel:  {"biofuel_capacity"},
}

// Stats summarizes an ingestion or the whole profile
type Stats struct {
	RowsRead int                        `json:"rows_read"`
	RowsUsed int                        `json:"rows_used"`
	Keywords map[domain.ProjectType]int `json:"keywords"`
	Phrases  map[domain.ProjectType]int `json:"phrases"`
}

// Trainer holds the training profile and its side file location. Safe for concurrent use.
type Trainer struct {
	path    string
	mu      sync.RWMutex
	profile domain.TrainingProfile
}

// New makes a trainer backed by the profile file at path, loading it if present.
// Empty path keeps the profile in memory only.
func New(path string) (*Trainer, error) {
	profile, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Trainer{path: path, profile: profile}, nil
}

// Load reads a profile file, missing file results in an empty profile
func Load(path string) (domain.TrainingProfile, error) {
	profile := domain.TrainingProfile{}
	if path == "" {
		return profile, nil
	}
	data, err := os.ReadFile(path) // nolint gosec
	if errors.Is(err, os.ErrNotExist) {
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read training profile: %w", err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse training profile %s: %w", path, err)
	}
	for _, pt := range domain.ProjectTypes {
		if profile.Category(pt) != nil {
			profile.Ensure(pt)
		}
	}
	return profile, nil
}

// Ingest reads an xlsx or csv file and adds its rows to the profile
func (t *Trainer) Ingest(ctx context.Context, path string) (Stats, error) {
	fh, err := os.Open(path) // nolint gosec
	if err != nil {
		return Stats{}, fmt.Errorf("open training file: %w", err)
	}
	defer fh.Close()
	return t.IngestReader(ctx, filepath.Base(path), fh)
}

// IngestReader reads training rows from r, the format is picked by the name's extension
func (t *Trainer) IngestReader(ctx context.Context, name string, r io.Reader) (Stats, error) {
	sheets, err := readSheets(ctx, name, r)
	if err != nil {
		return Stats{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	stats := newStats()
	for _, s := range sheets {
		t.ingestRows(s.name, s.rows, &stats)
	}
	if err := t.save(); err != nil {
		return stats, err
	}
	lgr.Printf("[INFO] training ingested %s, rows read %d, used %d", name, stats.RowsRead, stats.RowsUsed)
	return stats, nil
}

// IngestRows adds rows of a single sheet, the first row is the header
func (t *Trainer) IngestRows(sheetName string, rows [][]string) (Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := newStats()
	t.ingestRows(sheetName, rows, &stats)
	if err := t.save(); err != nil {
		return stats, err
	}
	return stats, nil
}

// ScoreBoost returns the trained score increment of text for the type, 0 for an untrained type
func (t *Trainer) ScoreBoost(text string, pt domain.ProjectType) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cp := t.profile.Category(pt)
	if cp == nil || len(cp.Keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	score := 0.0
	for kw := range cp.Keywords {
		if lexicon.ContainsWord(lower, kw) {
			score += keywordBoost
		}
	}
	for ph := range cp.Phrases {
		if strings.Contains(lower, ph) {
			score += phraseBoost
		}
	}
	return math.Min(score, maxBoost)
}

// Stats returns keyword and phrase counts of the current profile
func (t *Trainer) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stats := newStats()
	for _, pt := range domain.ProjectTypes {
		if cp := t.profile.Category(pt); cp != nil {
			stats.Keywords[pt] = len(cp.Keywords)
			stats.Phrases[pt] = len(cp.Phrases)
		}
	}
	return stats
}

// Keywords returns sorted keywords learned for the type
func (t *Trainer) Keywords(pt domain.ProjectType) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if cp := t.profile.Category(pt); cp != nil {
		return cp.Keywords.Sorted()
	}
	return nil
}

// ingestRows updates the profile from one sheet, caller holds the lock
func (t *Trainer) ingestRows(sheetName string, rows [][]string, stats *Stats) {
	if len(rows) < 2 {
		return
	}
	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col := NormalizeHeader(h)
		if alias, ok := columnAliases[col]; ok {
			col = alias
		}
		if _, dup := header[col]; !dup && col != "" {
			header[col] = i
		}
	}
	sheetType, sheetTypeOK := domain.ParseProjectType(sheetName)

	cell := func(row []string, col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for _, row := range rows[1:] {
		stats.RowsRead++
		pt, ok := domain.ParseProjectType(cell(row, "type"))
		if !ok {
			pt, ok = sheetType, sheetTypeOK
		}
		if !ok {
			continue
		}
		name, company := cell(row, "name"), cell(row, "company")
		if name == "" && company == "" {
			continue
		}
		stats.RowsUsed++

		cp := t.profile.Ensure(pt)
		for _, kw := range Tokens(name) {
			cp.Keywords.Add(kw)
		}
		for _, ph := range Phrases(name) {
			cp.Phrases.Add(ph)
		}
		if c := strings.ToLower(company); c != "" && !stopWords[c] {
			cp.Keywords.Add(c)
		}
		if c := strings.ToLower(cell(row, "category")); c != "" && !stopWords[c] {
			cp.Keywords.Add(c)
		}
		for _, m := range metricColumns[pt] {
			raw := strings.ReplaceAll(cell(row, m), ",", "")
			if raw == "" {
				continue
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				cp.Metrics[m] = append(cp.Metrics[m], v)
			}
		}
	}

	for _, pt := range domain.ProjectTypes {
		if cp := t.profile.Category(pt); cp != nil {
			stats.Keywords[pt] = len(cp.Keywords)
			stats.Phrases[pt] = len(cp.Phrases)
		}
	}
}

// save writes the profile to a temp file and renames it over the side file
func (t *Trainer) save() error {
	if t.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(t.profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal training profile: %w", err)
	}
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("make training dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".profile-*.json")
	if err != nil {
		return fmt.Errorf("create temp profile: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename training profile: %w", err)
	}
	return nil
}

type sheet struct {
	name string
	rows [][]string
}

func readSheets(ctx context.Context, name string, r io.Reader) ([]sheet, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", name, err)
		}
		return []sheet{{name: strings.TrimSuffix(name, filepath.Ext(name)), rows: rows}}, nil
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", name, err)
		}
		defer f.Close()
		var res []sheet
		for _, sn := range f.GetSheetList() {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("read workbook %s: %w", name, err)
			}
			rows, err := f.GetRows(sn)
			if err != nil {
				lgr.Printf("[WARN] can't read sheet %q of %s: %v", sn, name, err)
				continue
			}
			res = append(res, sheet{name: sn, rows: rows})
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported training file type %q", ext)
	}
}

// NormalizeHeader lower-cases a column header, splits camelCase, drops parenthesized units
// and turns spaces and dashes into underscores: "Generation Capacity (GW)" and
// "generationCapacity" both become "generation_capacity".
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(parensRe.ReplaceAllString(h, ""))
	var b strings.Builder
	prevLower := false
	for _, r := range h {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '/':
			b.WriteRune('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	res := b.String()
	for strings.Contains(res, "__") {
		res = strings.ReplaceAll(res, "__", "_")
	}
	return strings.Trim(res, "_")
}

// Tokens returns lower-cased words of s without stop words and single characters
func Tokens(s string) []string {
	var res []string
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if len([]rune(w)) < 2 || stopWords[w] {
			continue
		}
		res = append(res, w)
	}
	return res
}

// Phrases returns adjacent lower-cased word pairs of s
func Phrases(s string) []string {
	words := wordRe.FindAllString(strings.ToLower(s), -1)
	res := make([]string, 0, len(words))
	for i := 1; i < len(words); i++ {
		res = append(res, words[i-1]+" "+words[i])
	}
	return res
}

func newStats() Stats {
	return Stats{Keywords: map[domain.ProjectType]int{}, Phrases: map[domain.ProjectType]int{}}
}
