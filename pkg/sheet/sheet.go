// Package sheet exports stored projects to an xlsx workbook, one sheet per project type plus a
// sources sheet, and imports projects back from workbooks of the same layout.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-pkgz/lgr"
	"github.com/xuri/excelize/v2"

	"github.com/umputun/renewscope/pkg/domain"
)

// SourcesSheet is the name of the sheet listing news sources
const SourcesSheet = "Sources"

// column headers of project sheets, in order
var projectHeaders = []string{
	"Index", "Type", "Name", "Company", "Ownership", "PLI/Non-PLI", "State", "Location",
	"Announcement Date", "Category", "Input", "Output",
	"Generation Capacity (GW)", "Storage Capacity (GWh)", "Cell/Module Capacity (GW)",
	"Electrolyzer Capacity (MW)", "Hydrogen Production (tons/day)", "Biofuel Capacity (ML/year)",
	"Feedstock Type", "Status", "Land Acquisition", "Power Approval", "Environment Clearance", "ALMM Listing",
	"Investment (USD Million)", "Investment (INR Billion)", "Expected Completion", "Last Updated", "Source",
}

var sourceHeaders = []string{"Source URL", "Name", "Enabled", "Last Checked", "Projects Found", "Last Error"}

// capacity column of each kind
var kindHeaders = map[domain.CapacityKind]string{
	domain.KindGeneration:         "Generation Capacity (GW)",
	domain.KindStorage:            "Storage Capacity (GWh)",
	domain.KindCellModule:         "Cell/Module Capacity (GW)",
	domain.KindElectrolyzer:       "Electrolyzer Capacity (MW)",
	domain.KindHydrogenProduction: "Hydrogen Production (tons/day)",
	domain.KindBiofuel:            "Biofuel Capacity (ML/year)",
}

// headerAliases maps alternative normalized headers to the normalized canonical one
var headerAliases = map[string]string{
	"project_type":        "type",
	"project_name":        "name",
	"developer":           "company",
	"pli":                 "pli_non_pli",
	"generation_capacity": "generation_capacity_gw",
	"storage_capacity":    "storage_capacity_gwh",
	"cell_capacity_gw":    "cell_module_capacity_gw",
	"module_capacity_gw":  "cell_module_capacity_gw",
	"cell_capacity_gwh":   "cell_module_capacity_gw",
	"module_capacity_gwh": "cell_module_capacity_gw",
	"electrolyzer":        "electrolyzer_capacity_mw",
	"investment_usd":      "investment_usd_million",
	"investment_inr":      "investment_inr_billion",
	"source_url":          "source",
	"url":                 "source",
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// SheetName returns the workbook sheet used for a project type
func SheetName(t domain.ProjectType) string {
	if t == domain.TypeHydrogen {
		return "Green Hydrogen Projects"
	}
	return string(t) + " Projects"
}

// Export writes projects grouped by type and the source list as an xlsx workbook
func Export(w io.Writer, projects []domain.Project, sources []domain.Source) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("make header style: %w", err)
	}

	byType := map[domain.ProjectType][]domain.Project{}
	for _, p := range projects {
		byType[p.Type] = append(byType[p.Type], p)
	}

	for i, t := range domain.ProjectTypes {
		name := SheetName(t)
		if err := addSheet(f, i == 0, name, projectHeaders, bold); err != nil {
			return err
		}
		for j, p := range byType[t] {
			if err := setRow(f, name, j+2, projectRow(j+1, p)); err != nil {
				return err
			}
		}
	}

	if err := addSheet(f, false, SourcesSheet, sourceHeaders, bold); err != nil {
		return err
	}
	for j, s := range sources {
		if err := setRow(f, SourcesSheet, j+2, sourceRow(s)); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Import reads projects from every sheet except the sources one. Rows without a name and
// a known type are skipped. The type comes from the Type column or, failing that, the sheet name.
func Import(r io.Reader) ([]domain.Project, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var res []domain.Project
	for _, sn := range f.GetSheetList() {
		if strings.EqualFold(sn, SourcesSheet) {
			continue
		}
		rows, err := f.GetRows(sn)
		if err != nil {
			lgr.Printf("[WARN] can't read sheet %q: %v", sn, err)
			continue
		}
		projects, skipped := importRows(sn, rows)
		if skipped > 0 {
			lgr.Printf("[DEBUG] sheet %q: %d rows skipped", sn, skipped)
		}
		res = append(res, projects...)
	}
	if len(res) == 0 {
		return nil, errors.New("no projects found in workbook")
	}
	return res, nil
}

func importRows(sheetName string, rows [][]string) (projects []domain.Project, skipped int) {
	if len(rows) < 2 {
		return nil, 0
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		key := headerKey(h)
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	sheetType, _ := domain.ParseProjectType(sheetName)

	for _, row := range rows[1:] {
		get := func(header string) string {
			idx, ok := cols[headerKey(header)]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		pt, ok := domain.ParseProjectType(get("Type"))
		if !ok {
			pt = sheetType
		}
		name := get("Name")
		if pt == "" || name == "" {
			skipped++
			continue
		}

		p := domain.NewProject(pt)
		p.Name = name
		text(&p.Company, get("Company"))
		text(&p.Ownership, get("Ownership"))
		text(&p.PLI, get("PLI/Non-PLI"))
		text(&p.State, get("State"))
		text(&p.Location, get("Location"))
		if d := get("Announcement Date"); d != domain.NotAvailable {
			p.AnnouncementDate = d
		}
		if c := get("Category"); c != "" && c != domain.NotAvailable {
			p.Category = domain.Category(c)
		}
		text(&p.Input, get("Input"))
		text(&p.Output, get("Output"))
		text(&p.FeedstockType, get("Feedstock Type"))
		text(&p.Status, get("Status"))
		text(&p.LandAcquisition, get("Land Acquisition"))
		text(&p.PowerApproval, get("Power Approval"))
		text(&p.EnvironmentClearance, get("Environment Clearance"))
		text(&p.ALMMListing, get("ALMM Listing"))
		p.InvestmentUSD = number(get("Investment (USD Million)"))
		p.InvestmentINR = number(get("Investment (INR Billion)"))
		text(&p.ExpectedCompletion, get("Expected Completion"))
		p.Source = get("Source")
		if lu := get("Last Updated"); lu != "" && lu != domain.NotAvailable {
			if ts, err := dateparse.ParseAny(lu); err == nil {
				p.LastUpdated = ts
			}
		}

		// first non-zero capacity allowed for the type, primary kind otherwise
		for _, kind := range domain.CapacityKinds(pt) {
			if v := number(get(kindHeaders[kind])); v > 0 {
				p.Capacity = domain.Capacity{Kind: kind, Value: v}
				break
			}
		}
		projects = append(projects, p)
	}
	return projects, skipped
}

func addSheet(f *excelize.File, first bool, name string, headers []string, style int) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %s: %w", name, err)
	}
	if err := setRow(f, name, 1, toCells(headers)); err != nil {
		return err
	}
	if err := f.SetRowStyle(name, 1, 1, style); err != nil {
		return fmt.Errorf("style header of %s: %w", name, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(name, "A", lastCol, 20); err != nil {
		return fmt.Errorf("set width of %s: %w", name, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func projectRow(index int, p domain.Project) []interface{} {
	capacity := func(kind domain.CapacityKind) float64 {
		if p.Capacity.Kind == kind {
			return p.Capacity.Value
		}
		return 0
	}
	lastUpdated := domain.NotAvailable
	if !p.LastUpdated.IsZero() {
		lastUpdated = p.LastUpdated.Format("2006-01-02")
	}
	return []interface{}{
		index, string(p.Type), p.Name, p.Company, p.Ownership, p.PLI, p.State, p.Location,
		orNA(p.AnnouncementDate), orNA(string(p.Category)), p.Input, p.Output,
		capacity(domain.KindGeneration), capacity(domain.KindStorage), capacity(domain.KindCellModule),
		capacity(domain.KindElectrolyzer), capacity(domain.KindHydrogenProduction), capacity(domain.KindBiofuel),
		p.FeedstockType, p.Status, p.LandAcquisition, p.PowerApproval, p.EnvironmentClearance, p.ALMMListing,
		p.InvestmentUSD, p.InvestmentINR, p.ExpectedCompletion, lastUpdated, p.Source,
	}
}

func sourceRow(s domain.Source) []interface{} {
	lastChecked := "Never"
	if s.LastChecked != nil {
		lastChecked = s.LastChecked.UTC().Format(time.DateTime)
	}
	return []interface{}{s.URL, s.Name, s.Enabled, lastChecked, s.ProjectsFound, s.LastError}
}

func toCells(vals []string) []interface{} {
	res := make([]interface{}, len(vals))
	for i, v := range vals {
		res[i] = v
	}
	return res
}

// headerKey normalizes a header keeping unit words: "Investment (USD Million)" is "investment_usd_million"
func headerKey(h string) string {
	return strings.Trim(nonAlnumRe.ReplaceAllString(strings.ToLower(h), "_"), "_")
}

// text sets dst unless v is empty
func text(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}

func number(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
