package fields

import (
	"regexp"

	"github.com/umputun/renewscope/pkg/domain"
)

// capacityRule maps a unit pattern to a capacity kind and the factor converting the
// first captured number into the kind's canonical unit
type capacityRule struct {
	kind   domain.CapacityKind
	re     *regexp.Regexp
	factor float64
}

// n captures a number with lakh grouping (2,50,000) or thousands grouping (250,000)
const n = `(\d{1,3}(?:,\d{2})*,\d{3}(?:\.\d+)?|\d+(?:,\d{3})*(?:\.\d+)?)\s*`

func rule(kind domain.CapacityKind, pattern string, factor float64) capacityRule {
	return capacityRule{kind: kind, re: regexp.MustCompile(`(?i)` + pattern), factor: factor}
}

// generationRules are shared by solar, wind and hydro, GW first so "5 GW" never falls to the MW rule
var generationRules = []capacityRule{
	rule(domain.KindGeneration, n+`(?:gw|gigawatts?)p?\b`, 1),
	rule(domain.KindGeneration, n+`(?:mw|megawatts?)p?\b`, 0.001),
}

// capacityRules lists unit patterns per type, specific rules first, first match wins
var capacityRules = map[domain.ProjectType][]capacityRule{
	domain.TypeSolar: append([]capacityRule{
		rule(domain.KindCellModule, n+`(?:gw|gigawatts?)\s+(?:of\s+)?(?:solar\s+)?(?:cells?|modules?|wafers?|ingots?)\b`, 1),
		rule(domain.KindCellModule, n+`(?:mw|megawatts?)\s+(?:of\s+)?(?:solar\s+)?(?:cells?|modules?|wafers?|ingots?)\b`, 0.001),
		rule(domain.KindCellModule, `(?:cell|module)\s+(?:manufacturing\s+)?capacity\s+of\s+`+n+`(?:gw|gigawatts?)\b`, 1),
		rule(domain.KindCellModule, `(?:cell|module)\s+(?:manufacturing\s+)?capacity\s+of\s+`+n+`(?:mw|megawatts?)\b`, 0.001),
	}, generationRules...),
	domain.TypeWind:  generationRules,
	domain.TypeHydro: generationRules,
	domain.TypeBattery: {
		rule(domain.KindStorage, n+`(?:gwh|gigawatt[- ]hours?)\b`, 1),
		rule(domain.KindStorage, n+`(?:mwh|megawatt[- ]hours?)\b`, 0.001),
		rule(domain.KindCellModule, n+`(?:gw|gigawatts?)\s+(?:of\s+)?(?:battery\s+)?(?:cells?|cell manufacturing)\b`, 1),
		rule(domain.KindStorage, n+`(?:gw|gigawatts?)\b`, 1),
		rule(domain.KindStorage, n+`(?:mw|megawatts?)\b`, 0.001),
	},
	domain.TypeHydrogen: {
		rule(domain.KindElectrolyzer, n+`(?:gw|gigawatts?)\s+(?:of\s+)?(?:electroly[sz]er|electrolysis)`, 1000),
		rule(domain.KindElectrolyzer, n+`(?:mw|megawatts?)\s+(?:of\s+)?(?:electroly[sz]er|electrolysis)`, 1),
		rule(domain.KindElectrolyzer, `electroly[sz]er\s+capacity\s+of\s+`+n+`(?:gw|gigawatts?)\b`, 1000),
		rule(domain.KindElectrolyzer, `electroly[sz]er\s+capacity\s+of\s+`+n+`(?:mw|megawatts?)\b`, 1),
		rule(domain.KindHydrogenProduction, n+`(?:tpd|tonnes?\s+per\s+day|tons?\s+per\s+day)\b`, 1),
		rule(domain.KindHydrogenProduction, n+`(?:mtpa|million\s+tonnes?\s+per\s+(?:annum|year))\b`, 1_000_000.0/365),
		rule(domain.KindHydrogenProduction, n+`(?:ktpa|thousand\s+tonnes?\s+per\s+(?:annum|year))\b`, 1000.0/365),
		rule(domain.KindHydrogenProduction, n+`(?:tonnes?|tons?)\s+(?:per|a|/)\s*(?:annum|year)\b`, 1.0/365),
	},
	domain.TypeBiofuel: {
		rule(domain.KindBiofuel, n+`(?:klpd|kl/day|kilo\s*lit(?:re|er)s?\s+per\s+day)\b`, 0.365),
		rule(domain.KindBiofuel, n+`million\s+lit(?:re|er)s?\s+(?:per|a|/)\s*day\b`, 365),
		rule(domain.KindBiofuel, n+`million\s+lit(?:re|er)s?\b`, 1),
		rule(domain.KindBiofuel, n+`(?:crore\s+lit(?:re|er)s?)\b`, 10),
	},
}

// currencyScale converts an amount with a scale word into the canonical unit of its currency
type currencyScale struct {
	re     *regexp.Regexp
	factor float64
}

// usdRules normalize to USD millions
var usdRules = []currencyScale{
	{re: regexp.MustCompile(`(?i)(?:\$|usd|us\$)\s*` + n + `(?:billion|bn)\b`), factor: 1000},
	{re: regexp.MustCompile(`(?i)(?:\$|usd|us\$)\s*` + n + `(?:million|mn)\b`), factor: 1},
	{re: regexp.MustCompile(`(?i)` + n + `(?:billion|bn)\s+(?:us\s+)?dollars?\b`), factor: 1000},
	{re: regexp.MustCompile(`(?i)` + n + `(?:million|mn)\s+(?:us\s+)?dollars?\b`), factor: 1},
}

// inrRules normalize to INR billions
var inrRules = []currencyScale{
	{re: regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*` + n + `lakh\s+crores?\b`), factor: 1000},
	{re: regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*` + n + `crores?\b`), factor: 0.01},
	{re: regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*` + n + `lakhs?\b`), factor: 0.0001},
	{re: regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*` + n + `(?:billion|bn)\b`), factor: 1},
	{re: regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*` + n + `(?:million|mn)\b`), factor: 0.001},
	{re: regexp.MustCompile(`(?i)` + n + `crores?\s+(?:rupees|inr)\b`), factor: 0.01},
	{re: regexp.MustCompile(`(?i)` + n + `(?:billion|bn)\s+rupees\b`), factor: 1},
}

// statusRules in priority order, the first matching status wins
var statusRules = []struct {
	status   string
	keywords []string
}{
	{domain.StatusUnderConstruction, []string{"under construction", "construction has begun", "construction began",
		"construction work", "being built", "broke ground", "groundbreaking"}},
	{domain.StatusLandAcquisition, []string{"land acquisition", "acquiring land", "land allotted", "land allotment",
		"acquired land"}},
	{domain.StatusApproved, []string{"approved", "approval granted", "received approval", "cleared by", "sanctioned",
		"letter of award"}},
	{domain.StatusPlanning, []string{"planning", "proposed", "feasibility", "detailed project report", "dpr", "plans to"}},
	{domain.StatusPartiallyCommissioned, []string{"partially commissioned", "first phase commissioned",
		"phase 1 commissioned", "phase i commissioned"}},
}

// categoryKeywords decide the business category by keyword count
var categoryKeywords = map[domain.Category][]string{
	domain.CategoryManufacturing: {"manufacturing", "factory", "gigafactory", "production line", "assembly",
		"fabrication", "module plant", "cell plant", "manufacture"},
	domain.CategoryGeneration: {"generation", "power plant", "solar park", "wind farm", "power project",
		"ipp", "tariff", "ppa", "power purchase"},
	domain.CategoryStorage: {"storage", "bess", "battery energy storage", "pumped storage", "energy storage"},
	domain.CategoryProduction: {"production", "produce", "output", "refinery", "electrolyser", "electrolyzer"},
}

// categoryOrder resolves count ties
var categoryOrder = []domain.Category{
	domain.CategoryManufacturing, domain.CategoryGeneration, domain.CategoryStorage, domain.CategoryProduction,
}

// inputOutput holds typical input and output per type
var inputOutput = map[domain.ProjectType][2]string{
	domain.TypeSolar:    {"Sunlight", "Electricity"},
	domain.TypeWind:     {"Wind", "Electricity"},
	domain.TypeHydro:    {"Water", "Electricity"},
	domain.TypeBattery:  {"Electricity", "Stored Electricity"},
	domain.TypeHydrogen: {"Water, Electricity", "Green Hydrogen"},
	domain.TypeBiofuel:  {"Biomass", "Biofuel"},
}

// manufacturingIO overrides input and output for manufacturing projects
var manufacturingIO = map[domain.ProjectType][2]string{
	domain.TypeSolar:   {"Polysilicon, Wafers", "Solar Cells, Modules"},
	domain.TypeWind:    {"Steel, Composites", "Wind Turbines"},
	domain.TypeBattery: {"Lithium, Cathode Materials", "Battery Cells"},
}

var feedstocks = []string{
	"agricultural residue", "agricultural waste", "crop residue", "municipal solid waste", "municipal waste",
	"forest residue", "rice straw", "paddy straw", "sugarcane", "molasses", "bagasse", "maize", "corn",
	"wheat", "rice", "sorghum", "barley", "press mud", "cattle dung", "algae", "used cooking oil", "waste",
}

const months = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// completionLead matches "expected to commence operations by" and similar, up to three words before the preposition
const completionLead = `(?i)(?:expected|scheduled|planned|slated|targeted|set|due)\s+(?:to\s+(?:\w+\s+){1,3}|for\s+\w+\s+)?` +
	`(?:by|in|before|within)\s+(?:the\s+end\s+of\s+)?`

// completionRules capture the completion time in group 1, first match wins
var completionRules = []*regexp.Regexp{
	regexp.MustCompile(completionLead + `(` + months + `\s+(?:20\d{2}))`),
	regexp.MustCompile(completionLead + `(q[1-4]\s*(?:of\s+)?(?:fy\s*)?(?:20\d{2}))`),
	regexp.MustCompile(completionLead + `(fy\s*(?:20)?\d{2}(?:-\d{2})?)`),
	regexp.MustCompile(completionLead + `(20\d{2})\b`),
	regexp.MustCompile(`(?i)(?:completion|commissioning|operational)\s+(?:date\s+)?(?:is\s+)?(?:by|in)\s+(20\d{2})\b`),
}

var relativeCompletion = regexp.MustCompile(`(?i)within\s+(\d+|one|two|three|four|five|six)\s+(years?|months?)`)

var numberWords = map[string]int{"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6}
