package classifier

import (
	"regexp"

	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/lexicon"
)

// countryTier is a group of markers contributing a fixed increment once any of them matches
type countryTier struct {
	name   string
	weight float64
	terms  []string // lower-cased
}

var primaryMarkers = []string{
	"india", "indian", "bharat", "government of india", "govt of india", "union government",
	"central government", "mnre", "ministry of new and renewable energy", "ministry of power",
	"seci", "solar energy corporation of india", "ireda", "eesl", "niti aayog",
	"central electricity authority", "pm-kusum", "pm kusum", "pli scheme",
	"production linked incentive", "almm", "prime minister modi", "pm modi", "narendra modi",
}

var currencyMarkers = []string{"rupee", "rupees", "rs.", "rs ", "inr", "crore", "crores", "lakh", "₹"}

// buildCountryTiers assembles the tier table, states and cities share one tier
func buildCountryTiers() []countryTier {
	places := append(lexicon.Lower(lexicon.Regions()), lexicon.Lower(lexicon.Cities)...)
	return []countryTier{
		{name: "primary", weight: 0.5, terms: primaryMarkers},
		{name: "region", weight: 0.3, terms: places},
		{name: "currency", weight: 0.2, terms: currencyMarkers},
		{name: "company", weight: 0.2, terms: lexicon.Lower(lexicon.Companies)},
	}
}

// countryReference enumerates canonical domain terms, used for the similarity refinement
const countryReference = "india indian renewable energy project mnre seci ntpc gujarat rajasthan " +
	"tamil nadu karnataka maharashtra andhra pradesh solar wind hydro battery storage green hydrogen " +
	"biofuel capacity mw gw crore rupees announced developer"

// categoryRule holds keywords and capacity evidence patterns for one project type
type categoryRule struct {
	keywords []string // lower-cased
	capacity []*regexp.Regexp
}

const num = `\d+(?:\.\d+)?\s*`

var categoryRules = map[domain.ProjectType]categoryRule{
	domain.TypeSolar: {
		keywords: []string{"solar", "photovoltaic", "solar pv", "solar park", "solar plant", "solar module",
			"solar cell", "solar panel", "wafer", "polysilicon", "ingot", "topcon", "rooftop solar",
			"floating solar", "agrivoltaic", "heterojunction", "solar manufacturing"},
		capacity: []*regexp.Regexp{
			regexp.MustCompile(num + `(?:gw|mw|kw)p?\b[^.]{0,40}\b(?:solar|photovoltaic|pv)\b`),
			regexp.MustCompile(`\bsolar\b[^.]{0,40}\b` + num + `(?:gw|mw)p?\b`),
		},
	},
	domain.TypeWind: {
		keywords: []string{"wind", "wind farm", "wind turbine", "wind power", "offshore wind", "onshore wind",
			"wind energy", "repowering", "wind-solar hybrid"},
		capacity: []*regexp.Regexp{
			regexp.MustCompile(num + `(?:gw|mw)\b[^.]{0,40}\bwind\b`),
			regexp.MustCompile(`\bwind\b[^.]{0,40}\b` + num + `(?:gw|mw)\b`),
		},
	},
	domain.TypeHydro: {
		keywords: []string{"hydro", "hydropower", "hydroelectric", "hydel", "pumped storage", "pumped hydro",
			"small hydro", "run-of-river", "dam", "reservoir"},
		capacity: []*regexp.Regexp{
			regexp.MustCompile(num + `(?:gw|mw)\b[^.]{0,40}\b(?:hydro(?:power|electric)?|hydel|pumped storage)\b`),
			regexp.MustCompile(`\b(?:hydro(?:power|electric)?|hydel|pumped storage)\b[^.]{0,40}\b` + num + `(?:gw|mw)\b`),
		},
	},
	domain.TypeBattery: {
		keywords: []string{"battery", "batteries", "bess", "battery energy storage", "energy storage",
			"lithium-ion", "lithium ion", "cell manufacturing", "gigafactory", "advanced chemistry cell",
			"storage system", "sodium-ion"},
		capacity: []*regexp.Regexp{
			regexp.MustCompile(num + `(?:gwh|mwh)\b`),
			regexp.MustCompile(num + `(?:gw|mw)\b[^.]{0,40}\b(?:battery|bess|storage)\b`),
		},
	},
	domain.TypeHydrogen: {
		keywords: []string{"hydrogen", "green hydrogen", "electrolyser", "electrolyzer", "electrolysis",
			"green ammonia", "fuel cell", "national green hydrogen mission", "sight programme"},
		capacity: []*regexp.Regexp{
			regexp.MustCompile(num + `(?:gw|mw)\s+(?:of\s+)?electroly[sz]er`),
			regexp.MustCompile(num + `(?:tonnes|tons|tpd|mtpa|ktpa)\b[^.]{0,40}\bhydrogen\b`),
			regexp.MustCompile(`\bhydrogen\b[^.]{0,40}\b` + num + `(?:tonnes|tons|tpd|mtpa|ktpa)\b`),
		},
	},
	domain.TypeBiofuel: {
		keywords: []string{"biofuel", "bio-fuel", "ethanol", "biogas", "compressed biogas", "cbg", "bio-cng",
			"biodiesel", "biomass", "bioenergy", "bio-energy", "2g ethanol", "sustainable aviation fuel",
			"distillery", "molasses"},
		capacity: []*regexp.Regexp{
			regexp.MustCompile(num + `(?:klpd|kl/day|kilo\s*lit(?:re|er)s?\s+per\s+day)\b`),
			regexp.MustCompile(num + `million\s+lit(?:re|er)s\b`),
			regexp.MustCompile(num + `tpd\b[^.]{0,40}\b(?:cbg|biogas|bio-cng)\b`),
		},
	},
}

var pipelineMarkers = []string{
	"announce", "announced", "announces", "announcing", "will build", "will develop", "will set up",
	"to set up", "plans to", "planning to", "proposed", "proposal", "upcoming", "breaking ground",
	"groundbreaking", "foundation stone", "to be built", "to be completed", "to be commissioned",
	"in development", "under development", "under construction", "being built", "beginning construction",
	"start construction", "expected to", "will be commissioned", "signed agreement", "signed an agreement",
	"signed mou", "signed a memorandum", "memorandum of understanding", "mou", "awarded contract",
	"letter of award", "tender", "bids", "secured", "bagged", "wins",
}

var completedMarkers = []string{
	"inaugurated", "inaugurates", "commissioned", "completed", "operational since", "fully operational",
	"now operational", "has been operating", "in operation since", "has been running", "began operations",
	"began commercial operations", "started operations", "dedicated to the nation",
}

// futurePrefixes turn a completed marker into a future statement, "to be commissioned" is not completed
var futurePrefixes = []string{"to be ", "will be ", "yet to be ", "being "}
