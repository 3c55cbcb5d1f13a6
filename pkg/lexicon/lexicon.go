// Package lexicon holds the Indian place, company and government vocabularies shared by
// the classifier and the field extractor, plus whole-word matching helpers.
package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// States are the first-level states of India
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
	"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan",
	"Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
}

// UnionTerritories are the union territories of India
var UnionTerritories = []string{
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// Cities are large Indian cities and well-known project hubs
var Cities = []string{
	"Mumbai", "New Delhi", "Bengaluru", "Bangalore", "Chennai", "Kolkata", "Hyderabad", "Pune",
	"Ahmedabad", "Jaipur", "Lucknow", "Bhopal", "Kutch", "Khavda", "Jodhpur", "Bikaner",
	"Jaisalmer", "Barmer", "Anantapur", "Kurnool", "Tuticorin", "Thoothukudi", "Mundra",
	"Kakinada", "Visakhapatnam", "Nagpur", "Indore", "Dholera", "Pavagada", "Rewa", "Bhadla",
}

// Companies are domestic renewable energy developers and manufacturers, most specific name first
var Companies = []string{
	"Adani Green Energy", "Adani Green", "Adani Solar", "Adani New Industries", "Adani",
	"ReNew Power", "ReNew Energy Global", "Tata Power Renewable Energy", "Tata Power", "NTPC Green Energy", "NTPC",
	"Greenko", "JSW Energy", "JSW Neo Energy", "Azure Power", "Hero Future Energies", "ACME Solar",
	"Avaada Energy", "Avaada", "Amplus Solar", "Cleantech Solar", "Sembcorp", "Suzlon", "SB Energy",
	"EDF Renewables", "Inox Wind", "SJVN", "NHPC", "Reliance New Energy", "Reliance Industries",
	"Reliance Power", "Torrent Power", "SECI", "CLP India", "Mytrah Energy", "Waaree Energies",
	"Waaree", "Premier Energies", "Vikram Solar", "Goldi Solar", "Ola Electric", "Amara Raja",
	"Exide Industries", "Indian Oil", "IOCL", "BPCL", "HPCL", "GAIL", "Oil India", "ONGC",
	"Coal India", "L&T", "Larsen & Toubro", "Ohmium", "Juniper Green Energy", "Ayana Renewable",
	"O2 Power", "Sprng Energy", "Serentica Renewables", "Hindustan Zinc", "Praj Industries",
}

// GovernmentTerms are names that must never be reported as a project company
var GovernmentTerms = []string{
	"ministry", "government", "govt", "department", "commission", "authority", "cabinet",
	"mnre", "niti aayog", "parliament", "state", "union", "national", "board",
}

// ContainsWord reports whether term occurs in text as a whole word.
// Matching is case-sensitive, callers lower-case both sides for case-insensitive checks.
func ContainsWord(text, term string) bool {
	return IndexWord(text, term) >= 0
}

// CountWord counts non-overlapping whole-word occurrences of term in text
func CountWord(text, term string) int {
	if term == "" {
		return 0
	}
	count, from := 0, 0
	for {
		idx := indexWordFrom(text, term, from)
		if idx < 0 {
			return count
		}
		count++
		from = idx + len(term)
	}
}

// IndexWord returns the byte offset of the first whole-word occurrence of term, or -1
func IndexWord(text, term string) int {
	if term == "" {
		return -1
	}
	return indexWordFrom(text, term, 0)
}

// WordIndexes returns the byte offsets of all whole-word occurrences of term
func WordIndexes(text, term string) []int {
	var res []int
	if term == "" {
		return res
	}
	from := 0
	for {
		idx := indexWordFrom(text, term, from)
		if idx < 0 {
			return res
		}
		res = append(res, idx)
		from = idx + len(term)
	}
}

func indexWordFrom(text, term string, from int) int {
	for from <= len(text)-len(term) {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(term)
		if boundaryBefore(text, start, term) && boundaryAfter(text, end, term) {
			return start
		}
		from = start + 1
	}
	return -1
}

// boundaryBefore checks the rune preceding start, only when the term itself starts with a word rune
func boundaryBefore(text string, start int, term string) bool {
	first, _ := utf8.DecodeRuneInString(term)
	if !isWordRune(first) || start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, term string) bool {
	last, _ := utf8.DecodeLastRuneInString(term)
	if !isWordRune(last) || end >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Lower returns lower-cased copies of terms
func Lower(terms []string) []string {
	res := make([]string, len(terms))
	for i, t := range terms {
		res[i] = strings.ToLower(t)
	}
	return res
}

// Regions returns states followed by union territories
func Regions() []string {
	res := make([]string, 0, len(States)+len(UnionTerritories))
	res = append(res, States...)
	return append(res, UnionTerritories...)
}
