package domain

import (
	"encoding/json"
	"sort"
)

// StringSet is a set of strings, serialized as a sorted JSON array
type StringSet map[string]struct{}

// Add puts a value to the set and reports whether it was new
func (s StringSet) Add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Has reports whether the set contains v
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns set members in lexical order
func (s StringSet) Sorted() []string {
	res := make([]string, 0, len(s))
	for k := range s {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// MarshalJSON implements json.Marshaler
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = make(StringSet, len(items))
	for _, v := range items {
		(*s)[v] = struct{}{}
	}
	return nil
}

// CategoryProfile holds trained vocabulary and metric history for one project type
type CategoryProfile struct {
	Keywords StringSet            `json:"keywords"`
	Phrases  StringSet            `json:"phrases"`
	Patterns []string             `json:"patterns,omitempty"`
	Metrics  map[string][]float64 `json:"metrics"`
}

// NewCategoryProfile makes an empty profile
func NewCategoryProfile() *CategoryProfile {
	return &CategoryProfile{Keywords: StringSet{}, Phrases: StringSet{}, Metrics: map[string][]float64{}}
}

// TrainingProfile maps project type key (lower-cased type name) to its trained profile
type TrainingProfile map[string]*CategoryProfile

// Category returns the profile for a type, nil if the type was never trained
func (p TrainingProfile) Category(t ProjectType) *CategoryProfile {
	if p == nil {
		return nil
	}
	return p[t.Key()]
}

// Ensure returns the profile for a type, creating it if needed
func (p TrainingProfile) Ensure(t ProjectType) *CategoryProfile {
	cp, ok := p[t.Key()]
	if !ok || cp == nil {
		cp = NewCategoryProfile()
		p[t.Key()] = cp
	}
	if cp.Keywords == nil {
		cp.Keywords = StringSet{}
	}
	if cp.Phrases == nil {
		cp.Phrases = StringSet{}
	}
	if cp.Metrics == nil {
		cp.Metrics = map[string][]float64{}
	}
	return cp
}
