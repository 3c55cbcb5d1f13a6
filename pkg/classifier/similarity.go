package classifier

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]{2,}`)

// Similarity returns cosine similarity of TF-IDF vectors built over the two documents.
// IDF is smoothed as ln((1+n)/(1+df))+1, so terms present in both documents still count.
func Similarity(a, b string) float64 {
	docs := [][]string{tokenize(a), tokenize(b)}
	if len(docs[0]) == 0 || len(docs[1]) == 0 {
		return 0
	}

	df := map[string]int{}
	tfs := make([]map[string]float64, len(docs))
	for i, tokens := range docs {
		tf := map[string]float64{}
		for _, tok := range tokens {
			tf[tok]++
		}
		for tok := range tf {
			df[tok]++
		}
		tfs[i] = tf
	}

	n := float64(len(docs))
	vecs := make([]map[string]float64, len(docs))
	for i, tf := range tfs {
		vec := make(map[string]float64, len(tf))
		for tok, cnt := range tf {
			idf := math.Log((1+n)/(1+float64(df[tok]))) + 1
			vec[tok] = cnt * idf
		}
		vecs[i] = vec
	}

	var dot, na, nb float64
	for tok, va := range vecs[0] {
		na += va * va
		if vb, ok := vecs[1][tok]; ok {
			dot += va * vb
		}
	}
	for _, vb := range vecs[1] {
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func tokenize(s string) []string {
	return tokenRe.FindAllString(strings.ToLower(s), -1)
}
