// Package similarity scores how closely product names overlap.
package similarity

import (
	"sort"
	"strings"

	"SmartWorth/internal/model"
)

var separators = strings.NewReplacer("-", " ", "_", " ", "(", " ", ")", " ")

// Tokenize lower-cases name, turns - _ ( ) into spaces and splits on whitespace.
func Tokenize(name string) []string {
	return strings.Fields(separators.Replace(strings.ToLower(name)))
}

// Similarity returns the share of a's unique tokens that also appear in b.
// It is asymmetric: the denominator only counts tokens of a, so
// Similarity(a, b) and Similarity(b, a) differ when the token counts differ.
func Similarity(a, b string) float64 {
	ta, tb := tokenSet(Tokenize(a)), tokenSet(Tokenize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta))
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Match is a candidate with its similarity to the base name.
type Match struct {
	Product model.ProductRecord `json:"product"`
	Score   float64             `json:"score"`
}

// FindSimilar scores every candidate with Similarity(baseName, candidate),
// drops zero scores and case-insensitive exact name matches, and returns the
// best limit matches. Ties keep the candidates' original order. A limit of
// zero or less returns no matches.
func FindSimilar(candidates []model.ProductRecord, baseName string, limit int) []Match {
	if limit <= 0 {
		return nil
	}
	var matches []Match
	for _, c := range candidates {
		if strings.EqualFold(c.Name, baseName) {
			continue
		}
		if s := Similarity(baseName, c.Name); s > 0 {
			matches = append(matches, Match{Product: c, Score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
