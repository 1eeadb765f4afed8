// Package menu ranks a restaurant's menu items against a free-text query.
package menu

import (
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	nameWeight        = 3
	namePrefixWeight  = 2
	descriptionWeight = 1
)

// Document is a searchable menu item.
type Document struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// Result is a matching document and its score.
type Result struct {
	ID    uuid.UUID
	Score int
}

// Index holds pre-tokenized documents.
type Index struct {
	docs       []Document
	nameTokens [][]string
	descTokens []map[string]bool
}

// NewIndex tokenizes docs once for repeated searches.
func NewIndex(docs []Document) *Index {
	ix := &Index{
		docs:       docs,
		nameTokens: make([][]string, len(docs)),
		descTokens: make([]map[string]bool, len(docs)),
	}
	for i, d := range docs {
		ix.nameTokens[i] = tokenize(normalize(d.Name))
		desc := make(map[string]bool)
		for _, tok := range tokenize(normalize(d.Description)) {
			desc[tok] = true
		}
		ix.descTokens[i] = desc
	}
	return ix
}

// Search scores every document against query and returns those with a
// positive score, best first. Ties keep index order.
func (ix *Index) Search(query string) []Result {
	queryTokens := dedupe(tokenize(normalize(query)))
	if len(queryTokens) == 0 {
		return nil
	}

	var results []Result
	for i, d := range ix.docs {
		score := 0
		for _, q := range queryTokens {
			score += scoreName(ix.nameTokens[i], q)
			if ix.descTokens[i][q] {
				score += descriptionWeight
			}
		}
		if score > 0 {
			results = append(results, Result{ID: d.ID, Score: score})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// scoreName rewards an exact token hit over a prefix hit ("paneer" vs "pan").
func scoreName(nameTokens []string, q string) int {
	best := 0
	for _, tok := range nameTokens {
		switch {
		case tok == q:
			return nameWeight
		case strings.HasPrefix(tok, q):
			best = namePrefixWeight
		}
	}
	return best
}

// normalize lowercases s and replaces non-alphanumeric runes with spaces.
func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

func tokenize(s string) []string {
	return strings.Fields(s)
}

func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
