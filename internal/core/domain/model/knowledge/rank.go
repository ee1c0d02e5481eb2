package knowledge

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are query tokens too common to carry retrieval signal.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "how": {}, "what": {},
	"can": {}, "are": {}, "you": {}, "about": {}, "this": {}, "that": {},
	"have": {}, "not": {}, "should": {}, "when": {}, "where": {}, "why": {},
	"does": {}, "will": {}, "from": {}, "into": {},
}

// Tokenize splits free text into lowercased query tokens, dropping stopwords
// and tokens shorter than three characters. The result is deduplicated so
// repeating a word does not inflate scores.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// Score computes the keyword-overlap relevance of an entry for the given
// query tokens. Each token contributes:
//
//	+2 when it matches one of the entry's keywords
//	+1 when it appears in the title (case-insensitive substring)
//	+1 when it appears in the body (case-insensitive substring)
//
// A zero score means the entry is unrelated to the query and must not be
// retrieved.
func Score(entry *Entry, tokens []string) int {
	title := strings.ToLower(entry.Title())
	body := strings.ToLower(entry.Body())

	score := 0
	for _, token := range tokens {
		for _, kw := range entry.Keywords() {
			if kw == token || strings.Contains(kw, token) {
				score += 2
				break
			}
		}
		if strings.Contains(title, token) {
			score++
		}
		if strings.Contains(body, token) {
			score++
		}
	}
	return score
}

// Rank orders entries by descending overlap score for the query, breaking
// ties by most-recently-updated-first, and returns at most limit entries.
// Zero-scoring entries are excluded entirely.
func Rank(entries []*Entry, query string, limit int) []*Entry {
	tokens := Tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		entry *Entry
		score int
	}

	matched := make([]scored, 0, len(entries))
	for _, e := range entries {
		if s := Score(e, tokens); s > 0 {
			matched = append(matched, scored{entry: e, score: s})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].entry.UpdatedAt().After(matched[j].entry.UpdatedAt())
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*Entry, len(matched))
	for i, m := range matched {
		result[i] = m.entry
	}
	return result
}
