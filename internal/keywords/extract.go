package keywords

import "strings"

// MaxNouns caps how many noun phrases ExtractWithNouns appends.
const MaxNouns = 10

// Extract returns the names of terms that occur in text, in vocabulary order.
// The result is never nil.
func (v Vocabulary) Extract(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}
	lower := strings.ToLower(text)
	for _, t := range v.terms {
		if strings.Contains(lower, t.Key) {
			found = append(found, t.Name)
		}
	}
	return found
}

// Hits returns the names of terms that occur in both a and b, in vocabulary order.
func (v Vocabulary) Hits(a, b string) []string {
	hits := make([]string, 0)
	if a == "" || b == "" {
		return hits
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	for _, t := range v.terms {
		if strings.Contains(la, t.Key) && strings.Contains(lb, t.Key) {
			hits = append(hits, t.Name)
		}
	}
	return hits
}

// CountHits is len(v.Hits(a, b)) without allocating the names.
func (v Vocabulary) CountHits(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	n := 0
	for _, t := range v.terms {
		if strings.Contains(la, t.Key) && strings.Contains(lb, t.Key) {
			n++
		}
	}
	return n
}

// ExtractWithNouns returns the vocabulary hits followed by up to MaxNouns noun phrases,
// deduplicated case-insensitively. The noun part is best-effort enrichment.
func ExtractWithNouns(v Vocabulary, text string) []string {
	return Unique(append(v.Extract(text), ExtractNouns(text, MaxNouns)...))
}

// Unique removes case-insensitive duplicates and blanks, keeping first occurrences in order.
func Unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
