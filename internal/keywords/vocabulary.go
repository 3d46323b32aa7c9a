// Package keywords provides the fixed technology vocabulary and the extractors built on it.
//
// Matching is case-insensitive substring containment with no tokenization, so "Java" matches
// inside "JavaScript". Score thresholds elsewhere are tuned against exactly this behavior.
package keywords

import "strings"

// Term is one vocabulary entry.
type Term struct {
	Name string // display form, e.g. "JavaScript"
	Key  string // lower-case match key, e.g. "javascript"
}

// Vocabulary is an ordered, immutable set of terms.
type Vocabulary struct {
	terms []Term
}

// New builds a vocabulary from display names. Keys are lower-cased names; duplicates
// (case-insensitive) keep their first position.
func New(names ...string) Vocabulary {
	terms := make([]Term, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, Term{Name: name, Key: key})
	}
	return Vocabulary{terms: terms}
}

// Default is the process-wide vocabulary shared by extraction, scoring and tailoring.
var Default = New(
	"JavaScript", "TypeScript", "React", "Next", "Node", "Python", "Java", "SQL",
	"AWS", "Docker", "Kubernetes", "GraphQL", "Tailwind", "CSS", "HTML",
)

// Tailoring is the working subset used to rank resume blocks.
var Tailoring = Default.Without("java", "tailwind")

// Interview is the working subset used to generate technical questions.
var Interview = Default.Without("java", "tailwind", "css", "html")

// Len returns the number of terms.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the terms in vocabulary order.
func (v Vocabulary) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Names returns the display names in vocabulary order.
func (v Vocabulary) Names() []string {
	out := make([]string, len(v.terms))
	for i, t := range v.terms {
		out[i] = t.Name
	}
	return out
}

// Contains reports whether name (any case) is a term of v.
func (v Vocabulary) Contains(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range v.terms {
		if t.Key == key {
			return true
		}
	}
	return false
}

// Without returns a vocabulary derived from v with the given keys removed.
func (v Vocabulary) Without(keys ...string) Vocabulary {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[strings.ToLower(k)] = true
	}
	terms := make([]Term, 0, len(v.terms))
	for _, t := range v.terms {
		if !drop[t.Key] {
			terms = append(terms, t)
		}
	}
	return Vocabulary{terms: terms}
}
