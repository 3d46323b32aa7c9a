package keywords

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?;:\n]+(\s|$)`)
	wordRe          = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#./\-]*`)
)

// Lower-case suffixes that mark a common noun ("experience", "engineer", "ownership").
var nounSuffixes = []string{"tion", "sion", "ment", "ness", "ity", "ance", "ence", "ship", "ist", "eer"}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true, "nor": true,
	"we": true, "you": true, "our": true, "your": true, "us": true, "i": true, "it": true,
	"they": true, "their": true, "he": true, "she": true, "his": true, "her": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true, "being": true,
	"will": true, "would": true, "can": true, "could": true, "must": true, "should": true, "may": true,
	"with": true, "for": true, "in": true, "on": true, "at": true, "of": true, "to": true,
	"as": true, "by": true, "from": true, "into": true, "about": true, "over": true, "per": true,
	"this": true, "that": true, "these": true, "those": true, "there": true, "here": true,
	"who": true, "what": true, "when": true, "where": true, "why": true, "how": true, "which": true,
	"if": true, "all": true, "any": true, "some": true, "each": true, "every": true, "no": true,
	"not": true, "do": true, "does": true, "have": true, "has": true, "had": true, "more": true,
	"join": true, "apply": true, "please": true, "also": true, "etc": true, "than": true,
	"other": true, "such": true, "very": true, "across": true, "within": true, "while": true,
}

// ExtractNouns returns up to limit noun phrases from text in order of first appearance.
//
// It is a heuristic: runs of capitalised words or acronyms form proper-noun phrases
// ("Acme Cloud", "CI/CD"), and lower-case words with a nominal suffix are taken as common
// nouns. A plain capitalised word opening a sentence is skipped. Results are deduplicated
// case-insensitively.
func ExtractNouns(text string, limit int) []string {
	nouns := make([]string, 0)
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return nouns
	}
	seen := make(map[string]bool)
	add := func(phrase string) bool {
		key := strings.ToLower(phrase)
		if phrase == "" || seen[key] {
			return len(nouns) < limit
		}
		seen[key] = true
		nouns = append(nouns, phrase)
		return len(nouns) < limit
	}

	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		words := wordRe.FindAllString(sentence, -1)
		var run []string
		flush := func() bool {
			defer func() { run = nil }()
			if len(run) == 0 {
				return true
			}
			return add(strings.Join(run, " "))
		}

		for i, raw := range words {
			w := strings.TrimRight(raw, ".-/")
			lower := strings.ToLower(w)
			if w == "" || stopWords[lower] {
				if !flush() {
					return nouns
				}
				continue
			}
			if isCapitalised(w) {
				if i == 0 && !isAcronym(w) && !hasSymbol(w) {
					continue
				}
				run = append(run, w)
				continue
			}
			if !flush() {
				return nouns
			}
			if isCommonNoun(lower) && !add(lower) {
				return nouns
			}
		}
		if !flush() {
			return nouns
		}
	}
	return nouns
}

func isCapitalised(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

func isAcronym(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

func hasSymbol(w string) bool {
	return strings.ContainsAny(w, ".+#/0123456789")
}

func isCommonNoun(lower string) bool {
	if len(lower) < 5 {
		return false
	}
	for _, suffix := range nounSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
