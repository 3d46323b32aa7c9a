// Package tailoring reorders and trims resume blocks toward a job description.
package tailoring

import (
	"sort"
	"strings"

	"github.com/jonathan/job-tracker/internal/keywords"
	"github.com/jonathan/job-tracker/internal/types"
)

// MaxBlocks is the most blocks a tailored resume keeps.
const MaxBlocks = 12

// Suffix is appended to the source resume name.
const Suffix = " (Tailored)"

// DefaultName is used when the source resume has no name.
const DefaultName = "Resume"

// Tailor ranks blocks by how many keywords.Tailoring terms they share with jobDescription and
// keeps the first MaxBlocks. Ties keep their original order. The input slice is not modified.
func Tailor(resumeName string, blocks []types.ResumeBlock, jobDescription string) types.TailoredResume {
	return TailorWith(keywords.Tailoring, resumeName, blocks, jobDescription)
}

// TailorWith is Tailor over an explicit vocabulary.
func TailorWith(v keywords.Vocabulary, resumeName string, blocks []types.ResumeBlock, jobDescription string) types.TailoredResume {
	type scored struct {
		block   types.ResumeBlock
		overlap int
	}
	ranked := make([]scored, len(blocks))
	for i, b := range blocks {
		ranked[i] = scored{block: b, overlap: v.CountHits(jobDescription, b.Content)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overlap > ranked[j].overlap
	})

	n := min(len(ranked), MaxBlocks)
	out := make([]types.ResumeBlock, n)
	for i := range n {
		out[i] = ranked[i].block
	}
	return types.TailoredResume{Name: TailoredName(resumeName), Blocks: out}
}

// TailoredName derives the tailored resume name.
func TailoredName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	return name + Suffix
}
