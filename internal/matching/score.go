// Package matching scores how well a resume covers a job description's technology keywords.
package matching

import (
	"github.com/jonathan/job-tracker/internal/keywords"
	"github.com/jonathan/job-tracker/internal/types"
)

// Density thresholds separating the verdict tiers.
const (
	StrongThreshold    = 0.35
	PotentialThreshold = 0.18
)

// Verdicts and their recommendations.
const (
	VerdictStrong    = "Strong Match"
	VerdictPotential = "Potential Reach"
	VerdictMismatch  = "Mismatch"

	RecommendApply   = "Apply"
	RecommendTailor  = "Consider Tailoring"
	RecommendPassing = "Consider Passing"
)

// Score compares resumeText with jobDescription over keywords.Default.
func Score(resumeText, jobDescription string) types.MatchResult {
	return ScoreWith(keywords.Default, resumeText, jobDescription)
}

// ScoreWith compares resumeText with jobDescription over v. Score is the number of vocabulary
// terms found in both texts divided by the vocabulary size.
func ScoreWith(v keywords.Vocabulary, resumeText, jobDescription string) types.MatchResult {
	matched := v.Hits(resumeText, jobDescription)
	density := float64(len(matched)) / float64(max(1, v.Len()))
	verdict, recommendation := VerdictFor(density)
	return types.MatchResult{
		Verdict:        verdict,
		Recommendation: recommendation,
		Score:          density,
		Matched:        matched,
	}
}

// VerdictFor maps a keyword density to a verdict and recommendation.
func VerdictFor(density float64) (verdict, recommendation string) {
	switch {
	case density >= StrongThreshold:
		return VerdictStrong, RecommendApply
	case density >= PotentialThreshold:
		return VerdictPotential, RecommendTailor
	default:
		return VerdictMismatch, RecommendPassing
	}
}
