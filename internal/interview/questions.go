// Package interview builds a template-based interview question set from a job description.
package interview

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-tracker/internal/keywords"
	"github.com/jonathan/job-tracker/internal/types"
)

// MaxTechnical caps the technical deep-dive questions.
const MaxTechnical = 6

const technicalTemplate = "Deep dive: Tell me about a time you used %s to solve a challenging problem. What was the impact?"

// PromptPrefix opens the narration prompt handed to a voice interviewer.
const PromptPrefix = "You are the interviewer. Ask the following questions one by one, waiting for answers, " +
	"and provide concise feedback after each answer. Questions: "

// PromptSeparator joins questions inside the narration prompt.
const PromptSeparator = " | "

var behavioral = []string{
	"Tell me about a project you’re most proud of. What was your specific contribution?",
	"Describe a time you managed conflicting priorities. How did you decide what to do first?",
	"Tell me about a failure. What did you learn and what changed afterward?",
}

var systemDesign = []string{
	"Design a scalable job tracking system for thousands of users. Discuss data model, APIs, and scaling.",
}

// Generate returns questions for jobDescription. Resume blocks are accepted for callers that
// have them but do not affect the result.
func Generate(jobDescription string, _ []types.ResumeBlock) types.InterviewQuestionSet {
	lower := strings.ToLower(jobDescription)
	technical := make([]string, 0, MaxTechnical)
	for _, term := range keywords.Interview.Terms() {
		if len(technical) == MaxTechnical {
			break
		}
		if strings.Contains(lower, term.Key) {
			technical = append(technical, fmt.Sprintf(technicalTemplate, term.Key))
		}
	}

	set := types.InterviewQuestionSet{
		Technical:    technical,
		Behavioral:   append([]string(nil), behavioral...),
		SystemDesign: append([]string(nil), systemDesign...),
	}
	set.TTSPrompt = PromptPrefix + strings.Join(set.All(), PromptSeparator)
	return set
}
