package types

// MatchResult is the outcome of scoring a resume against a job description.
type MatchResult struct {
	Verdict        string   `json:"verdict"`
	Recommendation string   `json:"recommendation"`
	Score          float64  `json:"score"`
	Matched        []string `json:"matched"`
}

// InterviewQuestionSet holds generated interview questions and a combined narration prompt.
type InterviewQuestionSet struct {
	Technical    []string `json:"technical"`
	Behavioral   []string `json:"behavioral"`
	SystemDesign []string `json:"systemDesign"`
	TTSPrompt    string   `json:"ttsPrompt"`
}

// All returns technical, behavioral and system design questions in that order.
func (q InterviewQuestionSet) All() []string {
	all := make([]string, 0, len(q.Technical)+len(q.Behavioral)+len(q.SystemDesign))
	all = append(all, q.Technical...)
	all = append(all, q.Behavioral...)
	all = append(all, q.SystemDesign...)
	return all
}
