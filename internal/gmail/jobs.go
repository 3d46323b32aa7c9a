package gmail

import (
	"github.com/jonathan/job-tracker/internal/jobparse"
	"github.com/jonathan/job-tracker/internal/types"
)

// Jobs parses each message in text mode and keeps those that yield a title or a company.
func Jobs(messages []Message) []types.ParsedJob {
	jobs := make([]types.ParsedJob, 0, len(messages))
	for _, m := range messages {
		job := jobparse.ParseText(m.Text)
		if job.Empty() {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}
