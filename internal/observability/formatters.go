// Package observability provides formatted output utilities for the human-readable CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit bulleted items and a remainder line.
func writeList(sb *strings.Builder, items []string, limit, width int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", clip(items[i], width)))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintParsedJob outputs a human-readable summary of a parsed job posting.
func (p *Printer) PrintParsedJob(job types.ParsedJob) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDash(job.Company)))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", orDash(job.Title)))

	if job.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(clip(strings.Join(strings.Fields(job.Description), " "), 3*(boxWidth-4)))
		sb.WriteString("\n")
	}

	if len(job.Keywords) > 0 {
		sb.WriteString("\nKeywords:\n")
		writeList(&sb, job.Keywords, 10, 40)
	}

	p.printBox("PARSED JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedJobs prints every job in turn, or a single box when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintParsedJobs(jobs []types.ParsedJob) {
	if len(jobs) == 0 {
		p.printBox("PARSED JOB POSTINGS", "No job postings found")
		return
	}
	for i, job := range jobs {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		p.PrintParsedJob(job)
	}
}

// PrintMatchResult outputs the verdict, score and shared keywords.
func (p *Printer) PrintMatchResult(result types.MatchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Verdict:         %s\n", result.Verdict))
	sb.WriteString(fmt.Sprintf("Recommendation:  %s\n", result.Recommendation))
	sb.WriteString(fmt.Sprintf("Score:           %.2f\n", result.Score))

	if len(result.Matched) > 0 {
		sb.WriteString("\nShared keywords:\n")
		writeList(&sb, result.Matched, len(result.Matched), 40)
	} else {
		sb.WriteString("\nNo shared keywords\n")
	}

	p.printBox("RESUME MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailoredResume outputs the selected blocks in their new order.
func (p *Printer) PrintTailoredResume(resume types.TailoredResume) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Selected %d blocks:\n\n", len(resume.Blocks)))

	for i, b := range resume.Blocks {
		sb.WriteString(fmt.Sprintf("#%-2d %-10s %s\n", i+1, b.Type, clip(b.ID, 30)))
		if content := strings.Join(strings.Fields(b.Content), " "); content != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", clip(content, 48)))
		}
	}

	p.printBox("TAILORED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviewQuestions outputs the question set grouped by kind.
func (p *Printer) PrintInterviewQuestions(set types.InterviewQuestionSet) {
	var sb strings.Builder
	groups := []struct {
		title     string
		questions []string
	}{
		{"Technical", set.Technical},
		{"Behavioral", set.Behavioral},
		{"System design", set.SystemDesign},
	}
	for _, g := range groups {
		if len(g.questions) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", g.title, len(g.questions)))
		writeList(&sb, g.questions, maxItemsToShow+1, boxWidth-8)
		sb.WriteString("\n")
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
