package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	schemafiles "github.com/jonathan/job-tracker/schemas"

	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/schemas"
	"github.com/jonathan/job-tracker/internal/types"
)

// resumeFile is the on-disk resume document.
type resumeFile struct {
	Name   string              `json:"name"`
	Blocks []types.ResumeBlock `json:"blocks"`
}

// jobFile is the on-disk job document.
type jobFile struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// readResume loads and schema-validates a resume JSON file.
func readResume(path string) (*resumeFile, error) {
	if path == "" {
		return nil, fmt.Errorf("--resume is required")
	}
	data, err := schemas.ValidateFile(schemafiles.Resume, path)
	if err != nil {
		return nil, err
	}
	var r resumeFile
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", path, err)
	}
	return &r, nil
}

// readJobDescription returns the description in path. A .json file must match the job schema;
// anything else is read as plain text. "-" reads stdin.
func readJobDescription(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--job is required")
	}
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := schemas.ValidateFile(schemafiles.Job, path)
		if err != nil {
			return "", err
		}
		var j jobFile
		if err := json.Unmarshal(data, &j); err != nil {
			return "", fmt.Errorf("failed to decode job %s: %w", path, err)
		}
		return j.Description, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	return string(data), nil
}

// render prints v as text boxes when --format=text and no output file is set, and as JSON
// otherwise.
func render(w io.Writer, outPath string, v any) error {
	if format != "text" || outPath != "" {
		return writeOutput(w, outPath, v)
	}
	p := observability.NewPrinter(w)
	switch v := v.(type) {
	case types.ParsedJob:
		p.PrintParsedJob(v)
	case []types.ParsedJob:
		p.PrintParsedJobs(v)
	case types.MatchResult:
		p.PrintMatchResult(v)
	case types.TailoredResume:
		p.PrintTailoredResume(v)
	case types.InterviewQuestionSet:
		p.PrintInterviewQuestions(v)
	default:
		return writeOutput(w, outPath, v)
	}
	return nil
}

// writeOutput writes v as indented JSON to outPath, or to w when outPath is empty.
func writeOutput(w io.Writer, outPath string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')
	if outPath == "" {
		_, err = w.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(outPath, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
