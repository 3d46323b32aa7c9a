package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/jobparse"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Extract title, company, description and keywords from a job posting",
	Long: "Parse a job posting from a URL or a text file into JSON. When the URL cannot be fetched " +
		"the text file, if any, is parsed instead.",
	RunE: runParseJob,
}

var (
	parseURL      string
	parseTextFile string
	parseOutFile  string
	parseRefresh  bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseURL, "url", "u", "", "Job posting URL")
	parseJobCmd.Flags().StringVarP(&parseTextFile, "text", "t", "", "Plain text or HTML file (e.g. a saved e-mail)")
	parseJobCmd.Flags().StringVarP(&parseOutFile, "out", "o", "", "Output JSON file (default stdout)")
	parseJobCmd.Flags().BoolVar(&parseRefresh, "refresh", false, "Drop any cached result for --url before parsing")
	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	if parseURL == "" && parseTextFile == "" {
		return fmt.Errorf("must provide --url or --text")
	}

	var text string
	if parseTextFile != "" {
		data, err := os.ReadFile(parseTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(data)
	}

	ctx := cmd.Context()
	parser, parseCache, closeParser, err := newParser(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeParser()

	if parseRefresh && parseCache != nil && parseURL != "" {
		if err := parseCache.Invalidate(ctx, parseURL); err != nil {
			return fmt.Errorf("failed to invalidate cached result: %w", err)
		}
	}

	job := parser.Parse(ctx, jobparse.Input{URL: parseURL, Text: text})
	return render(cmd.OutOrStdout(), parseOutFile, job)
}
