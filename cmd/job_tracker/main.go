// Package main provides the entry point for the job tracker API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/logging"
)

var (
	configFile string
	logLevel   string
	logPretty  bool
	format     string

	// cfg is loaded before every subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "job_tracker",
	Short: "Job application tracker",
	Long: "Job tracker parses job postings, scores resumes against them, tailors resumes, " +
		"prepares interview questions and serves the tracking REST API.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "Human-readable console logs")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "Output format: json or text")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("unknown --format %q (want json or text)", format)
	}
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logPretty {
		loaded.Log.Pretty = true
	}
	logging.Init(logging.Options{Level: loaded.Log.Level, Pretty: loaded.Log.Pretty, Out: cmd.ErrOrStderr()})
	cfg = loaded
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
