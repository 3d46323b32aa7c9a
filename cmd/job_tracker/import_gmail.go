package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/gmail"
	"github.com/jonathan/job-tracker/internal/types"
)

var importGmailCmd = &cobra.Command{
	Use:   "import-gmail",
	Short: "Parse job postings from recent Gmail messages",
	Long: "Read recent messages from the configured Gmail account and print the ones that name a job " +
		"title or company. With --owner the jobs are also stored for that user.",
	RunE: runImportGmail,
}

var (
	importOwner string
	importLimit int64
	importOut   string
)

func init() {
	importGmailCmd.Flags().StringVar(&importOwner, "owner", "", "User ID to store imported jobs for")
	importGmailCmd.Flags().Int64Var(&importLimit, "limit", 0, "Messages to read (overrides config)")
	importGmailCmd.Flags().StringVarP(&importOut, "out", "o", "", "Output JSON file (default stdout)")
	rootCmd.AddCommand(importGmailCmd)
}

func runImportGmail(cmd *cobra.Command, _ []string) error {
	var owner uuid.UUID
	if importOwner != "" {
		id, err := uuid.Parse(importOwner)
		if err != nil {
			return fmt.Errorf("invalid --owner: %w", err)
		}
		owner = id
	}
	limit := cfg.Gmail.MaxMessages
	if importLimit > 0 {
		limit = importLimit
	}

	ctx := cmd.Context()
	client, err := openGmail(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("gmail import is not configured (set gmail.credentials_file and gmail.token_file)")
	}

	messages, err := client.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	jobs := gmail.Jobs(messages)
	log.Info().Int("messages", len(messages)).Int("jobs", len(jobs)).Msg("parsed mailbox")

	if owner != uuid.Nil {
		database, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		for _, parsed := range jobs {
			_, err := database.CreateJob(ctx, &types.JobPosting{
				OwnerID:     owner,
				Source:      types.SourceEmail,
				Title:       parsed.Title,
				Company:     parsed.Company,
				Description: parsed.Description,
				Keywords:    parsed.Keywords,
				Status:      types.StatusSaved,
			})
			if err != nil {
				return fmt.Errorf("failed to store imported job: %w", err)
			}
		}
	}
	return render(cmd.OutOrStdout(), importOut, jobs)
}
