package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/interview"
	"github.com/jonathan/job-tracker/internal/matching"
	"github.com/jonathan/job-tracker/internal/tailoring"
	"github.com/jonathan/job-tracker/internal/types"
)

var (
	analyzeResumeFile string
	analyzeJobFile    string
	analyzeOutFile    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long:  "Score counts the technology keywords a resume shares with a job description and prints a verdict.",
	RunE:  runScore,
}

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Select the resume blocks that best fit a job description",
	RunE:  runTailor,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate interview practice questions for a job description",
	RunE:  runQuestions,
}

func init() {
	for _, c := range []*cobra.Command{scoreCmd, tailorCmd, questionsCmd} {
		c.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Job description: text file, job JSON file, or - for stdin")
		c.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Output JSON file (default stdout)")
		rootCmd.AddCommand(c)
	}
	scoreCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Resume JSON file")
	tailorCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Resume JSON file")
	questionsCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Resume JSON file (optional)")
}

func runScore(cmd *cobra.Command, _ []string) error {
	resume, err := readResume(analyzeResumeFile)
	if err != nil {
		return err
	}
	jd, err := readJobDescription(analyzeJobFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	result := matching.Score(types.BlocksText(resume.Blocks, "\n\n"), jd)
	return render(cmd.OutOrStdout(), analyzeOutFile, result)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	resume, err := readResume(analyzeResumeFile)
	if err != nil {
		return err
	}
	jd, err := readJobDescription(analyzeJobFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), analyzeOutFile, tailoring.Tailor(resume.Name, resume.Blocks, jd))
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	jd, err := readJobDescription(analyzeJobFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	var blocks []types.ResumeBlock
	if analyzeResumeFile != "" {
		resume, err := readResume(analyzeResumeFile)
		if err != nil {
			return err
		}
		blocks = resume.Blocks
	}
	return render(cmd.OutOrStdout(), analyzeOutFile, interview.Generate(jd, blocks))
}
