package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/analysis"
	"github.com/spigell/resume-scorer/internal/jobsource"
)

const (
	outputJSON    = "json"
	outputSummary = "summary"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx or text)")
	analyzeCmd.Flags().String("job", "", "job description file (pdf, docx or text)")
	analyzeCmd.Flags().String("job-text", "", "job description text")
	analyzeCmd.Flags().String("vacancy", "", "vacancy id or url to fetch the job description from")
	analyzeCmd.Flags().StringP("output", "o", outputJSON, "output format: json or summary")

	analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-text", "vacancy")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	logger, config, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	output, _ := cmd.Flags().GetString("output")
	if output != outputJSON && output != outputSummary {
		return fmt.Errorf("unknown output format %q", output)
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	spec := jobSpec(cmd)

	if spec == (jobsource.Spec{}) && isatty.IsTerminal(os.Stdin.Fd()) {
		if spec.File, err = promptJobFile(); err != nil {
			return err
		}
	}

	resumeText, err := jobsource.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}

	source, err := jobsource.New(config.JobSource, logger.Named("jobsource"))
	if err != nil {
		return err
	}

	jdText, err := source.Resolve(ctx, spec)
	if err != nil {
		return fmt.Errorf("resolving job description: %w", err)
	}

	rt, err := analysis.NewRuntime(ctx, config.Analysis(), logger)
	if err != nil {
		return err
	}

	result, err := analysis.New(rt, logger.Named("analysis")).Analyze(ctx, resumeText, jdText)
	if err != nil {
		return err
	}

	logger.Debug("analysis finished", zap.String("resume", resumePath))

	if output == outputSummary {
		return printSummary(cmd.OutOrStdout(), result)
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func jobSpec(cmd *cobra.Command) jobsource.Spec {
	file, _ := cmd.Flags().GetString("job")
	text, _ := cmd.Flags().GetString("job-text")
	vacancy, _ := cmd.Flags().GetString("vacancy")

	return jobsource.Spec{Text: text, File: file, Vacancy: vacancy}
}

func promptJobFile() (string, error) {
	prompt := promptui.Prompt{
		Label: "Job description file",
		Validate: func(input string) error {
			info, err := os.Stat(strings.TrimSpace(input))
			if err != nil {
				return err
			}
			if info.IsDir() {
				return errors.New("is a directory")
			}
			return nil
		},
	}

	path, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompting for job description: %w", err)
	}
	return strings.TrimSpace(path), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(w io.Writer, r *analysis.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Match score:\t%.2f\n", r.MatchScore)
	fmt.Fprintf(tw, "Content score:\t%.2f\n", r.AnalysisDetails.ContentMatchScore)
	fmt.Fprintf(tw, "Format score:\t%d\n", r.AnalysisDetails.FormatScore)
	if r.Message != "" {
		fmt.Fprintf(tw, "Note:\t%s\n", r.Message)
	}

	matched := make([]string, 0, len(r.Structured.Keywords))
	for _, kw := range r.Structured.Keywords {
		matched = append(matched, fmt.Sprintf("%s (%.2f)", kw.Word, kw.Similarity))
	}
	fmt.Fprintf(tw, "Matched keywords:\t%s\n", orNone(matched))
	fmt.Fprintf(tw, "Missing keywords:\t%s\n", orNone(r.Structured.MissingKeywords))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", r.Feedback)
	writeList(w, "Format issues", r.Structured.FormatIssues)
	writeList(w, "Suggestions", r.Structured.Suggestions)

	return nil
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
