package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/analysis"
	"github.com/spigell/resume-scorer/internal/jobsource"
	"github.com/spigell/resume-scorer/internal/ranking"
)

const (
	PromptShowRanking       = "Show ranking"
	PromptReportByEmployers = "Report by employers"
	PromptVacanciesToFile   = "Dump vacancies to file"
	PromptExit              = "Exit"
)

var errExit = errors.New("exit requested")

var rankPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowRanking, PromptReportByEmployers, PromptVacanciesToFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Search vacancies and rank them by how well the resume matches",
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx or text)")
	rankCmd.Flags().StringP("text", "t", "", "vacancy search text")
	rankCmd.Flags().IntP("limit", "l", 20, "maximum number of vacancies to score")
	rankCmd.Flags().Float64("minimum-score", 0, "drop vacancies scoring below this value")
	rankCmd.Flags().String("exclude-file", "", "skip vacancies listed in a previous dump file")
	rankCmd.Flags().BoolP("yes", "y", false, "print the ranking without the interactive menu")

	rankCmd.MarkFlagRequired("resume")

	viper.BindPFlag("rank.search.text", rankCmd.Flags().Lookup("text"))
	viper.BindPFlag("rank.limit", rankCmd.Flags().Lookup("limit"))
	viper.BindPFlag("rank.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("rank.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	logger, config, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if config.Rank.Search.Text == "" {
		return errors.New("search text is required (--text or rank.search.text)")
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	resumeText, err := jobsource.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}

	source, err := jobsource.New(config.JobSource, logger.Named("jobsource"))
	if err != nil {
		return err
	}

	rt, err := analysis.NewRuntime(ctx, config.Analysis(), logger)
	if err != nil {
		return err
	}

	logger.Info("starting the search", zap.String("search", config.Rank.Search.Text))

	// the per vacancy summary lines are too noisy here
	analyzer := analysis.New(rt, logger.Named("analysis").WithOptions(zap.IncreaseLevel(zap.WarnLevel)))
	candidates, err := ranking.New(source, analyzer, logger.Named("ranking")).Rank(ctx, config.Rank, resumeText)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		logger.Info("exiting", zap.String("reason", "no vacancies left after filters"))
		return nil
	}

	out := cmd.OutOrStdout()
	auto, _ := cmd.Flags().GetBool("yes")
	if auto || !isatty.IsTerminal(os.Stdin.Fd()) {
		return printRanking(out, candidates)
	}

	for {
		_, action, err := rankPrompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(out, logger, action, candidates); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func handleAction(w io.Writer, logger *zap.Logger, action string, candidates []*ranking.Candidate) error {
	switch action {
	case PromptShowRanking:
		return printRanking(w, candidates)
	case PromptReportByEmployers:
		return printJSON(w, ranking.ReportByEmployer(candidates))
	case PromptVacanciesToFile:
		filename, err := ranking.DumpToTmpFile(candidates)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printRanking(w io.Writer, candidates []*ranking.Candidate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tID\tVACANCY\tEMPLOYER\tURL")

	for i, c := range candidates {
		score := "error"
		if c.Result != nil {
			score = fmt.Sprintf("%.2f", c.Result.MatchScore)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, score, c.Vacancy.ID, c.Vacancy.Name, c.Vacancy.Employer.Name, c.Vacancy.AlternateURL)
	}

	return tw.Flush()
}
