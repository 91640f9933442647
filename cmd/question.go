package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Leonard1379/MyDjangoProject/internal/polls"
)

var (
	flagText    string
	flagDays    int
	flagChoices []string
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Manage poll questions",
}

var questionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a question published --days from now (negative for the past)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.Migrate(cmd.Context()); err != nil {
			return err
		}

		id, err := createQuestion(cmd, a.Polls, flagText, flagDays, flagChoices)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created question %d.\n", id)
		return nil
	},
}

func init() {
	questionCreateCmd.Flags().StringVar(&flagText, "text", "", "question text")
	questionCreateCmd.Flags().IntVar(&flagDays, "days", 0, "publish offset in days from now")
	questionCreateCmd.Flags().StringArrayVar(&flagChoices, "choice", nil, "answer choice (repeatable)")
	questionCreateCmd.MarkFlagRequired("text")

	questionCmd.AddCommand(questionCreateCmd)
}

func createQuestion(cmd *cobra.Command, s *polls.Service, text string, days int, choices []string) (int64, error) {
	q, err := s.CreateQuestionInDays(cmd.Context(), text, days)
	if err != nil {
		return 0, fmt.Errorf("creating question: %w", err)
	}
	for _, c := range choices {
		if _, err := s.AddChoice(cmd.Context(), q.ID, c); err != nil {
			return 0, fmt.Errorf("adding choice %q: %w", c, err)
		}
	}
	return q.ID, nil
}
