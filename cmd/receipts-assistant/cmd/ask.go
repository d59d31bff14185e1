package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/chat"
)

var askHistoryPath string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your receipts",
	Long: fmt.Sprintf(`Ask a question about the stored receipts, either as a one-shot
argument or interactively when no question is given.

Supported questions:
  "How much did I spend on food in May 2025?"
  "What did I buy on 2025-03-05?"

Known spending categories: %s.`, strings.Join(constants.CategoriesAsStringSlice(), ", ")),
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		answerer := chat.NewAnswerer(store, chat.NewQuestionLog(cfg.QuestionLogPath), slog.Default())
		sess := chat.NewSession()
		out := cmd.OutOrStdout()

		if len(args) > 0 {
			question := strings.Join(args, " ")
			answer, err := answerer.Answer(cmd.Context(), sess, question)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, answer)
			return saveHistory(sess)
		}

		fmt.Fprintln(out, "Ask about your receipts (empty line or Ctrl-D to quit).")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				break
			}
			answer, err := answerer.Answer(cmd.Context(), sess, question)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, answer)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read question: %w", err)
		}
		return saveHistory(sess)
	},
}

// saveHistory writes the session transcript when --history was given.
func saveHistory(sess *chat.Session) error {
	if askHistoryPath == "" || len(sess.History) == 0 {
		return nil
	}
	data, err := sess.HistoryJSON()
	if err != nil {
		return fmt.Errorf("marshal chat history: %w", err)
	}
	if err := os.WriteFile(askHistoryPath, data, 0o644); err != nil {
		return fmt.Errorf("write chat history: %w", err)
	}
	return nil
}

func init() {
	askCmd.Flags().StringVar(&askHistoryPath, "history", "", "write the session transcript to this JSON file")
}
