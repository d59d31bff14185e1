// Package cmd provides the CLI commands for receipts-assistant.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/common"
	"github.com/vesasusuri/receipts-assistant/internal/repository"
)

var (
	debug    bool
	dbPath   string
	currency string

	cfg *common.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "receipts-assistant",
	Short: "Extract structured data from receipt scans and ask questions about it",
	Long: `receipts-assistant turns receipt images and PDFs into structured
records (date, total, line items with categories), stores them in a local
SQLite database, and answers simple spending questions over the history.

Example:
  receipts-assistant process groceries.jpg
  receipts-assistant ask "How much did I spend on food in May 2025?"
  receipts-assistant export receipts.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)

		cfg = common.LoadConfig()
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		if currency != "" {
			cfg.Currency = constants.Currency(currency)
		}
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the receipts database (default from RECEIPTS_DB)")
	rootCmd.PersistentFlags().StringVar(&currency, "currency", "",
		"receipt currency: "+strings.Join(constants.CurrenciesAsStringSlice(), ", "))

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(askCmd)
}

func openStore() (*repository.Store, error) {
	return repository.NewStore(cfg.DBPath, slog.Default())
}
