package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vesasusuri/receipts-assistant/internal/export"
)

var exportXLSX bool

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all receipts to a JSON file (or XLSX with --xlsx)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		svc := export.NewService(store, slog.Default())

		path := args[0]
		if exportXLSX {
			if err := svc.ExportXLSX(cmd.Context(), path); err != nil {
				return err
			}
		} else {
			if err := svc.ExportJSON(cmd.Context(), path); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported receipts to %s\n", path)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored receipts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All receipts deleted.")
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportXLSX, "xlsx", false, "write an XLSX workbook instead of JSON")
}
