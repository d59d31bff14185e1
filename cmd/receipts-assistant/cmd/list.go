package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vesasusuri/receipts-assistant/internal/extract"
)

var showJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored receipts, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		receipts, err := store.GetAll(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(receipts) == 0 {
			fmt.Fprintln(out, "No receipts in database yet.")
			return nil
		}
		for _, r := range receipts {
			total := "not found"
			if r.Total != nil {
				total = extract.FormatPrice(*r.Total, r.Currency)
			}
			date := r.Date
			if date == "" {
				date = "unknown date"
			}
			fmt.Fprintf(out, "#%d  %s  %s  %s  (%d items, uploaded %s)\n",
				r.ID, date, total, r.FileName, len(r.Items),
				r.UploadTimestamp.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one receipt with its items and raw text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid receipt id %q", args[0])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		r, err := store.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showJSON {
			data, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal receipt: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Receipt #%d (%s, %s)\n", r.ID, r.FileName, r.FileType)
		fmt.Fprintf(out, "Date: %s\n", r.Date)
		if r.Total != nil {
			fmt.Fprintf(out, "Total: %s\n", extract.FormatPrice(*r.Total, r.Currency))
		}
		for _, it := range r.Items {
			fmt.Fprintf(out, "  - %s  %s  (%s)\n",
				it.Name, extract.FormatPrice(it.Price, r.Currency), it.Category)
		}
		fmt.Fprintf(out, "\nRaw text:\n%s\n", r.RawText)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the receipt as JSON")
}
