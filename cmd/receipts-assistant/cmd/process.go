package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vesasusuri/receipts-assistant/internal/common"
	"github.com/vesasusuri/receipts-assistant/internal/extract"
	"github.com/vesasusuri/receipts-assistant/internal/ocr"
	"github.com/vesasusuri/receipts-assistant/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "OCR a receipt image or PDF, extract its fields and store it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		store, err := openStore()
		if err != nil {
			return err
		}

		fieldExtractor, err := extract.NewExtractor(cfg.Currency, logger)
		if err != nil {
			return err
		}

		categorizer := extract.NewCategorizer()
		if cfg.CategoriesFile != "" {
			categorizer, err = extract.NewCategorizerFromFile(cfg.CategoriesFile)
			if err != nil {
				return err
			}
		}

		ocrExtractor := ocr.NewExtractor(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.Language,
			TessdataDir:   cfg.OCR.TessdataDir,
			PSM:           cfg.OCR.PSM,
			OEM:           cfg.OCR.OEM,
			DPI:           cfg.OCR.DPI,
			MaxPages:      cfg.OCR.MaxPages,
		}, logger)

		processor := pipeline.NewProcessor(logger, ocrExtractor, fieldExtractor, categorizer, store)
		rec, err := processor.ProcessFile(cmd.Context(), args[0])
		if err != nil {
			return common.WrapError(err, "error processing receipt")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Receipt #%d (%s)\n", rec.ID, rec.FileName)
		if rec.Date != "" {
			fmt.Fprintf(out, "Date:  %s\n", rec.Date)
		} else {
			fmt.Fprintln(out, "Date:  not found")
		}
		if rec.Total != nil {
			fmt.Fprintf(out, "Total: %s\n", extract.FormatPrice(*rec.Total, rec.Currency))
		} else {
			fmt.Fprintln(out, "Total: not found")
		}
		for _, it := range rec.Items {
			fmt.Fprintf(out, "  - %s  %s  (%s)\n", it.Name, it.PriceText, it.Category)
		}
		return nil
	},
}
