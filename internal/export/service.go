// Package export serializes the full receipt history: a JSON document in the
// exact shape GetAll returns (validated against an embedded schema before it
// is written), or an XLSX workbook with one row per item.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vesasusuri/receipts-assistant/internal/entity"
	"github.com/vesasusuri/receipts-assistant/internal/extract"
	"github.com/vesasusuri/receipts-assistant/internal/repository"
)

type Service struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewService(store *repository.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportJSON writes every receipt with its items to path. The document is
// validated against the export schema first so a malformed export is an
// error, not a surprise for the consumer.
func (s *Service) ExportJSON(ctx context.Context, path string) error {
	start := time.Now()

	recs, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("query receipts: %w", err)
	}
	if recs == nil {
		recs = []*entity.Receipt{}
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal receipts: %w", err)
	}
	if err := ValidateExport(data); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	s.logger.Info("export.json.ok",
		"path", path,
		"receipts", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ExportXLSX writes an XLSX workbook with one row per item.
func (s *Service) ExportXLSX(ctx context.Context, path string) error {
	start := time.Now()

	recs, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Receipt Date",
		"File",
		"Currency",
		"Receipt Total",
		"Item",
		"Price",
		"Category",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		totalStr := ""
		if r.Total != nil {
			totalStr = extract.FormatPrice(*r.Total, r.Currency)
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if len(r.Items) == 0 {
			write(1, r.Date)
			write(2, r.FileName)
			write(3, string(r.Currency))
			write(4, totalStr)
			row++
			continue
		}
		for _, it := range r.Items {
			write(1, r.Date)
			write(2, r.FileName)
			write(3, string(r.Currency))
			write(4, totalStr)
			write(5, it.Name)
			write(6, extract.FormatPrice(it.Price, r.Currency))
			write(7, string(it.Category))
			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 14) // date
	_ = f.SetColWidth(sheet, "B", "B", 28) // file
	_ = f.SetColWidth(sheet, "E", "E", 32) // item
	_ = f.SetColWidth(sheet, "F", "F", 12) // price

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", path,
		"receipts", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
