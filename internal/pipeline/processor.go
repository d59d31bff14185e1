// Package pipeline coordinates upload processing: OCR, field extraction,
// item categorization, and the transactional save.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/entity"
	"github.com/vesasusuri/receipts-assistant/internal/extract"
	"github.com/vesasusuri/receipts-assistant/internal/ocr"
	"github.com/vesasusuri/receipts-assistant/internal/repository"
)

type Processor struct {
	logger      *slog.Logger
	ocr         *ocr.Extractor
	extractor   *extract.Extractor
	categorizer *extract.Categorizer
	store       *repository.Store
}

func NewProcessor(
	logger *slog.Logger,
	ocrExtractor *ocr.Extractor,
	fieldExtractor *extract.Extractor,
	categorizer *extract.Categorizer,
	store *repository.Store,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if categorizer == nil {
		categorizer = extract.NewCategorizer()
	}
	return &Processor{
		logger:      logger,
		ocr:         ocrExtractor,
		extractor:   fieldExtractor,
		categorizer: categorizer,
		store:       store,
	}
}

// ProcessFile runs the whole upload pipeline for one receipt file and
// returns the persisted receipt. An OCR failure aborts the upload with
// nothing persisted; garbage in individual fields does not (extraction
// recovers locally by skipping bad fragments).
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entity.Receipt, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
	format := constants.MapExtToFormat(ext)

	res, err := p.ocr.Extract(ctx, path)
	if err != nil {
		p.logger.Error("processor.ocr.failed", "path", path, "err", err)
		return nil, fmt.Errorf("ocr extraction: %w", err)
	}
	p.logger.Debug("processor ocr success",
		"path", path, "method", res.Method, "pages", res.Pages,
	)

	date := p.extractor.ExtractDate(res.Text)
	total := p.extractor.ExtractTotal(res.Text)
	lines := p.extractor.ExtractItems(res.Text)

	items := make([]entity.Item, 0, len(lines))
	for _, li := range lines {
		items = append(items, entity.Item{
			Name:      li.Name,
			PriceText: li.Price,
			Category:  p.categorizer.Categorize(li.Name),
		})
	}

	rec := &entity.Receipt{
		Date:     date,
		Total:    total,
		Currency: p.extractor.Currency(),
		RawText:  res.Text,
		FileName: filepath.Base(path),
		FileType: format,
		Items:    items,
	}

	if _, err := p.store.Save(ctx, rec); err != nil {
		p.logger.Error("processor.save.failed", "path", path, "err", err)
		return nil, fmt.Errorf("save receipt: %w", err)
	}

	p.logger.Info("receipt processed",
		"id", rec.ID, "file", rec.FileName,
		"date", rec.Date, "items", len(rec.Items),
	)
	return rec, nil
}
