package ocr

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/common"
)

// extractPDF rasterizes each page in order, OCRs every page image, and
// concatenates the per-page text with a page-break marker.
func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = doc.Close() }()

	pages := doc.NumPage()
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		pages = e.cfg.MaxPages
	}
	if pages == 0 {
		return ExtractionResult{SourceType: constants.PDF}, fmt.Errorf("pdf has no pages")
	}

	tmpDir, err := os.MkdirTemp("", "ra-pdf-*")
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF}, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	var b strings.Builder
	for n := 0; n < pages; n++ {
		img, err := doc.ImageDPI(n, float64(e.cfg.DPI))
		if err != nil {
			return ExtractionResult{SourceType: constants.PDF}, fmt.Errorf("render page %d: %w", n+1, err)
		}
		pagePath := filepath.Join(tmpDir, fmt.Sprintf("page-%03d.png", n+1))
		f, err := os.Create(pagePath)
		if err != nil {
			return ExtractionResult{SourceType: constants.PDF}, err
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return ExtractionResult{SourceType: constants.PDF}, fmt.Errorf("encode page %d: %w", n+1, err)
		}
		if err := f.Close(); err != nil {
			return ExtractionResult{SourceType: constants.PDF}, err
		}

		txt, err := e.tesseractOCR(ctx, pagePath)
		if err != nil {
			return ExtractionResult{SourceType: constants.PDF}, fmt.Errorf("ocr page %d: %w", n+1, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}

	txt := Normalize(b.String())
	if strings.TrimSpace(txt) == "" {
		return ExtractionResult{SourceType: constants.PDF},
			fmt.Errorf("%w: no text extracted from pdf %q", common.ErrExtraction, path)
	}

	return ExtractionResult{
		Text:       txt,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
	}, nil
}
