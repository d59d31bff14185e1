package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/common"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (ExtractionResult, error) {
	txt, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return ExtractionResult{SourceType: constants.IMAGE}, err
	}
	txt = Normalize(txt)
	if strings.TrimSpace(txt) == "" {
		return ExtractionResult{SourceType: constants.IMAGE},
			fmt.Errorf("%w: no text extracted from image %q", common.ErrExtraction, path)
	}

	return ExtractionResult{
		Text:       txt,
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Language:   e.cfg.TesseractLang,
	}, nil
}

// tesseractOCR runs `tesseract <file> stdout -l <lang>` and returns the
// decoded text with obvious line noise removed.
func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 512))
	}

	return reBoxNoise.ReplaceAllString(string(out), ""), nil
}
