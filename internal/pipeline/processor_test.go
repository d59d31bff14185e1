package pipeline

import (
	"context"
	"testing"
)

func TestProcessFileRejectsUnsupportedExtension(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil, nil)

	for _, path := range []string{"notes.txt", "scan.heic", "receipt"} {
		if _, err := p.ProcessFile(context.Background(), path); err == nil {
			t.Errorf("ProcessFile(%q) accepted an unsupported extension", path)
		}
	}
}
