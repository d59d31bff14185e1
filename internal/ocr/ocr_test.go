package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/vesasusuri/receipts-assistant/internal/common"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs of spaces", "a\t\tb   c", "a b c"},
		{"blank line runs collapse", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing space trimmed per line", "a  \nb ", "a\nb"},
		{"surrounding whitespace", "\n\n  hello  \n\n", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// stubRunner fakes the tesseract binary.
type stubRunner struct {
	stdout string
	err    error

	gotName string
	gotArgs []string
}

func (r *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.gotName = name
	r.gotArgs = args
	return []byte(r.stdout), nil, r.err
}

func TestExtractImage(t *testing.T) {
	stub := &stubRunner{stdout: "Bread  2.50\r\nTotal\t2.50\n\n\n\n"}
	e := NewExtractor(Config{TesseractLang: "eng", PSM: 6}, nil)
	e.runner = stub

	res, err := e.Extract(context.Background(), "receipt.jpg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Text != "Bread 2.50\nTotal 2.50" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Method != "image-ocr" || res.Pages != 1 || res.Language != "eng" {
		t.Errorf("result = %+v", res)
	}

	if stub.gotName != "tesseract" {
		t.Errorf("ran %q, want tesseract", stub.gotName)
	}
	want := []string{"receipt.jpg", "stdout", "-l", "eng", "--psm", "6"}
	if len(stub.gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", stub.gotArgs, want)
	}
	for i := range want {
		if stub.gotArgs[i] != want[i] {
			t.Fatalf("args = %v, want %v", stub.gotArgs, want)
		}
	}
}

func TestExtractImageBlankOutputIsError(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = &stubRunner{stdout: "   \n\n  "}

	_, err := e.Extract(context.Background(), "blank.png")
	if !errors.Is(err, common.ErrExtraction) {
		t.Fatalf("blank OCR output error = %v, want ErrExtraction", err)
	}
}

func TestExtractImageCommandFailure(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = &stubRunner{err: errors.New("exit status 1")}

	if _, err := e.Extract(context.Background(), "receipt.jpg"); err == nil {
		t.Fatal("expected error when tesseract fails")
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(context.Background(), "notes.txt"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
