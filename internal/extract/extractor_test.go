package extract

import (
	"testing"

	"github.com/vesasusuri/receipts-assistant/constants"
)

func newTestExtractor(t *testing.T, currency constants.Currency) *Extractor {
	t.Helper()
	e, err := NewExtractor(currency, nil)
	if err != nil {
		t.Fatalf("NewExtractor(%s): %v", currency, err)
	}
	return e
}

func TestNewExtractorRejectsUnsupportedCurrency(t *testing.T) {
	if _, err := NewExtractor("JPY", nil); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
}

func TestExtractDate(t *testing.T) {
	e := newTestExtractor(t, constants.USD)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso", "Invoice date: 2025-03-05\nTotal 12.00", "2025-03-05"},
		{"dotted", "Store XYZ\n05.03.2025\nBread 2.50", "2025-03-05"},
		{"slashed", "Date: 15/04/2025", "2025-04-15"},
		{"dashed", "15-04-2025", "2025-04-15"},
		{"two digit year", "receipt 05.03.25", "2025-03-05"},
		{"first matching line wins", "01.02.2024\n2025-03-05", "2024-02-01"},
		{"invalid calendar date skipped", "32.13.2025\n2025-03-05", "2025-03-05"},
		{"none", "Bread 2.50\nMilk 1.20", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ExtractDate(tt.text); got != tt.want {
				t.Errorf("ExtractDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTotal(t *testing.T) {
	e := newTestExtractor(t, constants.USD)

	ptr := func(v float64) *float64 { return &v }
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"total beats sum regardless of magnitude", "sum 100\ntotal 5", ptr(5)},
		{"total keyword", "subtotal 10.00\ntotal 12.50\nsum 8.00", ptr(12.50)},
		{"amount beats sum", "amount 20.00\nsum 99.00", ptr(20)},
		{"same keyword larger wins", "total 5.00\ntotal 9.00", ptr(9)},
		{"fallback largest number", "Bread 3.20\nMilk 10.00\nEggs 4", ptr(10)},
		{"comma decimal", "Total 12,50", ptr(12.50)},
		{"no numbers", "thank you\ncome again", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractTotal(tt.text)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ExtractTotal(%q) = %v, want nil", tt.text, *got)
			case tt.want != nil && got == nil:
				t.Errorf("ExtractTotal(%q) = nil, want %v", tt.text, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ExtractTotal(%q) = %v, want %v", tt.text, *got, *tt.want)
			}
		})
	}
}

func TestExtractItems(t *testing.T) {
	e := newTestExtractor(t, constants.USD)

	text := "Store XYZ receipt\n" +
		"Bread $2.50\n" +
		"Milk 1.20\n" +
		"Total 3.70\n" +
		"AB 3.00\n" + // name too short
		"1234 5.00\n" + // purely numeric name
		"Sticker 0.00\n" + // non-positive price
		"Coffee 3.50 x2\n" + // price not at end of line
		"Apple N/A\n" + // no numeric price
		"Blue Shirt $19.99"

	items := e.ExtractItems(text)

	want := []LineItem{
		{Name: "Bread", Price: "$2.50"},
		{Name: "Milk", Price: "$1.20"},
		{Name: "Blue Shirt", Price: "$19.99"},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items %v, want %d", len(items), items, len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestExtractItemsLekFormatting(t *testing.T) {
	e := newTestExtractor(t, constants.ALL)

	items := e.ExtractItems("Byrek L120\nBuke 85")
	want := []LineItem{
		{Name: "Byrek", Price: "L120"},
		{Name: "Buke", Price: "L85"},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items %v, want %d", len(items), items, len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestExtractItemsSkipsStructuralLines(t *testing.T) {
	e := newTestExtractor(t, constants.USD)

	text := "Subtotal 10.00\nCash 20.00\nChange 10.00\nVAT 2.00\nOperator 7"
	if items := e.ExtractItems(text); len(items) != 0 {
		t.Errorf("expected no items from structural lines, got %v", items)
	}
}
