package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vesasusuri/receipts-assistant/constants"
)

// This file holds every price-normalization rule set in one place. The rule
// sets are NOT interchangeable: ParsePrice/FormatPrice implement the
// currency-aware pair used during extraction, NormalizeLoose is the looser
// variant applied by the store when writing item rows, and StripCurrencyRunes
// and FirstNumber are the two query-side variants. Callers pick by name.

// ParsePrice strips the currency's own symbol/unit token, converts a comma
// decimal separator to a dot and parses the rest as a float. It never fails:
// unparseable input yields 0.0. The symbol strip runs before the unit word,
// so "Lek 500" degrades to "ek 500" and parses as 0.
func ParsePrice(priceText string, currency constants.Currency) float64 {
	s := strings.ReplaceAll(priceText, currency.Symbol(), "")
	if currency == constants.ALL {
		s = strings.ReplaceAll(s, "Lek", "")
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// FormatPrice renders an amount with its currency symbol. Lek carries no
// decimal places; the fraction is truncated toward zero, not rounded.
func FormatPrice(amount float64, currency constants.Currency) string {
	if currency == constants.ALL {
		return fmt.Sprintf("%s%d", currency.Symbol(), int64(amount))
	}
	return fmt.Sprintf("%s%.2f", currency.Symbol(), amount)
}

// NormalizeLoose is the storage-side normalization for item prices: strip a
// leading currency unit marker and thousands-separator commas, then parse.
// Unparseable input defaults to 0.0 so a malformed row never aborts a save.
func NormalizeLoose(priceText string) float64 {
	s := strings.TrimSpace(priceText)
	for _, sym := range []string{"$", "€", "£", "Lek", "L"} {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimPrefix(s, sym)
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// StripCurrencyRunes is the aggregation-side normalization used by the
// category spend query: remove every currency letter/symbol anywhere in the
// string, then parse. Returns ok=false when nothing numeric remains.
func StripCurrencyRunes(priceText string) (float64, bool) {
	s := priceText
	for _, sym := range []string{"L", "$", "€", "£"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var reFirstNumber = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// FirstNumber extracts the first numeric substring from a formatted price,
// treating a comma as a decimal separator. Used by the specific-date query.
func FirstNumber(priceText string) (float64, bool) {
	m := reFirstNumber.FindString(strings.ReplaceAll(priceText, ",", "."))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
