package constants

import "fmt"

// Currency identifies one of the supported receipt currencies.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	ALL Currency = "ALL"
	GBP Currency = "GBP"
)

var allCurrencies = []Currency{USD, EUR, ALL, GBP}

// currencySymbols maps each currency to its display symbol.
var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	ALL: "L",
	GBP: "£",
}

// amountPatterns holds the per-currency amount grammar: optional symbol/unit
// prefix, digits, optional two-digit fraction. EUR and ALL accept a comma
// decimal separator; ALL also accepts the "Lek" unit spelling.
var amountPatterns = map[Currency]string{
	USD: `(?:\$\s*)?(\d+(?:\.\d{2})?)`,
	EUR: `(?:€\s*)?(\d+(?:[,.]\d{2})?)`,
	ALL: `(?:L(?:ek)?\s*)?(\d+(?:[,.]\d{2})?)`,
	GBP: `(?:£\s*)?(\d+(?:\.\d{2})?)`,
}

// ParseCurrency validates input against the closed currency set.
func ParseCurrency(input string) (Currency, error) {
	for _, c := range allCurrencies {
		if string(c) == input {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported currency: %q", input)
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	return currencySymbols[c]
}

// AmountPattern returns the regexp fragment matching an amount in this
// currency. The fragment contains exactly one capture group (the numeric
// part, without the symbol).
func (c Currency) AmountPattern() string {
	return amountPatterns[c]
}

// Valid reports whether c is a member of the supported set.
func (c Currency) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

func CurrenciesAsStringSlice() []string {
	result := make([]string, len(allCurrencies))
	for i, c := range allCurrencies {
		result[i] = string(c)
	}
	return result
}
