package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vesasusuri/receipts-assistant/constants"
)

// LineItem is one candidate item line: descriptive name plus the formatted
// price text as it will be shown and stored.
type LineItem struct {
	Name  string
	Price string
}

// datePattern pairs a date shape with the layout used to validate it.
// Patterns are tried strictly in slice order; the first shape that both
// matches on a line and parses as a calendar date wins.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

var datePatterns = []datePattern{
	{regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`), "02.01.2006"},
	{regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), "02/01/2006"},
	{regexp.MustCompile(`\d{2}-\d{2}-\d{4}`), "02-01-2006"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
	{regexp.MustCompile(`\d{2}\.\d{2}\.\d{2}`), "02.01.06"},
}

// totalPattern carries an explicit priority so the tie-break between keyword
// matches is a sortable field, not an artifact of evaluation order.
type totalPattern struct {
	re       *regexp.Regexp
	priority int
}

var totalPatterns = []totalPattern{
	{regexp.MustCompile(`(?i)total.*?(\d+(?:[,.]\d{2,3})?)`), 10},
	{regexp.MustCompile(`(?i)amount.*?(\d+(?:[,.]\d{2,3})?)`), 9},
	{regexp.MustCompile(`(?i)sum.*?(\d+(?:[,.]\d{2,3})?)`), 8},
	{regexp.MustCompile(`(?i)total\s+in\s+all.*?(\d+(?:[,.]\d{2,3})?)`), 7},
	{regexp.MustCompile(`(?i)grand\s+total.*?(\d+(?:[,.]\d{2,3})?)`), 6},
}

var reAnyAmount = regexp.MustCompile(`\d+(?:[,.]\d{2,3})?`)

// nonItemWords marks structural receipt lines that never hold an item.
var nonItemWords = []string{
	"total", "subtotal", "cash", "change", "vat", "tax", "receipt",
	"business", "operator", "address", "terminal", "reference", "invoice",
	"merchant", "date", "time", "order", "id:", "nr:", "no:", "code",
}

// Extractor pulls structured fields out of noisy OCR text using ordered
// regex heuristics. It is configured once per currency.
type Extractor struct {
	currency constants.Currency
	itemLine *regexp.Regexp
	logger   *slog.Logger
}

// NewExtractor builds an extractor for the given currency. The currency is
// validated eagerly; nothing downstream ever sees an unsupported value.
func NewExtractor(currency constants.Currency, logger *slog.Logger) (*Extractor, error) {
	if !currency.Valid() {
		return nil, fmt.Errorf("unsupported currency: %q", currency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	// [item name] [price], price anchored at end of line. Lines where a
	// quantity or code follows the price will not extract; that is a known
	// limit of the heuristic, kept on purpose.
	itemLine, err := regexp.Compile(`^(.+?)\s+` + currency.AmountPattern() + `$`)
	if err != nil {
		return nil, fmt.Errorf("compile item pattern: %w", err)
	}
	return &Extractor{currency: currency, itemLine: itemLine, logger: logger}, nil
}

func (e *Extractor) Currency() constants.Currency {
	return e.currency
}

// ExtractDate scans lines in order and returns the first matching date
// normalized to YYYY-MM-DD, or "" when no line holds a parseable date.
func (e *Extractor) ExtractDate(text string) string {
	for _, line := range strings.Split(text, "\n") {
		for _, p := range datePatterns {
			m := p.re.FindString(line)
			if m == "" {
				continue
			}
			t, err := time.Parse(p.layout, m)
			if err != nil {
				continue
			}
			return t.Format("2006-01-02")
		}
	}
	return ""
}

type totalCandidate struct {
	amount   float64
	priority int
}

// ExtractTotal finds the receipt total. Pass 1 collects keyword-marked
// candidates and ranks them by priority, then amount, both descending: a
// "total" line always outranks a "sum" line regardless of magnitude. Pass 2
// falls back to the largest bare number anywhere in the text. Returns nil
// when the text holds no numeric value at all.
func (e *Extractor) ExtractTotal(text string) *float64 {
	lines := strings.Split(text, "\n")

	var candidates []totalCandidate
	for _, line := range lines {
		line = strings.ToLower(line)
		for _, p := range totalPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			amount, ok := parseAmountFragment(m[1])
			if !ok {
				continue
			}
			candidates = append(candidates, totalCandidate{amount: amount, priority: p.priority})
		}
	}
	if len(candidates) > 0 {
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].priority != candidates[j].priority {
				return candidates[i].priority > candidates[j].priority
			}
			return candidates[i].amount > candidates[j].amount
		})
		return &candidates[0].amount
	}

	var best *float64
	for _, line := range lines {
		for _, m := range reAnyAmount.FindAllString(line, -1) {
			amount, ok := parseAmountFragment(m)
			if !ok || amount <= 0 {
				continue
			}
			if best == nil || amount > *best {
				v := amount
				best = &v
			}
		}
	}
	return best
}

// parseAmountFragment keeps digits and separators from a matched fragment
// and parses it with the comma normalized to a dot. Malformed fragments are
// skipped by the caller, never propagated.
func parseAmountFragment(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractItems returns the candidate item lines in order of appearance.
// A candidate is accepted when its name is longer than two characters and
// not purely numeric, and its price parses strictly positive. No
// deduplication happens here.
func (e *Extractor) ExtractItems(text string) []LineItem {
	var items []LineItem
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, nonItemWords) {
			continue
		}

		m := e.itemLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		priceStr := strings.ReplaceAll(m[2], ",", ".")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			continue
		}
		if len(name) > 2 && !isDigits(name) && price > 0 {
			items = append(items, LineItem{
				Name:  name,
				Price: FormatPrice(price, e.currency),
			})
		}
	}
	return items
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
