// Package chat answers a small fixed set of natural-language spending
// questions over the receipt store. Intent dispatch is regex-based and
// evaluated in a fixed priority order; anything unrecognized falls through
// to a help message.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vesasusuri/receipts-assistant/internal/entity"
	"github.com/vesasusuri/receipts-assistant/internal/extract"
	"github.com/vesasusuri/receipts-assistant/internal/repository"
)

const (
	answerNoReceipts = "No receipts found for that date."
	answerDefault    = "Sorry, I can answer questions like 'How much did I spend on food in May 2025?' or 'What did I buy on 2025-03-05?'."
)

var (
	reCategorySpend = regexp.MustCompile(`spend on (\w+)(?: in| for)? ?(\w+)? ?(\d{4})?`)
	reMonthToken    = regexp.MustCompile(`(?:(last|this)\s+)?(january|february|march|april|may|june|july|august|september|october|november|december)`)
	reISODate       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// unwantedTerms filters non-purchase lines out of the specific-date answer.
var unwantedTerms = []string{"delivery", "service fee", "tira"}

type Answerer struct {
	store  *repository.Store
	log    *QuestionLog
	logger *slog.Logger
	now    func() time.Time
}

func NewAnswerer(store *repository.Store, log *QuestionLog, logger *slog.Logger) *Answerer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Answerer{store: store, log: log, logger: logger, now: time.Now}
}

// Answer resolves one question against the store, records both turns on the
// session, and appends the question to the question log no matter which
// intent matched.
func (a *Answerer) Answer(ctx context.Context, sess *Session, question string) (string, error) {
	answer, err := a.answerIntent(ctx, question)
	if err != nil {
		return "", err
	}

	sess.append("user", question)
	sess.append("assistant", answer)

	if a.log != nil {
		if err := a.log.Append(question); err != nil {
			a.logger.Warn("failed to log question", "error", err)
		}
	}
	return answer, nil
}

func (a *Answerer) answerIntent(ctx context.Context, question string) (string, error) {
	receipts, err := a.store.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load receipts: %w", err)
	}

	q := strings.ToLower(question)

	if m := reCategorySpend.FindStringSubmatch(q); m != nil {
		return a.answerCategorySpend(receipts, q, m), nil
	}
	if date := reISODate.FindString(question); date != "" {
		return a.answerSpecificDate(receipts, date), nil
	}
	if len(receipts) == 0 {
		return answerNoReceipts, nil
	}
	return answerDefault, nil
}

// answerCategorySpend handles "spend on <category> [in|for] [<month>]
// [<year>]". Any month mention implies a year: an explicit 4-digit year wins,
// "last" selects the previous calendar year, and a bare or "this" month means
// the current one. Without a month the query spans all dates.
func (a *Answerer) answerCategorySpend(receipts []*entity.Receipt, q string, m []string) string {
	category := m[1]
	yearTok := m[3]

	var which, monthName string
	if lm := reMonthToken.FindStringSubmatch(q); lm != nil {
		which, monthName = lm[1], lm[2]
	}
	month := monthIndex(monthName)

	year := 0
	switch {
	case yearTok != "":
		year, _ = strconv.Atoi(yearTok)
	case which == "last":
		year = a.now().Year() - 1
	case monthName != "":
		year = a.now().Year()
	}

	var total float64
	for _, r := range receipts {
		if r.Date == "" {
			continue
		}
		dt, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		if month != 0 && dt.Month() != month {
			continue
		}
		if year != 0 && dt.Year() != year {
			continue
		}
		for _, it := range r.Items {
			if string(it.Category) != category {
				continue
			}
			disp := extract.FormatPrice(it.Price, r.Currency)
			if v, ok := extract.StripCurrencyRunes(disp); ok {
				total += v
			}
		}
	}

	var period string
	switch {
	case monthName != "" && year != 0:
		period = fmt.Sprintf("%s %d", monthName, year)
	case monthName != "":
		period = monthName
	case yearTok != "":
		period = yearTok
	}
	if total > 0 {
		if period != "" {
			return fmt.Sprintf("You spent a total of %s on %s in %s.", formatAmount(total), category, period)
		}
		return fmt.Sprintf("You spent a total of %s on %s.", formatAmount(total), category)
	}
	if period != "" {
		return fmt.Sprintf("No %s purchases found for %s.", category, period)
	}
	return fmt.Sprintf("No %s purchases found.", category)
}

// answerSpecificDate handles questions embedding a YYYY-MM-DD date: list the
// items bought that day (unwanted terms filtered, deduplicated by name,
// first occurrence wins) and sum their prices.
func (a *Answerer) answerSpecificDate(receipts []*entity.Receipt, date string) string {
	seen := make(map[string]bool)
	var names []string
	var total float64

	for _, r := range receipts {
		if r.Date != date || len(r.Items) == 0 {
			continue
		}
		for _, it := range r.Items {
			name := strings.TrimSpace(it.Name)
			if name == "" || containsUnwanted(strings.ToLower(name)) {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)

			disp := extract.FormatPrice(it.Price, r.Currency)
			if v, ok := extract.FirstNumber(disp); ok {
				total += v
			}
		}
	}

	if len(names) == 0 {
		return fmt.Sprintf("No items found for %s.", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "On %s, you spent a total of **%s**.\n\nItems purchased:\n", date, formatAmount(total))
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + name)
	}
	return b.String()
}

func containsUnwanted(name string) bool {
	for _, term := range unwantedTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func monthIndex(name string) time.Month {
	if name == "" {
		return 0
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m
		}
	}
	return 0
}

// formatAmount renders an aggregate with minimal digits: 10 rather than
// 10.00, 3.5 rather than 3.50.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
