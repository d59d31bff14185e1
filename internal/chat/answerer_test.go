package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/entity"
	"github.com/vesasusuri/receipts-assistant/internal/repository"
)

func newTestAnswerer(t *testing.T) (*Answerer, *repository.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := repository.NewStore(filepath.Join(dir, "receipts.db"), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	logPath := filepath.Join(dir, "questions.jsonl")
	return NewAnswerer(store, NewQuestionLog(logPath), nil), store, logPath
}

func saveReceipt(t *testing.T, store *repository.Store, date string, currency constants.Currency, items []entity.Item) {
	t.Helper()
	if _, err := store.Save(context.Background(), &entity.Receipt{
		Date:     date,
		Currency: currency,
		FileName: "test.jpg",
		FileType: constants.IMAGE,
		Items:    items,
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestAnswerCategorySpend(t *testing.T) {
	a, store, _ := newTestAnswerer(t)

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Bread", Price: 4, Category: constants.Food},
		{Name: "Cheese", Price: 6, Category: constants.Food},
		{Name: "Shirt", Price: 20, Category: constants.Clothes},
	})
	// different month, must be excluded by the period filter
	saveReceipt(t, store, "2025-06-01", constants.USD, []entity.Item{
		{Name: "Pizza", Price: 15, Category: constants.Food},
	})

	got, err := a.Answer(context.Background(), NewSession(), "How much did I spend on food in May 2025?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	want := "You spent a total of 10 on food in may 2025."
	if got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}
}

func TestAnswerCategorySpendNoMatches(t *testing.T) {
	a, store, _ := newTestAnswerer(t)

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Bread", Price: 4, Category: constants.Food},
	})

	got, err := a.Answer(context.Background(), NewSession(), "How much did I spend on clothes in May 2025?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	want := "No clothes purchases found for may 2025."
	if got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}
}

func TestAnswerCategorySpendRelativeYear(t *testing.T) {
	a, store, _ := newTestAnswerer(t)
	a.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Bread", Price: 4, Category: constants.Food},
	})
	saveReceipt(t, store, "2026-05-10", constants.USD, []entity.Item{
		{Name: "Bread", Price: 9, Category: constants.Food},
	})

	got, err := a.Answer(context.Background(), NewSession(), "How much did I spend on food last May?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	want := "You spent a total of 4 on food in may 2025."
	if got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}
}

func TestAnswerCategorySpendBareMonthMeansCurrentYear(t *testing.T) {
	a, store, _ := newTestAnswerer(t)
	a.now = func() time.Time { return time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC) }

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Bread", Price: 4, Category: constants.Food},
	})
	saveReceipt(t, store, "2024-05-10", constants.USD, []entity.Item{
		{Name: "Bread", Price: 9, Category: constants.Food},
	})

	got, err := a.Answer(context.Background(), NewSession(), "How much did I spend on food in May?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	want := "You spent a total of 4 on food in may 2025."
	if got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}
}

func TestAnswerSpecificDate(t *testing.T) {
	a, store, _ := newTestAnswerer(t)

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Coffee", Price: 3, Category: constants.Other},
		{Name: "Coffee", Price: 3, Category: constants.Other},
		{Name: "Delivery Fee", Price: 5, Category: constants.Other},
		{Name: "Croissant", Price: 2.5, Category: constants.Food},
	})

	got, err := a.Answer(context.Background(), NewSession(), "What did I buy on 2025-05-10?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	// duplicate names collapse to one entry, one count
	if !strings.HasPrefix(got, "On 2025-05-10, you spent a total of **5.5**.") {
		t.Errorf("answer = %q, want total 5.5", got)
	}
	if strings.Count(got, "- Coffee") != 1 {
		t.Errorf("answer lists Coffee more than once: %q", got)
	}
	if !strings.Contains(got, "- Croissant") {
		t.Errorf("answer missing Croissant: %q", got)
	}
	if strings.Contains(got, "Delivery") {
		t.Errorf("answer includes a filtered non-purchase line: %q", got)
	}
}

func TestAnswerSpecificDateNoItems(t *testing.T) {
	a, store, _ := newTestAnswerer(t)

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Coffee", Price: 3, Category: constants.Other},
	})

	got, err := a.Answer(context.Background(), NewSession(), "What did I buy on 2024-01-01?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "No items found for 2024-01-01." {
		t.Errorf("answer = %q", got)
	}
}

func TestAnswerFallbacks(t *testing.T) {
	a, store, _ := newTestAnswerer(t)

	got, err := a.Answer(context.Background(), NewSession(), "hello there")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != answerNoReceipts {
		t.Errorf("empty store answer = %q, want %q", got, answerNoReceipts)
	}

	saveReceipt(t, store, "2025-05-10", constants.USD, []entity.Item{
		{Name: "Coffee", Price: 3, Category: constants.Other},
	})

	got, err = a.Answer(context.Background(), NewSession(), "hello there")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != answerDefault {
		t.Errorf("fallback answer = %q, want %q", got, answerDefault)
	}
}

func TestAnswerRecordsSessionAndLog(t *testing.T) {
	a, _, logPath := newTestAnswerer(t)
	sess := NewSession()

	questions := []string{"hello", "what did I buy on 2025-05-10?"}
	for _, q := range questions {
		if _, err := a.Answer(context.Background(), sess, q); err != nil {
			t.Fatalf("Answer(%q): %v", q, err)
		}
	}

	if len(sess.History) != 4 {
		t.Fatalf("session history has %d messages, want 4", len(sess.History))
	}
	if sess.History[0].Role != "user" || sess.History[1].Role != "assistant" {
		t.Errorf("history roles = %s, %s", sess.History[0].Role, sess.History[1].Role)
	}

	f, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("open question log: %v", err)
	}
	defer func() { _ = f.Close() }()

	var logged []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec struct {
			Question  string `json:"question"`
			Timestamp string `json:"timestamp"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("bad log line %q: %v", scanner.Text(), err)
		}
		if rec.Timestamp == "" {
			t.Errorf("log line missing timestamp: %q", scanner.Text())
		}
		logged = append(logged, rec.Question)
	}
	if len(logged) != len(questions) {
		t.Fatalf("question log has %d lines, want %d", len(logged), len(questions))
	}
	for i := range questions {
		if logged[i] != questions[i] {
			t.Errorf("log line %d = %q, want %q", i, logged[i], questions[i])
		}
	}
}
