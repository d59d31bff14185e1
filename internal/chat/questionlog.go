package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// QuestionLog appends every asked question to a JSONL file, one record per
// line, regardless of which intent answered it.
type QuestionLog struct {
	path string
	now  func() time.Time
}

type questionRecord struct {
	Question  string `json:"question"`
	Timestamp string `json:"timestamp"`
}

func NewQuestionLog(path string) *QuestionLog {
	return &QuestionLog{path: path, now: time.Now}
}

func (l *QuestionLog) Append(question string) error {
	rec := questionRecord{
		Question:  question,
		Timestamp: l.now().Format(time.RFC3339),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open question log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write question log: %w", err)
	}
	return nil
}
