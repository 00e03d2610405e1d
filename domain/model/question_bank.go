package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// QuestionBank is the ordered prompt list loaded once at startup.
// Immutable for the process lifetime.
type QuestionBank struct {
	Questions []string `json:"preguntas"`
}

func LoadQuestionBank(path string) (*QuestionBank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var bank QuestionBank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s is empty", path)
	}
	return &bank, nil
}

func (b *QuestionBank) Len() int {
	return len(b.Questions)
}

func (b *QuestionBank) Question(i int) string {
	return b.Questions[i]
}
