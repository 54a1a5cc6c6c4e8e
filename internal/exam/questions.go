package exam

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

// ParseQuestions reads a question bank in CSV form.
// The header must name the columns prompt, option_a, option_b, correct, topic.
func ParseQuestions(data []byte) ([]Question, error) {
	var qs []Question
	if err := gocsv.UnmarshalBytes(data, &qs); err != nil {
		return nil, fmt.Errorf("exam: cannot parse questions: %w", err)
	}

	out := qs[:0]
	for i, q := range qs {
		q.Prompt = strings.TrimSpace(q.Prompt)
		if q.Prompt == "" {
			continue
		}
		if strings.TrimSpace(q.OptionA) == "" || strings.TrimSpace(q.OptionB) == "" {
			return nil, fmt.Errorf("exam: question %d has an empty option", i+1)
		}
		if q.Correct < 0 || q.Correct >= OptionCount {
			return nil, fmt.Errorf("exam: question %d: correct index %d: %w", i+1, q.Correct, ErrOutOfRange)
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("exam: question bank is empty")
	}
	return out, nil
}
