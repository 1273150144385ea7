package gpthandler

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type questionsResponse struct {
	Questions []string `json:"questions"`
}

var listItemRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+(.+)$`)

// ParseQuestions разбирает ответ модели: сначала как JSON, затем как нумерованный список.
// Корректный JSON без вопросов дает пустой список без ошибки.
func ParseQuestions(text string) ([]string, error) {
	cleaned := cleanJSON(text)
	var resp questionsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err == nil {
		return dropBlank(resp.Questions), nil
	}
	var list []string
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil {
		return dropBlank(list), nil
	}

	var questions []string
	for _, line := range strings.Split(text, "\n") {
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		questions = append(questions, m[1])
	}
	questions = dropBlank(questions)
	if len(questions) == 0 {
		return nil, errors.Errorf("не удалось разобрать вопросы из ответа модели: %v", text)
	}
	return questions, nil
}

// cleanJSON убирает markdown-обертку ```json ... ```
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func dropBlank(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		result = append(result, item)
	}
	return result
}
