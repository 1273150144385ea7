package helpers

import (
	"context"
	"strings"
	"unicode/utf8"
)

const HeaderLogIgnore = "X-Log-Ignore"

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// FirstLine первая непустая строка текста, обрезанная до maxLen символов
func FirstLine(text string, maxLen int) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return Truncate(line, maxLen)
	}
	return ""
}

func Truncate(text string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxLen])) + "…"
}
