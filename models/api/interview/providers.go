package interviewapimodels

import (
	"context"
	"io"
)

// AiProvider генерация вопросов и оценка ответов языковой моделью
type AiProvider interface {
	GenerateQuestions(ctx context.Context, userID, sessionID, jobDescription, resume string, count int) ([]string, error)
	EvaluateAnswer(ctx context.Context, userID, sessionID, question, answer string) (feedback string, err error)
	AnalyzeInterview(ctx context.Context, userID, sessionID, jobDescription string, turns []TurnView) (report string, err error)
}

// SpeechProvider распознавание и синтез речи
type SpeechProvider interface {
	Transcribe(ctx context.Context, audio io.Reader, fileName string) (text string, err error)
	Synthesize(ctx context.Context, text string) (audio []byte, contentType string, err error)
}
