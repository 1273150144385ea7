package interview

import "github.com/pkg/errors"

var (
	ErrSessionNotFound     = errors.New("сессия интервью не найдена")
	ErrEmailNotConfigured  = errors.New("отправка почты не настроена")
	ErrQuestionGeneration  = errors.New("не удалось сгенерировать вопросы")
	ErrTranscriptionFailed = errors.New("не удалось распознать ответ")
	ErrSynthesisFailed     = errors.New("не удалось озвучить вопрос")
)
