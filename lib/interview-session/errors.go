package interviewsession

import "errors"

var (
	ErrEmptyQuestionSet    = errors.New("список вопросов пуст")
	ErrSessionCompleted    = errors.New("интервью уже завершено")
	ErrSessionNotCompleted = errors.New("интервью еще не завершено")
	// ErrTurnMismatch - ответ прислан не на текущий вопрос (повторная отправка)
	ErrTurnMismatch = errors.New("ответ относится не к текущему вопросу")
	ErrInvalidState = errors.New("некорректное состояние сессии интервью")
)
