package interviewsession

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

type Status string

const (
	StatusAwaitingQuestions Status = "awaiting_questions"
	StatusInProgress        Status = "in_progress"
	StatusCompleted         Status = "completed"
)

type Question struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type Turn struct {
	QuestionIndex  int       `json:"question_index"`
	QuestionText   string    `json:"question_text"`
	TranscriptText string    `json:"transcript_text"`
	FeedbackText   string    `json:"feedback_text"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// State - снимок сессии для сохранения/восстановления
type State struct {
	Questions []string `json:"questions"`
	Turns     []Turn   `json:"turns"`
}

type Option func(s *Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session хранит ход одного интервью.
// Курсор не хранится отдельно: это всегда len(turns).
type Session struct {
	mu        sync.Mutex
	questions []Question
	turns     []Turn
	now       func() time.Time
}

func Start(questions []string, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	s := newSession(questions, opts...)
	return s, nil
}

// Restore восстанавливает сессию из снимка с проверкой инвариантов
func Restore(state State, opts ...Option) (*Session, error) {
	if len(state.Questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	if len(state.Turns) > len(state.Questions) {
		return nil, errors.Wrapf(ErrInvalidState, "ответов (%d) больше чем вопросов (%d)", len(state.Turns), len(state.Questions))
	}
	for i, turn := range state.Turns {
		if turn.QuestionIndex != i {
			return nil, errors.Wrapf(ErrInvalidState, "ответ %d относится к вопросу %d", i, turn.QuestionIndex)
		}
		if turn.QuestionText != state.Questions[i] {
			return nil, errors.Wrapf(ErrInvalidState, "текст вопроса в ответе %d не совпадает с вопросом", i)
		}
	}
	s := newSession(state.Questions, opts...)
	s.turns = append(make([]Turn, 0, len(state.Questions)), state.Turns...)
	return s, nil
}

func newSession(questions []string, opts ...Option) *Session {
	s := &Session{
		questions: make([]Question, len(questions)),
		turns:     make([]Turn, 0, len(questions)),
		now:       time.Now,
	}
	for i, text := range questions {
		s.questions[i] = Question{Index: i, Text: text}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) CurrentQuestion() (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return Question{}, ErrEmptyQuestionSet
	}
	if s.isCompleted() {
		return Question{}, ErrSessionCompleted
	}
	return s.questions[len(s.turns)], nil
}

func (s *Session) RecordTurn(transcriptText, feedbackText string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordTurn(transcriptText, feedbackText)
}

// RecordTurnFor записывает ответ только если index совпадает с текущим вопросом
func (s *Session) RecordTurnFor(index int, transcriptText, feedbackText string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return Turn{}, ErrEmptyQuestionSet
	}
	if s.isCompleted() {
		return Turn{}, ErrSessionCompleted
	}
	if index != len(s.turns) {
		return Turn{}, errors.Wrapf(ErrTurnMismatch, "ожидался ответ на вопрос %d, получен на %d", len(s.turns), index)
	}
	return s.recordTurn(transcriptText, feedbackText)
}

func (s *Session) recordTurn(transcriptText, feedbackText string) (Turn, error) {
	if len(s.questions) == 0 {
		return Turn{}, ErrEmptyQuestionSet
	}
	if s.isCompleted() {
		return Turn{}, ErrSessionCompleted
	}
	cursor := len(s.turns)
	turn := Turn{
		QuestionIndex:  cursor,
		QuestionText:   s.questions[cursor].Text,
		TranscriptText: transcriptText,
		FeedbackText:   feedbackText,
		RecordedAt:     s.now().UTC().Round(0),
	}
	s.turns = append(s.turns, turn)
	return turn, nil
}

func (s *Session) FinalTranscript() ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCompleted() {
		return nil, ErrSessionNotCompleted
	}
	return s.copyTurns(), nil
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Question(nil), s.questions...)
}

func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyTurns()
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := State{
		Questions: make([]string, len(s.questions)),
		Turns:     s.copyTurns(),
	}
	for i, q := range s.questions {
		state.Questions[i] = q.Text
	}
	return state
}

func (s *Session) status() Status {
	switch {
	case len(s.questions) == 0:
		return StatusAwaitingQuestions
	case s.isCompleted():
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

func (s *Session) isCompleted() bool {
	return len(s.questions) > 0 && len(s.turns) == len(s.questions)
}

func (s *Session) copyTurns() []Turn {
	return append(make([]Turn, 0, len(s.turns)), s.turns...)
}
