package interviewsession

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	step := 0
	return func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
}

func requireInvariants(t *testing.T, s *Session) {
	t.Helper()
	turns := s.Turns()
	require.Equal(t, len(turns), s.Cursor())
	require.LessOrEqual(t, s.Cursor(), len(s.Questions()))
	for i, turn := range turns {
		require.Equal(t, i, turn.QuestionIndex)
		require.Equal(t, s.Questions()[i].Text, turn.QuestionText)
	}
	if s.Cursor() == len(s.Questions()) {
		require.Equal(t, StatusCompleted, s.Status())
	} else {
		require.Equal(t, StatusInProgress, s.Status())
	}
}

func TestSession(t *testing.T) {
	t.Run(`Start check`, func(t *testing.T) {
		s, err := Start([]string{"q1", "q2", "q3"})
		require.Nil(t, err)
		require.Equal(t, StatusInProgress, s.Status())
		require.Equal(t, 0, s.Cursor())
		require.Empty(t, s.Turns())
		require.Len(t, s.Questions(), 3)
		require.Equal(t, Question{Index: 2, Text: "q3"}, s.Questions()[2])

		q, err := s.CurrentQuestion()
		require.Nil(t, err)
		require.Equal(t, Question{Index: 0, Text: "q1"}, q)
	})

	t.Run(`Start with empty questions check`, func(t *testing.T) {
		s, err := Start(nil)
		require.Nil(t, s)
		require.True(t, errors.Is(err, ErrEmptyQuestionSet))

		s, err = Start([]string{})
		require.Nil(t, s)
		require.True(t, errors.Is(err, ErrEmptyQuestionSet))
	})

	t.Run(`zero value session check`, func(t *testing.T) {
		s := &Session{}
		require.Equal(t, StatusAwaitingQuestions, s.Status())
		_, err := s.CurrentQuestion()
		require.True(t, errors.Is(err, ErrEmptyQuestionSet))
		_, err = s.RecordTurn("a", "b")
		require.True(t, errors.Is(err, ErrEmptyQuestionSet))
		_, err = s.FinalTranscript()
		require.True(t, errors.Is(err, ErrSessionNotCompleted))
	})

	t.Run(`invariants hold after every RecordTurn`, func(t *testing.T) {
		for n := 1; n <= 6; n++ {
			questions := make([]string, n)
			for i := range questions {
				questions[i] = fmt.Sprintf("вопрос %d", i)
			}
			s, err := Start(questions, WithClock(fixedClock()))
			require.Nil(t, err)
			requireInvariants(t, s)
			for i := 0; i < n; i++ {
				_, err := s.FinalTranscript()
				require.True(t, errors.Is(err, ErrSessionNotCompleted))

				q, err := s.CurrentQuestion()
				require.Nil(t, err)
				require.Equal(t, i, q.Index)

				turn, err := s.RecordTurn(fmt.Sprintf("ответ %d", i), "")
				require.Nil(t, err)
				require.Equal(t, i, turn.QuestionIndex)
				requireInvariants(t, s)
			}
			require.Equal(t, StatusCompleted, s.Status())

			_, err = s.RecordTurn("лишний", "лишний")
			require.True(t, errors.Is(err, ErrSessionCompleted))
			_, err = s.CurrentQuestion()
			require.True(t, errors.Is(err, ErrSessionCompleted))
			require.Len(t, s.Turns(), n)
		}
	})

	t.Run(`two question scenario check`, func(t *testing.T) {
		s, err := Start([]string{"Tell me about yourself.", "Why this role?"}, WithClock(fixedClock()))
		require.Nil(t, err)
		require.Equal(t, 0, s.Cursor())

		_, err = s.RecordTurn("I am a developer.", "Clear, relevant.")
		require.Nil(t, err)
		require.Equal(t, 1, s.Cursor())
		require.Len(t, s.Turns(), 1)
		require.Equal(t, 0, s.Turns()[0].QuestionIndex)
		require.Equal(t, StatusInProgress, s.Status())

		_, err = s.RecordTurn("", "")
		require.Nil(t, err)
		require.Equal(t, 2, s.Cursor())
		require.Len(t, s.Turns(), 2)
		require.Equal(t, StatusCompleted, s.Status())

		transcript, err := s.FinalTranscript()
		require.Nil(t, err)
		require.Len(t, transcript, 2)
		require.Equal(t, "Tell me about yourself.", transcript[0].QuestionText)
		require.Equal(t, "I am a developer.", transcript[0].TranscriptText)
		require.Equal(t, "Clear, relevant.", transcript[0].FeedbackText)
		require.Equal(t, "Why this role?", transcript[1].QuestionText)
		require.Equal(t, "", transcript[1].TranscriptText)
		require.True(t, transcript[0].RecordedAt.Before(transcript[1].RecordedAt))

		_, err = s.RecordTurn("third", "third")
		require.True(t, errors.Is(err, ErrSessionCompleted))
	})

	t.Run(`FinalTranscript returns a copy`, func(t *testing.T) {
		s, err := Start([]string{"q1"})
		require.Nil(t, err)
		_, err = s.RecordTurn("a", "f")
		require.Nil(t, err)
		transcript, err := s.FinalTranscript()
		require.Nil(t, err)
		transcript[0].TranscriptText = "changed"
		again, err := s.FinalTranscript()
		require.Nil(t, err)
		require.Equal(t, "a", again[0].TranscriptText)
	})

	t.Run(`RecordTurnFor stale index check`, func(t *testing.T) {
		s, err := Start([]string{"q1", "q2"})
		require.Nil(t, err)

		_, err = s.RecordTurnFor(1, "a", "")
		require.True(t, errors.Is(err, ErrTurnMismatch))
		require.Equal(t, 0, s.Cursor())

		_, err = s.RecordTurnFor(0, "a", "")
		require.Nil(t, err)
		// повторная отправка того же ответа
		_, err = s.RecordTurnFor(0, "a", "")
		require.True(t, errors.Is(err, ErrTurnMismatch))
		require.Equal(t, 1, s.Cursor())

		_, err = s.RecordTurnFor(1, "b", "")
		require.Nil(t, err)
		_, err = s.RecordTurnFor(2, "c", "")
		require.True(t, errors.Is(err, ErrSessionCompleted))
		requireInvariants(t, s)
	})

	t.Run(`concurrent RecordTurn check`, func(t *testing.T) {
		questions := make([]string, 50)
		for i := range questions {
			questions[i] = fmt.Sprintf("q%d", i)
		}
		s, err := Start(questions)
		require.Nil(t, err)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			completed int
		)
		for w := 0; w < 80; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.RecordTurn("answer", "")
				if err == nil {
					mu.Lock()
					completed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 50, completed)
		requireInvariants(t, s)
	})

	t.Run(`transcript json round trip check`, func(t *testing.T) {
		s, err := Start([]string{"q1", "q2", "q3"}, WithClock(fixedClock()))
		require.Nil(t, err)
		for _, answer := range []string{"один", "", "три"} {
			_, err = s.RecordTurn(answer, "отзыв: "+answer)
			require.Nil(t, err)
		}
		transcript, err := s.FinalTranscript()
		require.Nil(t, err)

		data, err := json.Marshal(transcript)
		require.Nil(t, err)
		var decoded []Turn
		require.Nil(t, json.Unmarshal(data, &decoded))
		require.Equal(t, transcript, decoded)
	})

	t.Run(`Snapshot and Restore check`, func(t *testing.T) {
		s, err := Start([]string{"q1", "q2"}, WithClock(fixedClock()))
		require.Nil(t, err)
		_, err = s.RecordTurn("a1", "f1")
		require.Nil(t, err)

		restored, err := Restore(s.Snapshot())
		require.Nil(t, err)
		require.Equal(t, s.Snapshot(), restored.Snapshot())
		require.Equal(t, 1, restored.Cursor())

		q, err := restored.CurrentQuestion()
		require.Nil(t, err)
		require.Equal(t, "q2", q.Text)
	})

	t.Run(`Restore invalid state check`, func(t *testing.T) {
		_, err := Restore(State{})
		require.True(t, errors.Is(err, ErrEmptyQuestionSet))

		_, err = Restore(State{
			Questions: []string{"q1"},
			Turns:     []Turn{{QuestionIndex: 0, QuestionText: "q1"}, {QuestionIndex: 1, QuestionText: "q2"}},
		})
		require.True(t, errors.Is(err, ErrInvalidState))

		_, err = Restore(State{
			Questions: []string{"q1", "q2"},
			Turns:     []Turn{{QuestionIndex: 1, QuestionText: "q2"}},
		})
		require.True(t, errors.Is(err, ErrInvalidState))

		_, err = Restore(State{
			Questions: []string{"q1", "q2"},
			Turns:     []Turn{{QuestionIndex: 0, QuestionText: "другой"}},
		})
		require.True(t, errors.Is(err, ErrInvalidState))
	})
}
