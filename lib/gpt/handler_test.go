package gpthandler

import (
	"context"
	"strings"
	"testing"

	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	answer   string
	err      error
	lastUser string
}

func (f *fakeClient) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	f.lastUser = text
	return f.answer, f.err
}

type fakeLogStore struct {
	saved []dbmodels.AiLog
}

func (f *fakeLogStore) Save(rec dbmodels.AiLog) (string, error) {
	f.saved = append(f.saved, rec)
	return "id", nil
}

func (f *fakeLogStore) ListBySession(sessionID string) ([]dbmodels.AiLog, error) {
	return f.saved, nil
}

func TestHandler(t *testing.T) {
	ctx := context.Background()

	t.Run(`GenerateQuestions check`, func(t *testing.T) {
		client := &fakeClient{answer: `{"questions":["q1","q2","q3"]}`}
		logs := &fakeLogStore{}
		h := NewProvider(client, dbmodels.AiOpenAIType, logs)

		questions, err := h.GenerateQuestions(ctx, "user", "session", "Go разработчик", "5 лет Go", 2)
		require.Nil(t, err)
		require.Equal(t, []string{"q1", "q2"}, questions)
		require.Contains(t, client.lastUser, "Go разработчик")
		require.Len(t, logs.saved, 1)
		require.Equal(t, dbmodels.AiGenerateQuestionsType, logs.saved[0].ReqestType)
		require.Equal(t, dbmodels.AiOpenAIType, logs.saved[0].AiName)
		require.Equal(t, "session", logs.saved[0].SessionID)
	})

	t.Run(`GenerateQuestions client error check`, func(t *testing.T) {
		h := NewProvider(&fakeClient{err: errors.New("timeout")}, dbmodels.AiYaGptType, nil)
		_, err := h.GenerateQuestions(ctx, "user", "session", "jd", "cv", 3)
		require.NotNil(t, err)
	})

	t.Run(`EvaluateAnswer empty answer check`, func(t *testing.T) {
		client := &fakeClient{answer: "  Стоит ответить хотя бы кратко.  "}
		h := NewProvider(client, dbmodels.AiYaGptType, nil)
		feedback, err := h.EvaluateAnswer(ctx, "user", "session", "Расскажите о себе", "")
		require.Nil(t, err)
		require.Equal(t, "Стоит ответить хотя бы кратко.", feedback)
		require.Contains(t, client.lastUser, EmptyAnswerText)
	})

	t.Run(`AnalyzeInterview check`, func(t *testing.T) {
		client := &fakeClient{answer: "Коммуникация: 8"}
		h := NewProvider(client, dbmodels.AiYaGptType, nil)
		_, err := h.AnalyzeInterview(ctx, "user", "session", "jd", nil)
		require.NotNil(t, err)

		report, err := h.AnalyzeInterview(ctx, "user", "session", "jd", []interviewapimodels.TurnView{
			{QuestionIndex: 0, QuestionText: "q1", TranscriptText: "a1"},
			{QuestionIndex: 1, QuestionText: "q2"},
		})
		require.Nil(t, err)
		require.Equal(t, "Коммуникация: 8", report)
		require.True(t, strings.Contains(client.lastUser, "Вопрос 2: q2"))
	})
}
