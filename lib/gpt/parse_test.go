package gpthandler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuestions(t *testing.T) {
	t.Run(`json object check`, func(t *testing.T) {
		questions, err := ParseQuestions(`{"questions":["Расскажите о себе","Почему эта вакансия?"]}`)
		require.Nil(t, err)
		require.Equal(t, []string{"Расскажите о себе", "Почему эта вакансия?"}, questions)
	})

	t.Run(`json in markdown fence check`, func(t *testing.T) {
		text := "```json\n{\"questions\":[\"q1\",\"  \",\"q2\"]}\n```"
		questions, err := ParseQuestions(text)
		require.Nil(t, err)
		require.Equal(t, []string{"q1", "q2"}, questions)
	})

	t.Run(`json array check`, func(t *testing.T) {
		questions, err := ParseQuestions(`["q1", "q2", "q3"]`)
		require.Nil(t, err)
		require.Len(t, questions, 3)
	})

	t.Run(`numbered list fallback check`, func(t *testing.T) {
		text := "Вот вопросы:\n1. Расскажите о себе\n2) Опишите сложный проект\n\n- Почему вы уходите?\n"
		questions, err := ParseQuestions(text)
		require.Nil(t, err)
		require.Equal(t, []string{"Расскажите о себе", "Опишите сложный проект", "Почему вы уходите?"}, questions)
	})

	t.Run(`garbage check`, func(t *testing.T) {
		_, err := ParseQuestions("не могу помочь")
		require.NotNil(t, err)
	})

	t.Run(`json without questions check`, func(t *testing.T) {
		for _, text := range []string{`{"questions":[]}`, `{"questions":["  ",""]}`, `[]`, "```json\n{}\n```"} {
			questions, err := ParseQuestions(text)
			require.Nil(t, err, text)
			require.Empty(t, questions, text)
		}
	})
}
