package filestorage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	t.Run(`object keys check`, func(t *testing.T) {
		require.Equal(t, "sessions/s1/documents/resume.pdf", DocumentKey("s1", "resume", "CV.PDF"))
		require.Equal(t, "sessions/s1/answers/2.webm", AnswerAudioKey("s1", 2, "rec.webm"))
		require.Equal(t, "sessions/s1/answers/0.wav", AnswerAudioKey("s1", 0, "blob"))
		require.Equal(t, "sessions/s1/questions/3.mp3", QuestionAudioKey("s1", 3))
	})
}
