package speech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAudioContentType(t *testing.T) {
	t.Run(`known extensions check`, func(t *testing.T) {
		require.Equal(t, "audio/wav", AudioContentType("answer.wav"))
		require.Equal(t, "audio/wav", AudioContentType("ANSWER.WAV"))
		require.Equal(t, "audio/webm", AudioContentType("rec.webm"))
		require.Equal(t, "audio/mpeg", AudioContentType("q.mp3"))
	})
	t.Run(`unknown extension check`, func(t *testing.T) {
		require.Equal(t, "application/octet-stream", AudioContentType("blob"))
	})
}
