package speech

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"mock-interview-backend/config"
	openaiclient "mock-interview-backend/lib/gpt/openai-client"
	interviewapimodels "mock-interview-backend/models/api/interview"

	"github.com/openai/openai-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type impl struct {
	client          *openai.Client
	transcribeModel string
	speechModel     string
	voice           string
}

var Instance interviewapimodels.SpeechProvider

func NewHandler() {
	ai := config.Conf.AI.OpenAI
	Instance = impl{
		client:          openaiclient.NewOpenAI(ai.APIKey, ai.BaseURL),
		transcribeModel: ai.TranscribeModel,
		speechModel:     ai.SpeechModel,
		voice:           ai.Voice,
	}
}

func (i impl) Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error) {
	if fileName == "" {
		fileName = "answer.wav"
	}
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, fileName, AudioContentType(fileName)),
		Model: openai.AudioModel(i.transcribeModel),
	}
	resp, err := i.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "ошибка распознавания речи")
	}
	text := strings.TrimSpace(resp.Text)
	log.WithField("file_name", fileName).Debugf("распознано символов: %d", len(text))
	return text, nil
}

func (i impl) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, "", errors.New("пустой текст для синтеза речи")
	}
	params := openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(i.speechModel),
		Voice:          openai.AudioSpeechNewParamsVoice(i.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	resp, err := i.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка синтеза речи")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка чтения синтезированной речи")
	}
	return body, "audio/mpeg", nil
}

// AudioContentType тип содержимого аудиофайла по расширению
func AudioContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".webm":
		return "audio/webm"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
