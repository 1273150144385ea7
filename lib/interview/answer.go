package interview

import (
	"bytes"
	"context"
	"time"

	filestorage "mock-interview-backend/lib/file-storage"
	interviewsession "mock-interview-backend/lib/interview-session"
	"mock-interview-backend/lib/speech"
	"mock-interview-backend/lib/utils/lock"
	interviewapimodels "mock-interview-backend/models/api/interview"
	wsmodels "mock-interview-backend/models/ws"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// answerFunc получает текст ответа на вопрос q, audioKey - ключ записи в S3 (если есть)
type answerFunc func(ctx context.Context, q interviewsession.Question) (text, audioKey string, err error)

func (i *impl) SubmitAudioAnswer(ctx context.Context, userID, sessionID string, questionIndex int, audio []byte, fileName string) (interviewapimodels.TurnView, error) {
	return i.submit(ctx, userID, sessionID, questionIndex, func(ctx context.Context, q interviewsession.Question) (string, string, error) {
		text, err := i.Speech.Transcribe(ctx, bytes.NewReader(audio), fileName)
		if err != nil {
			return "", "", errors.Wrap(ErrTranscriptionFailed, err.Error())
		}
		return text, i.uploadAnswerAudio(ctx, sessionID, q.Index, audio, fileName), nil
	})
}

func (i *impl) SubmitTextAnswer(ctx context.Context, userID, sessionID string, questionIndex int, text string) (interviewapimodels.TurnView, error) {
	return i.submit(ctx, userID, sessionID, questionIndex, func(ctx context.Context, q interviewsession.Question) (string, string, error) {
		return text, "", nil
	})
}

// submit обрабатывает ответ под блокировкой сессии: получение текста, оценка, запись хода.
// При ошибке получения текста сессия не меняется.
func (i *impl) submit(ctx context.Context, userID, sessionID string, questionIndex int, answer answerFunc) (interviewapimodels.TurnView, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return interviewapimodels.TurnView{}, err
	}
	logger := log.
		WithField("session_id", sessionID).
		WithField("user_id", userID).
		WithField("question_index", questionIndex)

	var (
		turn      interviewsession.Turn
		completed bool
	)
	// запись в БД и события выполняются под блокировкой сессии в порядке ходов
	_, err = lock.WithDelay(ctx, lockKey(sessionID), i.settings.AnswerLockWait, func() error {
		if e.isAbandoned() {
			return ErrSessionNotFound
		}
		q, err := e.session.CurrentQuestion()
		if err != nil {
			return err
		}
		if q.Index != questionIndex {
			return errors.Wrapf(interviewsession.ErrTurnMismatch, "текущий вопрос %d", q.Index)
		}
		text, audioKey, err := answer(ctx, q)
		if err != nil {
			return err
		}
		feedback := i.evaluate(ctx, e, q, text)

		turn, err = e.session.RecordTurnFor(questionIndex, text, feedback)
		if err != nil {
			return err
		}
		completed = e.session.Status() == interviewsession.StatusCompleted
		e.mu.Lock()
		if audioKey != "" {
			e.audioKeys[questionIndex] = audioKey
		}
		if completed {
			e.completedAt = turn.RecordedAt
		}
		e.mu.Unlock()

		i.persistTurns(e)
		i.notify(e, wsmodels.TurnRecordedCode, turn.QuestionText)
		if completed {
			i.notify(e, wsmodels.InterviewCompletedCode, e.title)
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("ответ не записан")
		return interviewapimodels.TurnView{}, err
	}
	logger.
		WithField("completed", completed).
		Info("ответ записан")
	return toTurnView(turn), nil
}

// evaluate при ошибке модели возвращает пустой отзыв
func (i *impl) evaluate(ctx context.Context, e *entry, q interviewsession.Question, text string) string {
	feedback, err := i.Ai.EvaluateAnswer(ctx, e.userID, e.id, q.Text, text)
	if err != nil {
		log.
			WithField("session_id", e.id).
			WithField("question_index", q.Index).
			WithError(err).
			Warn("не удалось получить отзыв на ответ, ответ записан без отзыва")
		return ""
	}
	return feedback
}

func (i *impl) uploadAnswerAudio(ctx context.Context, sessionID string, questionIndex int, audio []byte, fileName string) string {
	if i.Files == nil || len(audio) == 0 {
		return ""
	}
	key := filestorage.AnswerAudioKey(sessionID, questionIndex, fileName)
	err := i.Files.UploadObject(ctx, key, bytes.NewReader(audio), int64(len(audio)), speech.AudioContentType(key))
	if err != nil {
		log.
			WithField("session_id", sessionID).
			WithError(err).
			Warn("не удалось сохранить запись ответа")
		return ""
	}
	return key
}

// QuestionAudio озвучка текущего вопроса, синтезированное аудио кешируется в S3
func (i *impl) QuestionAudio(ctx context.Context, userID, sessionID string) ([]byte, string, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return nil, "", err
	}
	q, err := e.session.CurrentQuestion()
	if err != nil {
		return nil, "", err
	}
	logger := log.
		WithField("session_id", sessionID).
		WithField("question_index", q.Index)

	key := filestorage.QuestionAudioKey(sessionID, q.Index)
	if i.Files != nil {
		exists, err := i.Files.Exists(ctx, key)
		if err != nil {
			logger.WithError(err).Warn("ошибка проверки кеша озвучки")
		}
		if exists {
			body, contentType, err := i.Files.GetObject(ctx, key)
			if err == nil {
				return body, contentType, nil
			}
			logger.WithError(err).Warn("ошибка чтения кеша озвучки")
		}
	}

	audio, contentType, err := i.Speech.Synthesize(ctx, q.Text)
	if err != nil {
		return nil, "", errors.Wrap(ErrSynthesisFailed, err.Error())
	}
	if i.Files != nil {
		if err = i.Files.UploadObject(ctx, key, bytes.NewReader(audio), int64(len(audio)), contentType); err != nil {
			logger.WithError(err).Warn("не удалось сохранить озвучку вопроса")
		}
	}
	return audio, contentType, nil
}

func (i *impl) notify(e *entry, code wsmodels.EventCode, msg string) {
	if i.Hub == nil {
		return
	}
	i.Hub.SendMessage(wsmodels.ServerMessage{
		ToUserID:  e.userID,
		Time:      i.Now().Format(time.RFC3339),
		Code:      code,
		SessionID: e.id,
		Msg:       msg,
	})
}

func lockKey(sessionID string) string {
	return "interview:" + sessionID
}
