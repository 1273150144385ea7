package interview

import (
	"bytes"
	"context"
	"time"

	filestorage "mock-interview-backend/lib/file-storage"
	interviewsession "mock-interview-backend/lib/interview-session"
	"mock-interview-backend/lib/utils/helpers"
	"mock-interview-backend/lib/utils/lock"
	apimodels "mock-interview-backend/models/api"
	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const titleMaxLen = 100

func (i *impl) Start(ctx context.Context, userID string, req interviewapimodels.StartRequest) (interviewapimodels.SessionView, error) {
	sessionID := uuid.NewString()
	logger := log.
		WithField("session_id", sessionID).
		WithField("user_id", userID)

	count := req.QuestionCount
	if count <= 0 {
		count = i.settings.QuestionCount
	}
	if count > i.settings.MaxQuestions {
		count = i.settings.MaxQuestions
	}
	questions, err := i.Ai.GenerateQuestions(ctx, userID, sessionID, req.JobDescription.Text, req.Resume.Text, count)
	if err != nil {
		return interviewapimodels.SessionView{}, errors.Wrap(ErrQuestionGeneration, err.Error())
	}
	session, err := interviewsession.Start(questions)
	if err != nil {
		logger.Warn("модель вернула пустой список вопросов")
		return interviewapimodels.SessionView{}, err
	}

	now := i.Now()
	e := &entry{
		id:             sessionID,
		userID:         userID,
		title:          helpers.FirstLine(req.JobDescription.Text, titleMaxLen),
		jobDescription: req.JobDescription.Text,
		session:        session,
		createdAt:      now.UTC(),
		lastActivity:   now,
		audioKeys:      map[int]string{},
	}
	jdKey := i.uploadDocument(ctx, sessionID, "job-description", req.JobDescription)
	resumeKey := i.uploadDocument(ctx, sessionID, "resume", req.Resume)

	if i.Store != nil {
		rec := dbmodels.InterviewSession{
			BaseUserModel: dbmodels.BaseUserModel{
				BaseModel: dbmodels.BaseModel{ID: sessionID, CreatedAt: e.createdAt},
				UserID:    userID,
			},
			Title:             e.title,
			JobDescription:    req.JobDescription.Text,
			Resume:            req.Resume.Text,
			JobDescriptionKey: jdKey,
			ResumeKey:         resumeKey,
			Questions:         pq.StringArray(questions),
			Turns:             dbmodels.InterviewTurns{},
			Status:            dbmodels.InterviewInProgress,
		}
		if _, err = i.Store.Create(rec); err != nil {
			logger.WithError(err).Error("ошибка сохранения сессии интервью в БД")
		}
	}
	i.sessions.put(e)
	logger.
		WithField("question_count", len(questions)).
		Info("интервью начато")
	return toSessionView(e), nil
}

func (i *impl) uploadDocument(ctx context.Context, sessionID, kind string, doc interviewapimodels.Document) string {
	if i.Files == nil || len(doc.Body) == 0 {
		return ""
	}
	key := filestorage.DocumentKey(sessionID, kind, doc.FileName)
	err := i.Files.UploadObject(ctx, key, bytes.NewReader(doc.Body), int64(len(doc.Body)), "")
	if err != nil {
		log.
			WithField("session_id", sessionID).
			WithError(err).
			Warn("не удалось сохранить исходный документ")
		return ""
	}
	return key
}

func (i *impl) Get(ctx context.Context, userID, sessionID string) (interviewapimodels.SessionView, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	return toSessionView(e), nil
}

func (i *impl) CurrentQuestion(ctx context.Context, userID, sessionID string) (interviewapimodels.QuestionView, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return interviewapimodels.QuestionView{}, err
	}
	q, err := e.session.CurrentQuestion()
	if err != nil {
		return interviewapimodels.QuestionView{}, err
	}
	return interviewapimodels.QuestionView{Index: q.Index, Text: q.Text, Total: len(e.session.Questions())}, nil
}

func (i *impl) List(userID string, pagination apimodels.Pagination) ([]interviewapimodels.SessionListItem, int64, error) {
	offset, limit := pagination.GetOffset()
	if i.Store != nil {
		recs, rowCount, err := i.Store.List(userID, offset, limit)
		if err != nil {
			return nil, 0, errors.Wrap(err, "ошибка получения списка интервью")
		}
		list := make([]interviewapimodels.SessionListItem, 0, len(recs))
		for _, rec := range recs {
			list = append(list, interviewapimodels.SessionListItem{
				ID:          rec.ID,
				Title:       rec.Title,
				Status:      string(rec.Status),
				Total:       len(rec.Questions),
				Answered:    len(rec.Turns),
				CreatedAt:   rec.CreatedAt,
				CompletedAt: rec.CompletedAt,
			})
		}
		return list, rowCount, nil
	}

	entries := i.sessions.listByUser(userID)
	rowCount := int64(len(entries))
	if offset >= len(entries) {
		return []interviewapimodels.SessionListItem{}, rowCount, nil
	}
	entries = entries[offset:]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	list := make([]interviewapimodels.SessionListItem, 0, len(entries))
	for _, e := range entries {
		list = append(list, toListItem(e))
	}
	return list, rowCount, nil
}

// Abandon выполняется под блокировкой сессии, после него ответы не принимаются
func (i *impl) Abandon(ctx context.Context, userID, sessionID string) error {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	_, err = lock.WithDelay(ctx, lockKey(sessionID), i.settings.AnswerLockWait, func() error {
		if e.isAbandoned() {
			return ErrSessionNotFound
		}
		e.markAbandoned()
		i.sessions.remove(sessionID)
		if i.Store != nil {
			err := i.Store.Update(sessionID, map[string]interface{}{"status": dbmodels.InterviewAbandoned})
			if err != nil {
				return errors.Wrap(err, "ошибка обновления статуса интервью")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.
		WithField("session_id", sessionID).
		WithField("user_id", userID).
		Info("интервью прервано")
	return nil
}

// LoadActive поднимает в память незавершенные сессии из БД
func (i *impl) LoadActive() (int, error) {
	if i.Store == nil {
		return 0, nil
	}
	recs, err := i.Store.ListInProgress()
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения незавершенных интервью")
	}
	loaded := 0
	for _, rec := range recs {
		e, err := entryFromRecord(rec, i.Now())
		if err != nil {
			log.
				WithField("session_id", rec.ID).
				WithError(err).
				Error("не удалось восстановить сессию интервью")
			continue
		}
		i.sessions.put(e)
		loaded++
	}
	return loaded, nil
}

func (i *impl) CleanupIdle(ttl time.Duration) int {
	return i.sessions.removeIdle(i.Now().Add(-ttl))
}

// lookup ищет сессию в памяти, затем в БД. Чужие и прерванные сессии не находятся.
func (i *impl) lookup(userID, sessionID string) (*entry, error) {
	if e, ok := i.sessions.get(sessionID); ok {
		if e.userID != userID {
			return nil, ErrSessionNotFound
		}
		e.touch(i.Now())
		return e, nil
	}
	if i.Store == nil {
		return nil, ErrSessionNotFound
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}
	rec, err := i.Store.GetByID(userID, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сессии интервью из БД")
	}
	if rec == nil || rec.Status == dbmodels.InterviewAbandoned {
		return nil, ErrSessionNotFound
	}
	e, err := entryFromRecord(*rec, i.Now())
	if err != nil {
		return nil, err
	}
	return i.sessions.put(e), nil
}

func (i *impl) persistTurns(e *entry) {
	if i.Store == nil {
		return
	}
	updMap := map[string]interface{}{
		"turns": e.dbTurns(),
	}
	if completedAt := e.getCompletedAt(); !completedAt.IsZero() {
		updMap["status"] = dbmodels.InterviewCompleted
		updMap["completed_at"] = completedAt
	}
	if err := i.Store.Update(e.id, updMap); err != nil {
		log.
			WithField("session_id", e.id).
			WithError(err).
			Error("ошибка сохранения ответа в БД")
	}
}
