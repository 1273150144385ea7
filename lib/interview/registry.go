package interview

import (
	"sort"
	"sync"
	"time"

	interviewsession "mock-interview-backend/lib/interview-session"
	dbmodels "mock-interview-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type entry struct {
	id             string
	userID         string
	title          string
	jobDescription string
	session        *interviewsession.Session
	createdAt      time.Time

	mu           sync.Mutex
	lastActivity time.Time
	completedAt  time.Time
	report       string
	audioKeys    map[int]string // ключи записей ответов в S3 по индексу вопроса
	abandoned    bool
}

func (e *entry) markAbandoned() {
	e.mu.Lock()
	e.abandoned = true
	e.mu.Unlock()
}

func (e *entry) isAbandoned() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.abandoned
}

func (e *entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastActivity = now
	e.mu.Unlock()
}

func (e *entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastActivity
}

func (e *entry) getReport() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.report
}

func (e *entry) setReport(report string) {
	e.mu.Lock()
	e.report = report
	e.mu.Unlock()
}

func (e *entry) getCompletedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completedAt
}

// dbTurns ответы сессии в формате хранения
func (e *entry) dbTurns() dbmodels.InterviewTurns {
	turns := e.session.Turns()
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make(dbmodels.InterviewTurns, 0, len(turns))
	for _, turn := range turns {
		result = append(result, dbmodels.InterviewTurn{
			QuestionIndex:  turn.QuestionIndex,
			QuestionText:   turn.QuestionText,
			TranscriptText: turn.TranscriptText,
			FeedbackText:   turn.FeedbackText,
			AudioKey:       e.audioKeys[turn.QuestionIndex],
			RecordedAt:     turn.RecordedAt,
		})
	}
	return result
}

type registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func newRegistry() *registry {
	return &registry{entries: map[string]*entry{}}
}

func (r *registry) get(id string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// put возвращает уже зарегистрированную запись, если она есть
func (r *registry) put(e *entry) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[e.id]; ok {
		return existing
	}
	r.entries[e.id] = e
	return e
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	delete(r.entries, id)
	return ok
}

// listByUser записи пользователя, новые первыми
func (r *registry) listByUser(userID string) []*entry {
	r.mu.RLock()
	result := make([]*entry, 0)
	for _, e := range r.entries {
		if e.userID == userID {
			result = append(result, e)
		}
	}
	r.mu.RUnlock()
	sort.Slice(result, func(a, b int) bool {
		return result[a].createdAt.After(result[b].createdAt)
	})
	return result
}

func (r *registry) removeIdle(deadline time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		if e.idleSince().Before(deadline) {
			delete(r.entries, id)
			removed++
			log.
				WithField("session_id", id).
				WithField("user_id", e.userID).
				Debug("сессия интервью выгружена из памяти по неактивности")
		}
	}
	return removed
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func entryFromRecord(rec dbmodels.InterviewSession, now time.Time) (*entry, error) {
	state := interviewsession.State{
		Questions: []string(rec.Questions),
		Turns:     make([]interviewsession.Turn, 0, len(rec.Turns)),
	}
	audioKeys := map[int]string{}
	for _, turn := range rec.Turns {
		state.Turns = append(state.Turns, interviewsession.Turn{
			QuestionIndex:  turn.QuestionIndex,
			QuestionText:   turn.QuestionText,
			TranscriptText: turn.TranscriptText,
			FeedbackText:   turn.FeedbackText,
			RecordedAt:     turn.RecordedAt,
		})
		if turn.AudioKey != "" {
			audioKeys[turn.QuestionIndex] = turn.AudioKey
		}
	}
	session, err := interviewsession.Restore(state)
	if err != nil {
		return nil, err
	}
	e := &entry{
		id:             rec.ID,
		userID:         rec.UserID,
		title:          rec.Title,
		jobDescription: rec.JobDescription,
		session:        session,
		createdAt:      rec.CreatedAt,
		lastActivity:   now,
		report:         rec.Report,
		audioKeys:      audioKeys,
	}
	if rec.CompletedAt != nil {
		e.completedAt = *rec.CompletedAt
	}
	return e, nil
}
