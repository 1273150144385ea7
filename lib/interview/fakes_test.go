package interview

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"mock-interview-backend/lib/smtp"
	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"
	wsmodels "mock-interview-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
)

type fakeAi struct {
	mu           sync.Mutex
	questions    []string
	genErr       error
	evalErr      error
	analyzeCalls int
}

func (f *fakeAi) GenerateQuestions(ctx context.Context, userID, sessionID, jobDescription, resume string, count int) ([]string, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.questions, nil
}

func (f *fakeAi) EvaluateAnswer(ctx context.Context, userID, sessionID, question, answer string) (string, error) {
	if f.evalErr != nil {
		return "", f.evalErr
	}
	return "отзыв: " + answer, nil
}

func (f *fakeAi) AnalyzeInterview(ctx context.Context, userID, sessionID, jobDescription string, turns []interviewapimodels.TurnView) (string, error) {
	f.mu.Lock()
	f.analyzeCalls++
	f.mu.Unlock()
	return "Коммуникация: 8", nil
}

type fakeSpeech struct {
	mu              sync.Mutex
	transcribeErr   error
	synthesizeCalls int
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error) {
	if f.transcribeErr != nil {
		return "", f.transcribeErr
	}
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	return "распознано: " + string(data), nil
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	f.mu.Lock()
	f.synthesizeCalls++
	f.mu.Unlock()
	return []byte("mp3:" + text), "audio/mpeg", nil
}

type fakeStore struct {
	mu   sync.Mutex
	recs map[string]dbmodels.InterviewSession
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]dbmodels.InterviewSession{}}
}

func (f *fakeStore) Create(rec dbmodels.InterviewSession) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) Update(id string, updMap map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	for key, value := range updMap {
		switch key {
		case "turns":
			rec.Turns = value.(dbmodels.InterviewTurns)
		case "status":
			rec.Status = value.(dbmodels.InterviewStatus)
		case "completed_at":
			completedAt := value.(time.Time)
			rec.CompletedAt = &completedAt
		case "report":
			rec.Report = value.(string)
		}
	}
	f.recs[id] = rec
	return nil
}

func (f *fakeStore) GetByID(userID, id string) (*dbmodels.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) List(userID string, offset, limit int) ([]dbmodels.InterviewSession, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []dbmodels.InterviewSession
	for _, rec := range f.recs {
		if rec.UserID == userID {
			list = append(list, rec)
		}
	}
	return list, int64(len(list)), nil
}

func (f *fakeStore) ListInProgress() ([]dbmodels.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []dbmodels.InterviewSession
	for _, rec := range f.recs {
		if rec.Status == dbmodels.InterviewInProgress {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) get(id string) dbmodels.InterviewSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs[id]
}

// blockingStore задерживает первое сохранение ответов до закрытия release
type blockingStore struct {
	*fakeStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newBlockingStore(base *fakeStore) *blockingStore {
	return &blockingStore{
		fakeStore: base,
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (s *blockingStore) Update(id string, updMap map[string]interface{}) error {
	if _, ok := updMap["turns"]; ok {
		first := false
		s.once.Do(func() { first = true })
		if first {
			close(s.entered)
			<-s.release
		}
	}
	return s.fakeStore.Update(id, updMap)
}

// stubLLM клиент языковой модели с фиксированным ответом
type stubLLM struct {
	answer string
}

func (s stubLLM) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	return s.answer, nil
}

type fakeFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{objects: map[string][]byte{}}
}

func (f *fakeFiles) UploadObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeFiles) GetObject(ctx context.Context, key string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, "", errors.New("нет объекта")
	}
	return bytes.Clone(data), "audio/mpeg", nil
}

func (f *fakeFiles) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

type fakeHub struct {
	mu       sync.Mutex
	messages []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn) {}
func (f *fakeHub) DeleteClient(userID string)                     {}
func (f *fakeHub) SendClose(userID string)                        {}
func (f *fakeHub) IsConnected(userID string) bool                 { return false }

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
}

func (f *fakeHub) codes() []wsmodels.EventCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]wsmodels.EventCode, 0, len(f.messages))
	for _, msg := range f.messages {
		result = append(result, msg.Code)
	}
	return result
}

type fakeMailer struct {
	configured  bool
	to          string
	attachments []smtp.Attachment
}

func (f *fakeMailer) IsConfigured() bool { return f.configured }

func (f *fakeMailer) SendEMail(to, subject, message string, attachments ...smtp.Attachment) error {
	f.to = to
	f.attachments = attachments
	return nil
}
