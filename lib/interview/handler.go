package interview

import (
	"bytes"
	"context"
	"time"

	"mock-interview-backend/config"
	"mock-interview-backend/db"
	xlsexport "mock-interview-backend/lib/export/xls"
	filestorage "mock-interview-backend/lib/file-storage"
	gpthandler "mock-interview-backend/lib/gpt"
	sessionstore "mock-interview-backend/lib/interview/session-store"
	"mock-interview-backend/lib/smtp"
	"mock-interview-backend/lib/speech"
	connectionhub "mock-interview-backend/lib/ws/hub/connection-hub"
	apimodels "mock-interview-backend/models/api"
	interviewapimodels "mock-interview-backend/models/api/interview"
)

type Provider interface {
	Start(ctx context.Context, userID string, req interviewapimodels.StartRequest) (interviewapimodels.SessionView, error)
	List(userID string, pagination apimodels.Pagination) (list []interviewapimodels.SessionListItem, rowCount int64, err error)
	Get(ctx context.Context, userID, sessionID string) (interviewapimodels.SessionView, error)
	CurrentQuestion(ctx context.Context, userID, sessionID string) (interviewapimodels.QuestionView, error)
	QuestionAudio(ctx context.Context, userID, sessionID string) (audio []byte, contentType string, err error)
	SubmitAudioAnswer(ctx context.Context, userID, sessionID string, questionIndex int, audio []byte, fileName string) (interviewapimodels.TurnView, error)
	SubmitTextAnswer(ctx context.Context, userID, sessionID string, questionIndex int, text string) (interviewapimodels.TurnView, error)
	FinalTranscript(ctx context.Context, userID, sessionID string) ([]interviewapimodels.TurnView, error)
	Report(ctx context.Context, userID, sessionID string) (interviewapimodels.ReportView, error)
	ExportPDF(ctx context.Context, userID, sessionID string) ([]byte, error)
	ExportXLSX(ctx context.Context, userID, sessionID string) (*bytes.Buffer, error)
	EmailReport(ctx context.Context, userID, sessionID, email string) error
	Abandon(ctx context.Context, userID, sessionID string) error
	LoadActive() (int, error)
	CleanupIdle(ttl time.Duration) int
}

var Instance Provider

type Settings struct {
	QuestionCount  int
	MaxQuestions   int
	AnswerLockWait time.Duration
	FontDir        string
}

// Deps внешние зависимости, nil для store/files/hub/mailer отключает соответствующую функцию
type Deps struct {
	Ai     interviewapimodels.AiProvider
	Speech interviewapimodels.SpeechProvider
	Store  sessionstore.Provider
	Files  filestorage.Provider
	Hub    connectionhub.Provider
	Mailer smtp.Provider
	Xls    xlsexport.Provider
	Now    func() time.Time
}

type impl struct {
	Deps
	settings Settings
	sessions *registry
}

func NewHandler() {
	var store sessionstore.Provider
	if db.DB != nil {
		store = sessionstore.NewInstance(db.DB)
	}
	Instance = NewProvider(Deps{
		Ai:     gpthandler.Instance,
		Speech: speech.Instance,
		Store:  store,
		Files:  filestorage.Instance,
		Hub:    connectionhub.Instance,
		Mailer: smtp.Instance,
		Xls:    xlsexport.Instance,
	}, Settings{
		QuestionCount:  config.Conf.Interview.QuestionCount,
		MaxQuestions:   config.Conf.Interview.MaxQuestions,
		AnswerLockWait: config.Conf.Interview.AnswerLockWait,
		FontDir:        config.Conf.Export.FontDir,
	})
}

func NewProvider(deps Deps, settings Settings) Provider {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Xls == nil {
		xlsexport.NewHandler()
		deps.Xls = xlsexport.Instance
	}
	if settings.QuestionCount <= 0 {
		settings.QuestionCount = 5
	}
	if settings.MaxQuestions < settings.QuestionCount {
		settings.MaxQuestions = settings.QuestionCount
	}
	if settings.AnswerLockWait <= 0 {
		settings.AnswerLockWait = 30 * time.Second
	}
	return &impl{
		Deps:     deps,
		settings: settings,
		sessions: newRegistry(),
	}
}
