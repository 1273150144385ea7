package gpthandler

import (
	"context"
	"fmt"
	"strings"

	"mock-interview-backend/config"
	"mock-interview-backend/db"
	openaiclient "mock-interview-backend/lib/gpt/openai-client"
	ailogstore "mock-interview-backend/lib/gpt/store"
	yagptclient "mock-interview-backend/lib/gpt/yagpt-client"
	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Client - общий интерфейс клиентов языковых моделей
type Client interface {
	GenerateByPromtAndText(ctx context.Context, promt, text string) (generatedText string, err error)
}

type impl struct {
	client     Client
	aiName     dbmodels.AiName
	aiLogStore ailogstore.Provider
}

var Instance interviewapimodels.AiProvider

func NewHandler() {
	client, aiName := newClient()
	var logStore ailogstore.Provider
	if db.DB != nil {
		logStore = ailogstore.NewInstance(db.DB)
	}
	Instance = NewProvider(client, aiName, logStore)
}

// NewProvider создает обработчик поверх произвольного клиента, logStore может быть nil
func NewProvider(client Client, aiName dbmodels.AiName, logStore ailogstore.Provider) interviewapimodels.AiProvider {
	return impl{
		client:     client,
		aiName:     aiName,
		aiLogStore: logStore,
	}
}

func newClient() (Client, dbmodels.AiName) {
	ai := config.Conf.AI
	if dbmodels.AiName(ai.Provider) == dbmodels.AiOpenAIType {
		return openaiclient.NewClient(ai.OpenAI.APIKey, ai.OpenAI.BaseURL, ai.OpenAI.ChatModel, ai.OpenAI.Temperature), dbmodels.AiOpenAIType
	}
	return yagptclient.NewClient(ai.YandexGPT.IAMToken, ai.YandexGPT.CatalogID, ai.YandexGPT.Timeout, ai.YandexGPT.Attempts), dbmodels.AiYaGptType
}

func (i impl) GenerateQuestions(ctx context.Context, userID, sessionID, jobDescription, resume string, count int) ([]string, error) {
	logger := log.WithField("session_id", sessionID)
	userPromt := fmt.Sprintf(QuestionsTemplate, jobDescription, resume, count)
	answer, err := i.client.GenerateByPromtAndText(ctx, QuestionsSysPromt, userPromt)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации вопросов интервью")
		return nil, err
	}
	i.saveLog(userID, sessionID, QuestionsSysPromt, userPromt, answer, dbmodels.AiGenerateQuestionsType)

	questions, err := ParseQuestions(answer)
	if err != nil {
		return nil, err
	}
	if count > 0 && len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

func (i impl) EvaluateAnswer(ctx context.Context, userID, sessionID, question, answer string) (string, error) {
	if strings.TrimSpace(answer) == "" {
		answer = EmptyAnswerText
	}
	userPromt := fmt.Sprintf(FeedbackTemplate, question, answer)
	feedback, err := i.client.GenerateByPromtAndText(ctx, FeedbackSysPromt, userPromt)
	if err != nil {
		log.
			WithField("session_id", sessionID).
			WithError(err).
			Error("ошибка оценки ответа кандидата")
		return "", err
	}
	i.saveLog(userID, sessionID, FeedbackSysPromt, userPromt, feedback, dbmodels.AiEvaluateAnswerType)
	return strings.TrimSpace(feedback), nil
}

func (i impl) AnalyzeInterview(ctx context.Context, userID, sessionID, jobDescription string, turns []interviewapimodels.TurnView) (string, error) {
	if len(turns) == 0 {
		return "", errors.New("стенограмма интервью пуста")
	}
	userPromt := fmt.Sprintf(AnalyzeTemplate, jobDescription, FormatTranscript(turns))
	report, err := i.client.GenerateByPromtAndText(ctx, AnalyzeSysPromt, userPromt)
	if err != nil {
		log.
			WithField("session_id", sessionID).
			WithError(err).
			Error("ошибка анализа интервью")
		return "", err
	}
	i.saveLog(userID, sessionID, AnalyzeSysPromt, userPromt, report, dbmodels.AiAnalyzeInterviewType)
	return strings.TrimSpace(report), nil
}

// FormatTranscript текст стенограммы для промта
func FormatTranscript(turns []interviewapimodels.TurnView) string {
	var sb strings.Builder
	for _, turn := range turns {
		answer := turn.TranscriptText
		if strings.TrimSpace(answer) == "" {
			answer = EmptyAnswerText
		}
		fmt.Fprintf(&sb, "Вопрос %d: %s\nОтвет: %s\n\n", turn.QuestionIndex+1, turn.QuestionText, answer)
	}
	return strings.TrimSpace(sb.String())
}

func (i impl) saveLog(userID, sessionID, sysPromt, userPromt, answer string, reqType dbmodels.AiReqestType) {
	if i.aiLogStore == nil {
		return
	}
	rec := dbmodels.AiLog{
		BaseUserModel: dbmodels.BaseUserModel{UserID: userID},
		SessionID:     sessionID,
		SysPromt:      sysPromt,
		UserPromt:     userPromt,
		Answer:        answer,
		ReqestType:    reqType,
		AiName:        i.aiName,
	}
	_, err := i.aiLogStore.Save(rec)
	if err != nil {
		log.
			WithField("session_id", sessionID).
			WithError(err).
			Error("ошибка сохранения лога запроса к ИИ")
	}
}
