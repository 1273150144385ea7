package interviewapimodels

import (
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Document struct {
	FileName string // имя загруженного файла (пусто если текст передан напрямую)
	Body     []byte // исходный файл
	Text     string // извлеченный текст
}

type StartRequest struct {
	JobDescription Document
	Resume         Document
	QuestionCount  int
}

func (r StartRequest) Validate() error {
	if strings.TrimSpace(r.JobDescription.Text) == "" {
		return errors.New("не заполнено описание вакансии")
	}
	if strings.TrimSpace(r.Resume.Text) == "" {
		return errors.New("не заполнено резюме")
	}
	if r.QuestionCount < 0 {
		return errors.New("количество вопросов не может быть отрицательным")
	}
	return nil
}

type TextAnswerRequest struct {
	QuestionIndex *int   `json:"question_index"` // индекс вопроса, на который дан ответ
	Text          string `json:"text"`           // текст ответа, может быть пустым
}

func (r TextAnswerRequest) Validate() error {
	if r.QuestionIndex == nil {
		return errors.New("не указан индекс вопроса")
	}
	if *r.QuestionIndex < 0 {
		return errors.New("индекс вопроса не может быть отрицательным")
	}
	return nil
}

type EmailReportRequest struct {
	Email string `json:"email"` // адрес получателя отчета
}

func (r EmailReportRequest) Validate() error {
	if r.Email == "" {
		return errors.New("не указан email")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("некорректный email")
	}
	return nil
}

type QuestionView struct {
	Index int    `json:"index"` // индекс вопроса (с 0)
	Text  string `json:"text"`  // текст вопроса
	Total int    `json:"total"` // всего вопросов
}

type TurnView struct {
	QuestionIndex  int       `json:"question_index"`
	QuestionText   string    `json:"question_text"`
	TranscriptText string    `json:"transcript_text"` // распознанный ответ
	FeedbackText   string    `json:"feedback_text"`   // отзыв ИИ
	RecordedAt     time.Time `json:"recorded_at"`
}

type SessionView struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Status          string        `json:"status"` // awaiting_questions | in_progress | completed
	Cursor          int           `json:"cursor"` // индекс следующего вопроса
	Total           int           `json:"total"`
	CurrentQuestion *QuestionView `json:"current_question,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type ReportView struct {
	SessionID string     `json:"session_id"`
	Report    string     `json:"report"` // итоговый анализ интервью
	Turns     []TurnView `json:"turns"`
}

type SessionListItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Total       int        `json:"total"`
	Answered    int        `json:"answered"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ExportData данные для выгрузки стенограммы в pdf/xlsx и отправки на почту
type ExportData struct {
	Title       string
	CreatedAt   time.Time
	CompletedAt time.Time
	Turns       []TurnView
	Report      string
}

type ExtractResponse struct {
	FileName string `json:"file_name"`
	Text     string `json:"text"` // извлеченный текст
}
