package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewAbandoned  InterviewStatus = "abandoned"
)

type InterviewSession struct {
	BaseUserModel
	Title             string          `gorm:"type:varchar(255)" comment:"Название (должность из описания вакансии)"`
	JobDescription    string          `comment:"Текст описания вакансии"`
	Resume            string          `comment:"Текст резюме"`
	JobDescriptionKey string          `gorm:"type:varchar(512)" comment:"Ключ файла описания вакансии в S3"`
	ResumeKey         string          `gorm:"type:varchar(512)" comment:"Ключ файла резюме в S3"`
	Questions         pq.StringArray  `gorm:"type:text[]" comment:"Вопросы интервью"`
	Turns             InterviewTurns  `gorm:"type:jsonb" comment:"Ответы кандидата"`
	Status            InterviewStatus `gorm:"type:varchar(32);index"`
	Report            string          `comment:"Итоговый анализ интервью"`
	CompletedAt       *time.Time
}

type InterviewTurn struct {
	QuestionIndex  int       `json:"question_index"`
	QuestionText   string    `json:"question_text"`
	TranscriptText string    `json:"transcript_text"`
	FeedbackText   string    `json:"feedback_text"`
	AudioKey       string    `json:"audio_key,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type InterviewTurns []InterviewTurn

func (j InterviewTurns) Value() (driver.Value, error) {
	if j == nil {
		j = InterviewTurns{}
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *InterviewTurns) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*j = InterviewTurns{}
		return nil
	default:
		return errors.Errorf("неподдерживаемый тип для InterviewTurns: %T", value)
	}
	if err := json.Unmarshal(data, j); err != nil {
		return err
	}
	return nil
}
