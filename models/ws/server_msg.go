package wsmodels

type EventCode string

const (
	TurnRecordedCode       EventCode = "turn_recorded"
	InterviewCompletedCode EventCode = "interview_completed"
	ReportReadyCode        EventCode = "report_ready"
)

type ServerMessage struct {
	ToUserID  string    `json:"-"`
	Time      string    `json:"time"`       // время события
	Code      EventCode `json:"code"`       // код события
	SessionID string    `json:"session_id"` // идентификатор сессии интервью
	Msg       string    `json:"msg"`        // текст события
}
