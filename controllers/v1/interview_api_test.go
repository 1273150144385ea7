package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"mock-interview-backend/config"
	"mock-interview-backend/lib/interview"
	authutils "mock-interview-backend/lib/utils/auth-utils"
	interviewapimodels "mock-interview-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeAi struct {
	questions []string
}

func (f *fakeAi) GenerateQuestions(ctx context.Context, userID, sessionID, jobDescription, resume string, count int) ([]string, error) {
	return f.questions, nil
}

func (f *fakeAi) EvaluateAnswer(ctx context.Context, userID, sessionID, question, answer string) (string, error) {
	return "ok", nil
}

func (f *fakeAi) AnalyzeInterview(ctx context.Context, userID, sessionID, jobDescription string, turns []interviewapimodels.TurnView) (string, error) {
	return "report", nil
}

type fakeSpeech struct{}

func (f fakeSpeech) Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error) {
	data, err := io.ReadAll(audio)
	return string(data), err
}

func (f fakeSpeech) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	return []byte(text), "audio/mpeg", nil
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, ai *fakeAi) *fiber.App {
	t.Helper()
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = testSecret
	interview.Instance = interview.NewProvider(interview.Deps{Ai: ai, Speech: fakeSpeech{}}, interview.Settings{})

	app := fiber.New()
	InitInterviewApiRouters(app)
	InitDocumentApiRouters(app)
	return app
}

func authHeader(t *testing.T, userID string) string {
	t.Helper()
	token, err := authutils.SignToken(testSecret, userID, "Test", time.Hour)
	require.Nil(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request, userID string) (int, apiResponse) {
	t.Helper()
	if userID != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader(t, userID))
	}
	resp, err := app.Test(req, -1)
	require.Nil(t, err)
	defer resp.Body.Close()
	var body apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, fileName string, fileBody []byte) *http.Request {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.Nil(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.Nil(t, err)
		_, err = part.Write(fileBody)
		require.Nil(t, err)
	}
	require.Nil(t, w.Close())
	req := httptest.NewRequest(fiber.MethodPost, target, buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func startSession(t *testing.T, app *fiber.App, userID string) interviewapimodels.SessionView {
	t.Helper()
	status, body := doRequest(t, app, formRequest(fiber.MethodPost, "/interview", url.Values{
		"job_description": {"Go developer"},
		"resume":          {"5 лет Go"},
	}), userID)
	require.Equal(t, fiber.StatusOK, status, body.Message)
	var view interviewapimodels.SessionView
	require.Nil(t, json.Unmarshal(body.Data, &view))
	return view
}

func TestInterviewApi(t *testing.T) {
	t.Run(`unauthorized check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{questions: []string{"q1"}})
		status, body := doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/list", nil), "")
		require.Equal(t, fiber.StatusUnauthorized, status)
		require.Equal(t, "fail", body.Status)
	})

	t.Run(`full interview check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{questions: []string{"Tell me about yourself.", "Why this role?"}})
		view := startSession(t, app, "user-1")
		require.Equal(t, "in_progress", view.Status)
		require.Equal(t, 2, view.Total)

		status, body := doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID+"/question", nil), "user-1")
		require.Equal(t, fiber.StatusOK, status)
		var question interviewapimodels.QuestionView
		require.Nil(t, json.Unmarshal(body.Data, &question))
		require.Equal(t, "Tell me about yourself.", question.Text)

		status, _ = doRequest(t, app, jsonRequest(fiber.MethodPost, "/interview/"+view.ID+"/answer/text", `{"question_index":1,"text":"a"}`), "user-1")
		require.Equal(t, fiber.StatusConflict, status)

		status, body = doRequest(t, app, multipartRequest(t, "/interview/"+view.ID+"/answer",
			map[string]string{"question_index": "0"}, "audio", "answer.webm", []byte("I am a developer.")), "user-1")
		require.Equal(t, fiber.StatusOK, status, body.Message)
		var turn interviewapimodels.TurnView
		require.Nil(t, json.Unmarshal(body.Data, &turn))
		require.Equal(t, "I am a developer.", turn.TranscriptText)
		require.Equal(t, "ok", turn.FeedbackText)

		status, _ = doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID+"/transcript", nil), "user-1")
		require.Equal(t, fiber.StatusConflict, status)

		status, _ = doRequest(t, app, jsonRequest(fiber.MethodPost, "/interview/"+view.ID+"/answer/text", `{"question_index":1,"text":""}`), "user-1")
		require.Equal(t, fiber.StatusOK, status)

		status, body = doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID+"/transcript", nil), "user-1")
		require.Equal(t, fiber.StatusOK, status)
		var transcript []interviewapimodels.TurnView
		require.Nil(t, json.Unmarshal(body.Data, &transcript))
		require.Len(t, transcript, 2)
		require.Equal(t, 1, transcript[1].QuestionIndex)

		status, _ = doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID+"/question", nil), "user-1")
		require.Equal(t, fiber.StatusConflict, status)

		status, body = doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID+"/report", nil), "user-1")
		require.Equal(t, fiber.StatusOK, status)
		var report interviewapimodels.ReportView
		require.Nil(t, json.Unmarshal(body.Data, &report))
		require.Equal(t, "report", report.Report)

		status, _ = doRequest(t, app, jsonRequest(fiber.MethodPost, "/interview/"+view.ID+"/report/email", `{"email":"candidate@example.com"}`), "user-1")
		require.Equal(t, fiber.StatusServiceUnavailable, status)

		req := httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID+"/export/pdf", nil)
		req.Header.Set(fiber.HeaderAuthorization, authHeader(t, "user-1"))
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	})

	t.Run(`validation check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{questions: []string{"q1"}})
		status, body := doRequest(t, app, formRequest(fiber.MethodPost, "/interview", url.Values{
			"job_description": {"Go developer"},
		}), "user-1")
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Equal(t, "fail", body.Status)

		view := startSession(t, app, "user-1")
		status, _ = doRequest(t, app, jsonRequest(fiber.MethodPost, "/interview/"+view.ID+"/answer/text", `{"text":"a"}`), "user-1")
		require.Equal(t, fiber.StatusBadRequest, status)

		status, _ = doRequest(t, app, multipartRequest(t, "/interview/"+view.ID+"/answer",
			map[string]string{"question_index": "0"}, "", "", nil), "user-1")
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run(`empty question list check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{})
		status, _ := doRequest(t, app, formRequest(fiber.MethodPost, "/interview", url.Values{
			"job_description": {"Go developer"},
			"resume":          {"5 лет Go"},
		}), "user-1")
		require.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run(`start with document file check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{questions: []string{"q1"}})
		status, body := doRequest(t, app, multipartRequest(t, "/interview",
			map[string]string{"job_description": "Go developer", "question_count": "3"}, "resume_file", "cv.txt", []byte("Иван, 5 лет Go")), "user-1")
		require.Equal(t, fiber.StatusOK, status, body.Message)

		status, _ = doRequest(t, app, multipartRequest(t, "/interview",
			map[string]string{"job_description": "Go developer"}, "resume_file", "cv.png", []byte{1, 2}), "user-1")
		require.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run(`session of another user check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{questions: []string{"q1"}})
		view := startSession(t, app, "user-1")

		status, _ := doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID, nil), "user-2")
		require.Equal(t, fiber.StatusNotFound, status)

		status, _ = doRequest(t, app, httptest.NewRequest(fiber.MethodDelete, "/interview/"+view.ID, nil), "user-1")
		require.Equal(t, fiber.StatusOK, status)
		status, _ = doRequest(t, app, httptest.NewRequest(fiber.MethodGet, "/interview/"+view.ID, nil), "user-1")
		require.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run(`list check`, func(t *testing.T) {
		app := newTestApp(t, &fakeAi{questions: []string{"q1"}})
		startSession(t, app, "user-1")
		startSession(t, app, "user-1")

		req := httptest.NewRequest(fiber.MethodGet, "/interview/list?page=1&limit=1", nil)
		req.Header.Set(fiber.HeaderAuthorization, authHeader(t, "user-1"))
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body struct {
			Data     []interviewapimodels.SessionListItem `json:"data"`
			RowCount int64                                `json:"row_count"`
		}
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Data, 1)
		require.Equal(t, int64(2), body.RowCount)
	})
}

func TestDocumentApi(t *testing.T) {
	app := newTestApp(t, &fakeAi{})

	t.Run(`extract txt check`, func(t *testing.T) {
		status, body := doRequest(t, app, multipartRequest(t, "/document/extract", nil, "file", "jd.txt", []byte("Senior Go\r\n")), "user-1")
		require.Equal(t, fiber.StatusOK, status)
		var resp interviewapimodels.ExtractResponse
		require.Nil(t, json.Unmarshal(body.Data, &resp))
		require.Equal(t, "Senior Go", resp.Text)
	})

	t.Run(`unsupported format check`, func(t *testing.T) {
		status, _ := doRequest(t, app, multipartRequest(t, "/document/extract", nil, "file", "photo.png", []byte{1}), "user-1")
		require.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run(`missing file check`, func(t *testing.T) {
		status, _ := doRequest(t, app, multipartRequest(t, "/document/extract", nil, "", "", nil), "user-1")
		require.Equal(t, fiber.StatusBadRequest, status)
	})
}
