package controllers

import (
	"mock-interview-backend/fiberlog"
	"mock-interview-backend/lib/document"
	"mock-interview-backend/lib/interview"
	interviewsession "mock-interview-backend/lib/interview-session"
	"mock-interview-backend/lib/utils/lock"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) string {
	return ctx.Params("id")
}

// GetUserID пользователь из токена, также сохраняется для логгера запросов
func (c *BaseAPIController) GetUserID(ctx *fiber.Ctx) string {
	userID := middleware.GetUserID(ctx)
	ctx.Locals(fiberlog.TagUserID, userID)
	return userID
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("request_id", ctx.GetRespHeader(fiber.HeaderXRequestID)).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("session_id", ctx.Params("id"))
}

// SendError отвечает статусом по типу ошибки
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	status := ErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		c.GetLogger(ctx).WithError(err).Error("ошибка обработки запроса")
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, interviewsession.ErrEmptyQuestionSet),
		errors.Is(err, document.ErrUnsupportedFormat):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, interviewsession.ErrSessionCompleted),
		errors.Is(err, interviewsession.ErrSessionNotCompleted),
		errors.Is(err, interviewsession.ErrTurnMismatch),
		errors.Is(err, lock.ErrLockTimeout):
		return fiber.StatusConflict
	case errors.Is(err, interview.ErrQuestionGeneration),
		errors.Is(err, interview.ErrTranscriptionFailed),
		errors.Is(err, interview.ErrSynthesisFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, interview.ErrEmailNotConfigured):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
