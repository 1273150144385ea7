package ws

import (
	"mock-interview-backend/fiberlog"
	wsclient "mock-interview-backend/lib/ws/client"
	connectionhub "mock-interview-backend/lib/ws/hub/connection-hub"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use(middleware.AuthorizationRequired())
	app.Use(func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Status(fiber.StatusUpgradeRequired).JSON(apimodels.NewError("требуется websocket соединение"))
		}
		userID := middleware.GetUserID(ctx)
		if userID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("в токене не указан пользователь"))
		}
		ctx.Locals(fiberlog.TagUserID, userID)
		return ctx.Next()
	})
	app.Get("/", websocket.New(eventsHandler))
}

// @Summary События интервью
// @Tags Websocket
// @Description События turn_recorded, interview_completed, report_ready по сессиям интервью пользователя
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /ws [get]
func eventsHandler(c *websocket.Conn) {
	userID := c.Locals(fiberlog.TagUserID).(string)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID)
	}()
	client.Dispatch()
}
