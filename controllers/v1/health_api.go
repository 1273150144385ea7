package apiv1

import (
	"mock-interview-backend/controllers"
	"mock-interview-backend/db"
	apimodels "mock-interview-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type healthApiController struct {
	controllers.BaseAPIController
	ping func() error
}

func InitHealthApiRouters(app *fiber.App) {
	controller := healthApiController{ping: db.PingDB}
	app.Get("health", controller.health)
}

// @Summary Проверка работоспособности
// @Tags Сервис
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	if err := c.ping(); err != nil {
		c.GetLogger(ctx).WithError(err).Error("БД недоступна")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("БД недоступна"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
