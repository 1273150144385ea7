package apiv1

import (
	"mock-interview-backend/controllers"
	"mock-interview-backend/lib/document"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"
	interviewapimodels "mock-interview-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
)

type documentApiController struct {
	controllers.BaseAPIController
}

func InitDocumentApiRouters(app *fiber.App) {
	controller := documentApiController{}
	app.Route("document", func(route fiber.Router) {
		route.Use(middleware.AuthorizationRequired())
		route.Post("extract", controller.extract)
	})
}

// @Summary Извлечь текст из документа
// @Tags Документы
// @Description Поддерживаются pdf, docx, txt
// @Accept  multipart/form-data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file				formData	file	true	"Документ"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ExtractResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document/extract [post]
func (c *documentApiController) extract(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не передан файл"))
	}
	body, err := readFormFile(fh)
	if err != nil {
		return c.SendError(ctx, err)
	}
	text, err := document.Extract(fh.Filename, body)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(interviewapimodels.ExtractResponse{
		FileName: fh.Filename,
		Text:     text,
	}))
}
