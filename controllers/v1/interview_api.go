package apiv1

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"mock-interview-backend/controllers"
	"mock-interview-backend/lib/document"
	"mock-interview-backend/lib/interview"
	"mock-interview-backend/lib/utils/helpers"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"
	interviewapimodels "mock-interview-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type interviewApiController struct {
	controllers.BaseAPIController
	handler interview.Provider
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{handler: interview.Instance}
	app.Route("interview", func(route fiber.Router) {
		route.Use(middleware.AuthorizationRequired())
		route.Use(middleware.UserRequired())
		route.Post("", controller.start)
		route.Get("list", controller.list)
		route.Get(":id", controller.get)
		route.Delete(":id", controller.abandon)
		route.Get(":id/question", controller.currentQuestion)
		route.Get(":id/question/audio", controller.questionAudio)
		route.Post(":id/answer", controller.answerAudio)
		route.Post(":id/answer/text", controller.answerText)
		route.Get(":id/transcript", controller.transcript)
		route.Get(":id/report", controller.report)
		route.Post(":id/report/email", controller.emailReport)
		route.Get(":id/export/pdf", controller.exportPDF)
		route.Get(":id/export/xlsx", controller.exportXLSX)
	})
}

// @Summary Начать интервью
// @Tags Интервью
// @Description Извлекает текст документов, генерирует вопросы и создает сессию интервью.
// @Description Описание вакансии и резюме передаются текстом (job_description, resume) или файлом pdf/docx/txt (job_description_file, resume_file)
// @Accept  multipart/form-data
// @Param   Authorization			header		string	true	"Authorization token"
// @Param   job_description			formData	string	false	"Текст описания вакансии"
// @Param   job_description_file	formData	file	false	"Файл описания вакансии"
// @Param   resume					formData	string	false	"Текст резюме"
// @Param   resume_file				formData	file	false	"Файл резюме"
// @Param   question_count			formData	int		false	"Количество вопросов"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview [post]
func (c *interviewApiController) start(ctx *fiber.Ctx) error {
	var (
		req interviewapimodels.StartRequest
		err error
	)
	req.JobDescription, err = readDocument(ctx, "job_description")
	if err != nil {
		return c.SendError(ctx, err)
	}
	req.Resume, err = readDocument(ctx, "resume")
	if err != nil {
		return c.SendError(ctx, err)
	}
	if countStr := ctx.FormValue("question_count"); countStr != "" {
		req.QuestionCount, err = strconv.Atoi(countStr)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректное количество вопросов"))
		}
	}
	if err = req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Start(ctx.UserContext(), c.GetUserID(ctx), req)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// readDocument текст из поля name или из файла name_file
func readDocument(ctx *fiber.Ctx, name string) (interviewapimodels.Document, error) {
	doc := interviewapimodels.Document{Text: strings.TrimSpace(ctx.FormValue(name))}
	if doc.Text != "" {
		return doc, nil
	}
	fh, err := ctx.FormFile(name + "_file")
	if err != nil {
		// файл не передан
		return doc, nil
	}
	body, err := readFormFile(fh)
	if err != nil {
		return doc, err
	}
	doc.FileName = fh.Filename
	doc.Body = body
	doc.Text, err = document.Extract(fh.Filename, body)
	if err != nil {
		return doc, err
	}
	return doc, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return body, nil
}

// @Summary Список интервью
// @Tags Интервью
// @Description Список интервью пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"Страница (1,2,3..)"
// @Param   limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]interviewapimodels.SessionListItem}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/list [get]
func (c *interviewApiController) list(ctx *fiber.Ctx) error {
	var pagination apimodels.Pagination
	if err := ctx.QueryParser(&pagination); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры страницы"))
	}
	list, rowCount, err := c.handler.List(c.GetUserID(ctx), pagination)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Состояние интервью
// @Tags Интервью
// @Description Статус, курсор и текущий вопрос
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id} [get]
func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	resp, err := c.handler.Get(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Прервать интервью
// @Tags Интервью
// @Description Сессия удаляется из памяти и помечается как прерванная
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id} [delete]
func (c *interviewApiController) abandon(ctx *fiber.Ctx) error {
	if err := c.handler.Abandon(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Текущий вопрос
// @Tags Интервью
// @Description Вопрос, на который ожидается ответ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.QuestionView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/question [get]
func (c *interviewApiController) currentQuestion(ctx *fiber.Ctx) error {
	resp, err := c.handler.CurrentQuestion(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Озвучка текущего вопроса
// @Tags Интервью
// @Description Аудио текущего вопроса (mp3)
// @Produce audio/mpeg
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {file} file
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/interview/{id}/question/audio [get]
func (c *interviewApiController) questionAudio(ctx *fiber.Ctx) error {
	audio, contentType, err := c.handler.QuestionAudio(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(helpers.HeaderLogIgnore, "true")
	ctx.Set(fiber.HeaderContentType, contentType)
	return ctx.Status(fiber.StatusOK).Send(audio)
}

// @Summary Ответ голосом
// @Tags Интервью
// @Description Запись ответа распознается, оценивается и сохраняется. question_index должен совпадать с текущим вопросом
// @Accept  multipart/form-data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Param   question_index		formData	int		true	"Индекс вопроса"
// @Param   audio				formData	file	true	"Запись ответа"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.TurnView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/interview/{id}/answer [post]
func (c *interviewApiController) answerAudio(ctx *fiber.Ctx) error {
	questionIndex, err := strconv.Atoi(ctx.FormValue("question_index"))
	if err != nil || questionIndex < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректный индекс вопроса"))
	}
	fh, err := ctx.FormFile("audio")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не передана запись ответа"))
	}
	audio, err := readFormFile(fh)
	if err != nil {
		return c.SendError(ctx, err)
	}
	resp, err := c.handler.SubmitAudioAnswer(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx), questionIndex, audio, fh.Filename)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Ответ текстом
// @Tags Интервью
// @Description Текстовый ответ на текущий вопрос
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Param	body				body		interviewapimodels.TextAnswerRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.TurnView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/answer/text [post]
func (c *interviewApiController) answerText(ctx *fiber.Ctx) error {
	var payload interviewapimodels.TextAnswerRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.SubmitTextAnswer(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx), *payload.QuestionIndex, payload.Text)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Стенограмма интервью
// @Tags Интервью
// @Description Все ответы в порядке вопросов, доступно только для завершенного интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.TurnView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/transcript [get]
func (c *interviewApiController) transcript(ctx *fiber.Ctx) error {
	resp, err := c.handler.FinalTranscript(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Анализ интервью
// @Tags Интервью
// @Description Оценка коммуникации, соответствия вакансии и уверенности с кратким резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ReportView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/report [get]
func (c *interviewApiController) report(ctx *fiber.Ctx) error {
	resp, err := c.handler.Report(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отправить отчет на почту
// @Tags Интервью
// @Description Pdf со стенограммой и анализом интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Param	body				body		interviewapimodels.EmailReportRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/interview/{id}/report/email [post]
func (c *interviewApiController) emailReport(ctx *fiber.Ctx) error {
	var payload interviewapimodels.EmailReportRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := c.handler.EmailReport(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx), payload.Email); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузить стенограмму в pdf
// @Tags Интервью
// @Produce application/pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {file} file
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/export/pdf [get]
func (c *interviewApiController) exportPDF(ctx *fiber.Ctx) error {
	body, err := c.handler.ExportPDF(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(helpers.HeaderLogIgnore, "true")
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Attachment("interview.pdf")
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Выгрузить стенограмму в xlsx
// @Tags Интервью
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"Идентификатор интервью"
// @Success 200 {file} file
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/export/xlsx [get]
func (c *interviewApiController) exportXLSX(ctx *fiber.Ctx) error {
	buf, err := c.handler.ExportXLSX(ctx.UserContext(), c.GetUserID(ctx), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(helpers.HeaderLogIgnore, "true")
	ctx.Attachment("interview.xlsx")
	return ctx.Status(fiber.StatusOK).SendStream(buf, buf.Len())
}
