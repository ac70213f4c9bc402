package apiv1

import (
	"time"

	"candidate-flow-backend/controllers"
	"candidate-flow-backend/db"
	assessmenthandler "candidate-flow-backend/lib/assessment"
	xlsexport "candidate-flow-backend/lib/export/xls"
	pipelinehandler "candidate-flow-backend/lib/pipeline"
	pipelinestore "candidate-flow-backend/lib/pipeline/store"
	"candidate-flow-backend/middleware"
	"candidate-flow-backend/models"
	apimodels "candidate-flow-backend/models/api"
	applicationapimodels "candidate-flow-backend/models/api/application"
	assessmentapimodels "candidate-flow-backend/models/api/assessment"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("/history", controller.history)
			idRoute.Get("/history/export", controller.exportHistory)
			idRoute.Put("/stage", controller.changeStage)
			idRoute.Put("/schedule", controller.schedule)
			idRoute.Put("/decision", controller.decide)
			idRoute.Put("/evaluation", controller.evaluate)
		})
	})
}

// @Summary Создание заявки кандидата
// @Tags Заявки
// @Description Создание заявки кандидата на вакансию
// @Param	body body	 applicationapimodels.ApplicationCreateRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	payload := applicationapimodels.ApplicationCreateRequest{}
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := pipelinehandler.Instance.Create(payload.CandidateID, payload.OpeningID)
	if err != nil {
		logger := log.
			WithField("candidate_id", payload.CandidateID).
			WithField("opening_id", payload.OpeningID)
		return c.SendError(ctx, logger, err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение заявки
// @Tags Заявки
// @Description Текущее состояние заявки с активной записью истории
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := pipelinehandler.Instance.Get(id)
	if err != nil {
		if errors.Is(err, pipelinehandler.ErrApplicationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary История заявки
// @Tags Заявки
// @Description Журнал прохождения этапов, от старых к новым
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.HistoryEntryView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/space/application/{id}/history [get]
func (c *applicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := pipelinehandler.Instance.List(id)
	if err != nil {
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Ошибка получения истории заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Выгрузка истории заявки
// @Tags Заявки
// @Description Журнал прохождения этапов в xlsx
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @router /api/v1/space/application/{id}/history/export [get]
func (c *applicationApiController) exportHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	historyStore := pipelinestore.NewInstance(db.DB)
	list, err := historyStore.List(id)
	if err != nil {
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Ошибка получения истории заявки")
	}
	buf, err := xlsexport.Instance.ExportHistory(list)
	if err != nil {
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Ошибка выгрузки истории заявки")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="history.xlsx"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Перевод заявки на этап
// @Tags Заявки
// @Description Перевод заявки в указанный статус
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Param	body body	 applicationapimodels.StageChangeRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/space/application/{id}/stage [put]
func (c *applicationApiController) changeStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := applicationapimodels.StageChangeRequest{}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = pipelinehandler.Instance.Enter(id, payload.StatusID, middleware.GetUserID(ctx))
	if err != nil {
		if errors.Is(err, pipelinehandler.ErrTerminalState) || errors.Is(err, pipelinehandler.ErrLedgerConflict) {
			return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id).WithField("status_id", payload.StatusID)
		return c.SendError(ctx, logger, err, "Ошибка перевода заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Назначение встречи или теста
// @Tags Заявки
// @Description Назначение даты и ссылки на ресурс для активного этапа
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Param	body body	 applicationapimodels.ScheduleRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/space/application/{id}/schedule [put]
func (c *applicationApiController) schedule(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := applicationapimodels.ScheduleRequest{}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	at, err := time.Parse(time.RFC3339, payload.ScheduledAt)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("неверный формат даты, ожидается RFC3339"))
	}
	err = pipelinehandler.Instance.Schedule(id, at, payload.ResourceURL)
	if err != nil {
		if errors.Is(err, pipelinehandler.ErrApplicationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Ошибка назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Итоговое решение по заявке
// @Tags Заявки
// @Description Принятие или отклонение кандидата, перевод в терминальный статус
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Param	body body	 applicationapimodels.DecisionRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/space/application/{id}/decision [put]
func (c *applicationApiController) decide(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := applicationapimodels.DecisionRequest{}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	outcome := models.StageTag(payload.Outcome)
	err = pipelinehandler.Instance.Decide(id, outcome, payload.Reason, middleware.GetUserID(ctx))
	if err != nil {
		if errors.Is(err, pipelinehandler.ErrApplicationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		if errors.Is(err, pipelinehandler.ErrTerminalState) || errors.Is(err, pipelinehandler.ErrLedgerConflict) {
			return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id).WithField("outcome", payload.Outcome)
		return c.SendError(ctx, logger, err, "Ошибка фиксации решения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Оценка пройденного теста
// @Tags Заявки
// @Description Сохранение оценки проверяющего, только после завершения теста кандидатом
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Param	body body	 assessmentapimodels.EvaluationRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/space/application/{id}/evaluation [put]
func (c *applicationApiController) evaluate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := assessmentapimodels.EvaluationRequest{}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = assessmenthandler.Instance.ReviewerEvaluate(id, payload.ReviewerID, payload.Score, payload.IsQualified, payload.Notes)
	if err != nil {
		if errors.Is(err, assessmenthandler.ErrApplicationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		if errors.Is(err, assessmenthandler.ErrNoActiveAssessment) || errors.Is(err, assessmenthandler.ErrNotCompleted) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id).WithField("reviewer_id", payload.ReviewerID)
		return c.SendError(ctx, logger, err, "Ошибка сохранения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
