package publicapi

import (
	"time"

	"candidate-flow-backend/controllers"
	assessmenthandler "candidate-flow-backend/lib/assessment"
	apimodels "candidate-flow-backend/models/api"
	assessmentapimodels "candidate-flow-backend/models/api/assessment"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type publicAssessmentApiController struct {
	controllers.BaseAPIController
}

func InitPublicAssessmentApiRouters(app *fiber.App) {
	controller := publicAssessmentApiController{}
	app.Route("assessment", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getAssessment)
			idRoute.Post("", controller.submitAssessment)
		})
	})
}

// @Summary Получение теста
// @Tags Тест кандидата
// @Description Окно доступности и вопросы теста по заявке, состояние окна пересчитывается на каждом запросе
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.AssessmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/public/assessment/{id} [get]
func (c *publicAssessmentApiController) getAssessment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := assessmenthandler.Instance.GetView(id, time.Now())
	if err != nil {
		if errors.Is(err, assessmenthandler.ErrApplicationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		if errors.Is(err, assessmenthandler.ErrNoActiveAssessment) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Ошибка получения теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Отправка ответов
// @Tags Тест кандидата
// @Description Идемпотентное завершение теста, повторная отправка возвращает прежний результат
// @Param   id          		path    string  true         "Идентификатор заявки"
// @Param	body body	 assessmentapimodels.SubmitRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.SubmitResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/public/assessment/{id} [post]
func (c *publicAssessmentApiController) submitAssessment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := assessmentapimodels.SubmitRequest{}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	completedAt, err := assessmenthandler.Instance.CandidateComplete(ctx.UserContext(), id, payload.CandidateID, payload.Answers)
	if err != nil {
		if errors.Is(err, assessmenthandler.ErrApplicationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		if errors.Is(err, assessmenthandler.ErrNoActiveAssessment) ||
			errors.Is(err, assessmenthandler.ErrWindowNotOpen) ||
			errors.Is(err, assessmenthandler.ErrWindowExpired) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(apimodels.NewError(err.Error()))
		}
		if errors.Is(err, assessmenthandler.ErrSubmitBusy) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(apimodels.NewError(err.Error()))
		}
		logger := log.WithField("application_id", id).WithField("candidate_id", payload.CandidateID)
		return c.SendError(ctx, logger, err, "Ошибка сохранения ответов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(assessmentapimodels.SubmitResponse{CompletedAt: completedAt}))
}
