package apiv1

import (
	"candidate-flow-backend/controllers"
	assessmenthandler "candidate-flow-backend/lib/assessment"
	apimodels "candidate-flow-backend/models/api"
	assessmentapimodels "candidate-flow-backend/models/api/assessment"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type assessmentApiController struct {
	controllers.BaseAPIController
}

func InitAssessmentApiRouters(app *fiber.App) {
	controller := assessmentApiController{}
	app.Route("assessment", func(router fiber.Router) {
		router.Put("", controller.upsert)
	})
}

// @Summary Сохранение теста вакансии
// @Tags Тесты
// @Description Создание или обновление теста с окном доступности и вопросами
// @Param	body body	 assessmentapimodels.CreateRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/space/assessment [put]
func (c *assessmentApiController) upsert(ctx *fiber.Ctx) error {
	payload := assessmentapimodels.CreateRequest{}
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := assessmenthandler.Instance.Upsert(payload)
	if err != nil {
		logger := log.WithField("opening_id", payload.OpeningID)
		return c.SendError(ctx, logger, err, "Ошибка сохранения теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
