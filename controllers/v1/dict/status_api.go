package dict

import (
	"candidate-flow-backend/controllers"
	statuscatalogprovider "candidate-flow-backend/lib/status-catalog"
	apimodels "candidate-flow-backend/models/api"
	statusapimodels "candidate-flow-backend/models/api/status"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type statusDictApiController struct {
	controllers.BaseAPIController
}

func InitStatusDictApiRouters(app *fiber.App) {
	controller := statusDictApiController{}
	app.Route("status", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("", controller.update)
			idRoute.Put("/activate", controller.activate)
			idRoute.Put("/deactivate", controller.deactivate)
		})
	})
}

// @Summary Справочник статусов
// @Tags Справочники
// @Description Список статусов воронки, параметр active_only фильтрует неактивные
// @Param   active_only	query    bool  false         "только активные"
// @Success 200 {object} apimodels.Response{data=[]statusapimodels.StatusView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/dict/status [get]
func (c *statusDictApiController) list(ctx *fiber.Ctx) error {
	activeOnly := ctx.QueryBool("active_only", false)
	list, err := statuscatalogprovider.Instance.List(activeOnly)
	if err != nil {
		logger := log.WithField("active_only", activeOnly)
		return c.SendError(ctx, logger, err, "Ошибка получения справочника статусов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание статуса
// @Tags Справочники
// @Description Добавление статуса в справочник
// @Param	body body	 statusapimodels.StatusData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/dict/status [post]
func (c *statusDictApiController) create(ctx *fiber.Ctx) error {
	payload := statusapimodels.StatusData{}
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := statuscatalogprovider.Instance.Create(payload)
	if err != nil {
		logger := log.WithField("status_name", payload.Name)
		return c.SendError(ctx, logger, err, "Ошибка создания статуса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление статуса
// @Tags Справочники
// @Description Обновление статуса справочника
// @Param   id          		path    string  true         "Идентификатор статуса"
// @Param	body body	 statusapimodels.StatusData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/dict/status/{id} [put]
func (c *statusDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := statusapimodels.StatusData{}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = statuscatalogprovider.Instance.Update(id, payload)
	if err != nil {
		logger := log.WithField("status_id", id)
		return c.SendError(ctx, logger, err, "Ошибка обновления статуса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Активация статуса
// @Tags Справочники
// @Description Возврат статуса в активный словарь
// @Param   id          		path    string  true         "Идентификатор статуса"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/dict/status/{id}/activate [put]
func (c *statusDictApiController) activate(ctx *fiber.Ctx) error {
	return c.setActive(ctx, true)
}

// @Summary Деактивация статуса
// @Tags Справочники
// @Description Статус скрывается из словаря, история с ним сохраняется
// @Param   id          		path    string  true         "Идентификатор статуса"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/dict/status/{id}/deactivate [put]
func (c *statusDictApiController) deactivate(ctx *fiber.Ctx) error {
	return c.setActive(ctx, false)
}

func (c *statusDictApiController) setActive(ctx *fiber.Ctx, isActive bool) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = statuscatalogprovider.Instance.SetActive(id, isActive)
	if err != nil {
		logger := log.WithField("status_id", id).WithField("is_active", isActive)
		return c.SendError(ctx, logger, err, "Ошибка изменения статуса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
