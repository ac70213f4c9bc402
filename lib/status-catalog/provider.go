package statuscatalogprovider

import (
	"candidate-flow-backend/db"
	statuscatalogstore "candidate-flow-backend/lib/status-catalog/store"
	initchecker "candidate-flow-backend/lib/utils/init-checker"
	"candidate-flow-backend/models"
	statusapimodels "candidate-flow-backend/models/api/status"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	List(activeOnly bool) ([]statusapimodels.StatusView, error)
	Create(req statusapimodels.StatusData) (id string, err error)
	Update(id string, req statusapimodels.StatusData) error
	SetActive(id string, isActive bool) error
	// StageOf - авторитетная классификация статуса.
	// Неизвестный идентификатор - ошибка программиста у вызывающего, не пользовательская.
	StageOf(statusID string) (models.StageTag, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: statuscatalogstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store statuscatalogstore.Provider
}

func (i impl) List(activeOnly bool) ([]statusapimodels.StatusView, error) {
	list, err := i.store.List(activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения справочника статусов")
	}
	result := make([]statusapimodels.StatusView, 0, len(list))
	for _, rec := range list {
		result = append(result, statusapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) Create(req statusapimodels.StatusData) (id string, err error) {
	if err = req.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Status{
		Name:     req.Name,
		Color:    req.Color,
		StageTag: req.Stage,
		IsActive: true,
	}
	return i.store.Create(rec)
}

func (i impl) Update(id string, req statusapimodels.StatusData) error {
	if err := req.Validate(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":      req.Name,
		"color":     req.Color,
		"stage_tag": req.Stage,
	}
	return i.store.Update(id, updMap)
}

func (i impl) SetActive(id string, isActive bool) error {
	updMap := map[string]interface{}{
		"is_active": isActive,
	}
	return i.store.Update(id, updMap)
}

func (i impl) StageOf(statusID string) (models.StageTag, error) {
	rec, err := i.store.GetByID(statusID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения статуса")
	}
	if rec == nil {
		return "", errors.Errorf("неизвестный статус: %v", statusID)
	}
	return rec.StageTag, nil
}
