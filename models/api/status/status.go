package statusapimodels

import (
	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
)

type StatusData struct {
	Name  string          `json:"name"`  // Название статуса
	Color string          `json:"color"` // hex-цвет
	Stage models.StageTag `json:"stage"` // Тег этапа
}

func (r StatusData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название статуса")
	}
	if !r.Stage.IsValid() {
		return errors.Errorf("неизвестный этап: %v", r.Stage)
	}
	return nil
}

type StatusView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Stage    models.StageTag `json:"stage"`
	IsActive bool            `json:"is_active"`
}

func Convert(rec dbmodels.Status) StatusView {
	return StatusView{
		ID:       rec.ID,
		Name:     rec.Name,
		Color:    rec.Color,
		Stage:    rec.StageTag,
		IsActive: rec.IsActive,
	}
}
