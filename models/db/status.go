package dbmodels

import (
	"candidate-flow-backend/models"
)

// Status - элемент справочника статусов воронки.
// Статусов с одним тегом этапа может быть несколько ("Психометрический тест" и
// "Техническое тестирование" оба относятся к этапу test), поведение определяет тег.
type Status struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255)"`
	Color    string          `gorm:"type:varchar(7)"` // hex-цвет для отображения
	StageTag models.StageTag `gorm:"type:varchar(50);index"`
	IsActive bool
}
