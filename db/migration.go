package db

import (
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Status{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Status")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.HistoryEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры HistoryEntry")
	}
	if err := DB.AutoMigrate(&dbmodels.Assessment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Assessment")
	}
	if err := DB.AutoMigrate(&dbmodels.AssessmentQuestion{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AssessmentQuestion")
	}
	if err := DB.AutoMigrate(&dbmodels.AssessmentAnswer{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AssessmentAnswer")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
