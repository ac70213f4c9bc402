package db

import (
	statuscatalogstore "candidate-flow-backend/lib/status-catalog/store"
	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillStatuses()
}

// статусы по умолчанию: каждый тег этапа представлен, у этапа test два статуса
var defaultStatuses = []dbmodels.Status{
	{Name: "Рассмотрение анкеты", Color: "#A0A0A0", StageTag: models.StageAdministration, IsActive: true},
	{Name: "Психометрический тест", Color: "#2D9CDB", StageTag: models.StageTest, IsActive: true},
	{Name: "Техническое тестирование", Color: "#56CCF2", StageTag: models.StageTest, IsActive: true},
	{Name: "Интервью с HR", Color: "#F2994A", StageTag: models.StageInterviewHR, IsActive: true},
	{Name: "Интервью с руководителем", Color: "#F2C94C", StageTag: models.StageInterviewUser, IsActive: true},
	{Name: "Медицинский осмотр", Color: "#9B51E0", StageTag: models.StageMedicalCheckup, IsActive: true},
	{Name: "Принят", Color: "#27AE60", StageTag: models.StageHired, IsActive: true},
	{Name: "Отклонен", Color: "#EB5757", StageTag: models.StageRejected, IsActive: true},
}

func fillStatuses() {
	store := statuscatalogstore.NewInstance(DB)
	rowCount, err := store.Count()
	if err != nil {
		log.WithError(err).Error("ошибка проверки справочника статусов")
		return
	}
	if rowCount > 0 {
		return
	}
	for _, rec := range defaultStatuses {
		_, err = store.Create(rec)
		if err != nil {
			log.WithError(err).WithField("status_name", rec.Name).Error("ошибка заполнения справочника статусов")
			return
		}
	}
	log.Info("Справочник статусов заполнен значениями по умолчанию")
}
