package overdueworker

import (
	"context"
	"time"

	"candidate-flow-backend/db"
	applicationstore "candidate-flow-backend/lib/application/store"
	assessmentstore "candidate-flow-backend/lib/assessment/store"
	"candidate-flow-backend/lib/availability"
	pipelinestore "candidate-flow-backend/lib/pipeline/store"
	baseworker "candidate-flow-backend/lib/utils/base-worker"
	"candidate-flow-backend/models"
)

// StartWorker - периодический поиск заявок, застрявших на этапе теста:
// окно доступности закрылось, а ответы так и не получены.
// Записи журнала не мутируются, заявки остаются на усмотрение рекрутера.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:        *baseworker.NewInstance("OverdueAssessmentWorker", 30*time.Second, 30*time.Minute),
		historyStore:    pipelinestore.NewInstance(db.DB),
		appStore:        applicationstore.NewInstance(db.DB),
		assessmentStore: assessmentstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	historyStore    pipelinestore.Provider
	appStore        applicationstore.Provider
	assessmentStore assessmentstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.historyStore.ListActiveByStage(models.StageTest)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения заявок на этапе теста")
		return
	}
	now := time.Now()
	for _, entry := range list {
		if ctx.Err() != nil {
			break
		}
		if entry.CompletedAt != nil {
			continue
		}
		rec, err := i.appStore.GetByID(entry.ApplicationID)
		if err != nil || rec == nil {
			logger.
				WithError(err).
				WithField("application_id", entry.ApplicationID).
				Error("Ошибка получения заявки")
			continue
		}
		assessment, err := i.assessmentStore.GetByOpeningID(rec.OpeningID)
		if err != nil {
			logger.
				WithError(err).
				WithField("opening_id", rec.OpeningID).
				Error("Ошибка получения теста вакансии")
			continue
		}
		if assessment == nil {
			continue
		}
		window := availability.Window{
			OpensAt:         assessment.OpensAt,
			ClosesAt:        assessment.ClosesAt,
			DurationMinutes: assessment.DurationMinutes,
		}
		if availability.Evaluate(window, now).IsExpired {
			logger.
				WithField("application_id", entry.ApplicationID).
				WithField("opening_id", rec.OpeningID).
				WithField("closed_at", assessment.ClosesAt).
				Warn("Окно теста закрыто, ответы не получены, требуется решение рекрутера")
		}
	}
}
