package pipelinehandler

import (
	"time"

	"candidate-flow-backend/db"
	applicationstore "candidate-flow-backend/lib/application/store"
	pipelinestore "candidate-flow-backend/lib/pipeline/store"
	statuscatalogstore "candidate-flow-backend/lib/status-catalog/store"
	"candidate-flow-backend/models"
	applicationapimodels "candidate-flow-backend/models/api/application"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrApplicationNotFound - заявка отсутствует
	ErrApplicationNotFound = errors.New("заявка не найдена")
	// ErrTerminalState - попытка перехода после принятия или отклонения кандидата
	ErrTerminalState = errors.New("заявка в терминальном статусе, переходы запрещены")
	// ErrLedgerConflict - нарушен инвариант единственной активной записи, транзакция отклоняется
	ErrLedgerConflict = errors.New("нарушение целостности журнала: больше одной активной записи")
)

type Provider interface {
	Create(candidateID, openingID string) (id string, err error)
	Get(applicationID string) (applicationapimodels.ApplicationView, error)
	Enter(applicationID, statusID, userID string) error
	Decide(applicationID string, outcome models.StageTag, reason, userID string) error
	Schedule(applicationID string, at time.Time, resourceURL string) error
	List(applicationID string) ([]applicationapimodels.HistoryEntryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// Create - заявка создается при отклике кандидата и сразу входит в первый
// статус этапа administration, создание и вход - одна транзакция.
func (i impl) Create(candidateID, openingID string) (id string, err error) {
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		catalogStore := statuscatalogstore.NewInstance(tx)
		initialStatus, err := catalogStore.FirstByStage(models.StageAdministration)
		if err != nil {
			return errors.Wrap(err, "ошибка получения начального статуса")
		}
		if initialStatus == nil {
			return errors.New("в справочнике нет активного статуса этапа administration")
		}

		appStore := applicationstore.NewInstance(tx)
		rec := dbmodels.Application{
			CandidateID: candidateID,
			OpeningID:   openingID,
		}
		id, err = appStore.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания заявки")
		}
		return i.enterTx(tx, id, initialStatus, "")
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) Get(applicationID string) (applicationapimodels.ApplicationView, error) {
	appStore := applicationstore.NewInstance(db.DB)
	rec, err := appStore.GetByID(applicationID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, ErrApplicationNotFound
	}
	result := applicationapimodels.ConvertApplication(*rec)

	historyStore := pipelinestore.NewInstance(db.DB)
	active, err := historyStore.GetActive(applicationID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "ошибка получения активной записи")
	}
	if active != nil {
		view := applicationapimodels.ConvertHistory(*active)
		result.Current = &view
	}
	return result, nil
}

// Enter - единственная операция, меняющая активную запись журнала.
// Деактивация старой записи, вставка новой и перенос указателя заявки
// фиксируются одной транзакцией, наполовину примененный переход невозможен.
func (i impl) Enter(applicationID, statusID, userID string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		catalogStore := statuscatalogstore.NewInstance(tx)
		status, err := catalogStore.GetByID(statusID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения статуса")
		}
		if status == nil {
			return errors.Errorf("неизвестный статус: %v", statusID)
		}
		return i.enterTx(tx, applicationID, status, userID)
	})
}

// Decide - итоговое решение: фиксирует решение на активной записи
// и выполняет вход в терминальный статус этой же транзакцией.
func (i impl) Decide(applicationID string, outcome models.StageTag, reason, userID string) error {
	if !outcome.IsTerminal() {
		return errors.Errorf("недопустимый исход решения: %v", outcome)
	}
	now := time.Now()
	return db.DB.Transaction(func(tx *gorm.DB) error {
		historyStore := pipelinestore.NewInstance(tx)
		active, err := historyStore.GetActive(applicationID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения активной записи")
		}
		if active == nil {
			return ErrApplicationNotFound
		}
		updMap := map[string]interface{}{
			"decision_made_at": now,
			"decision_made_by": userID,
		}
		if outcome == models.StageRejected && reason != "" {
			updMap["rejection_reason"] = reason
		}
		err = historyStore.UpdateActive(applicationID, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка фиксации решения")
		}

		catalogStore := statuscatalogstore.NewInstance(tx)
		terminalStatus, err := catalogStore.FirstByStage(outcome)
		if err != nil {
			return errors.Wrap(err, "ошибка получения терминального статуса")
		}
		if terminalStatus == nil {
			return errors.Errorf("в справочнике нет активного статуса этапа %v", outcome)
		}
		return i.enterTx(tx, applicationID, terminalStatus, userID)
	})
}

// Schedule - назначение встречи/теста администратором на активной записи
func (i impl) Schedule(applicationID string, at time.Time, resourceURL string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		historyStore := pipelinestore.NewInstance(tx)
		active, err := historyStore.GetActive(applicationID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения активной записи")
		}
		if active == nil {
			return ErrApplicationNotFound
		}
		updMap := map[string]interface{}{
			"scheduled_at": at,
		}
		if resourceURL != "" {
			updMap["resource_url"] = resourceURL
		}
		return historyStore.UpdateActive(applicationID, updMap)
	})
}

func (i impl) List(applicationID string) ([]applicationapimodels.HistoryEntryView, error) {
	historyStore := pipelinestore.NewInstance(db.DB)
	list, err := historyStore.List(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории заявки")
	}
	result := make([]applicationapimodels.HistoryEntryView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ConvertHistory(rec))
	}
	return result, nil
}

func (i impl) enterTx(tx *gorm.DB, applicationID string, status *dbmodels.Status, userID string) error {
	historyStore := pipelinestore.NewInstance(tx)
	active, err := historyStore.GetActive(applicationID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения активной записи")
	}
	activeCount, err := historyStore.ActiveCount(applicationID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки журнала")
	}
	if err = enterGuard(active, activeCount); err != nil {
		return err
	}
	if active != nil {
		// старая запись становится историческим фактом и больше не мутирует
		err = historyStore.Deactivate(applicationID)
		if err != nil {
			return errors.Wrap(err, "ошибка деактивации предыдущей записи")
		}
	}
	rec := dbmodels.HistoryEntry{
		ApplicationID: applicationID,
		StatusID:      status.ID,
		IsActive:      true,
		ProcessedAt:   time.Now(),
	}
	_, err = historyStore.Create(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка создания записи журнала")
	}

	appStore := applicationstore.NewInstance(tx)
	err = appStore.SetCurrentStatus(applicationID, status.ID)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления текущего статуса заявки")
	}

	log.
		WithField("application_id", applicationID).
		WithField("status_id", status.ID).
		WithField("stage", status.StageTag).
		WithField("user_id", userID).
		Info("заявка переведена на этап")
	return nil
}

// enterGuard - предикаты допустимости перехода, вынесены отдельно от транзакции
func enterGuard(active *dbmodels.HistoryEntry, activeCount int64) error {
	if activeCount > 1 {
		return ErrLedgerConflict
	}
	if active != nil && active.Status != nil && active.Status.StageTag.IsTerminal() {
		return ErrTerminalState
	}
	return nil
}
