package pipelinestore

import (
	"time"

	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.HistoryEntry) (id string, err error)
	GetActive(applicationID string) (*dbmodels.HistoryEntry, error)
	ActiveCount(applicationID string) (int64, error)
	Deactivate(applicationID string) error
	UpdateActive(applicationID string, updMap map[string]interface{}) error
	// SetCompleted - условная запись "установить если пусто":
	// при гонке двух отправок эффективную запись выполнит ровно одна.
	SetCompleted(entryID string, completedAt time.Time, notes string) (updated bool, err error)
	List(applicationID string) (list []dbmodels.HistoryEntry, err error)
	ListActiveByStage(stage models.StageTag) (list []dbmodels.HistoryEntry, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.HistoryEntry) (id string, err error) {
	err = i.db.
		Omit("Status").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetActive(applicationID string) (*dbmodels.HistoryEntry, error) {
	rec := dbmodels.HistoryEntry{}
	err := i.db.
		Model(&dbmodels.HistoryEntry{}).
		Where("application_id = ?", applicationID).
		Where("is_active = true").
		Preload("Status").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ActiveCount(applicationID string) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.HistoryEntry{}).
		Where("application_id = ?", applicationID).
		Where("is_active = true").
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) Deactivate(applicationID string) error {
	err := i.db.
		Model(&dbmodels.HistoryEntry{}).
		Where("application_id = ?", applicationID).
		Where("is_active = true").
		Update("is_active", false).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateActive(applicationID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.HistoryEntry{}).
		Where("application_id = ?", applicationID).
		Where("is_active = true").
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) SetCompleted(entryID string, completedAt time.Time, notes string) (updated bool, err error) {
	tx := i.db.
		Model(&dbmodels.HistoryEntry{}).
		Where("id = ?", entryID).
		Where("completed_at IS NULL").
		Updates(map[string]interface{}{
			"completed_at": completedAt,
			"notes":        notes,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) ListActiveByStage(stage models.StageTag) (list []dbmodels.HistoryEntry, err error) {
	list = []dbmodels.HistoryEntry{}
	err = i.db.
		Model(&dbmodels.HistoryEntry{}).
		Joins("JOIN statuses ON statuses.id = history_entries.status_id").
		Where("statuses.stage_tag = ?", stage).
		Where("history_entries.is_active = true").
		Preload("Status").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) List(applicationID string) (list []dbmodels.HistoryEntry, err error) {
	list = []dbmodels.HistoryEntry{}
	err = i.db.
		Model(&dbmodels.HistoryEntry{}).
		Where("application_id = ?", applicationID).
		Order("created_at").
		Preload("Status").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
