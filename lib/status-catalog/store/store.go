package statuscatalogstore

import (
	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Status) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Status, error)
	List(activeOnly bool) (list []dbmodels.Status, err error)
	FirstByStage(tag models.StageTag) (*dbmodels.Status, error)
	Count() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Status) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Status{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Status, error) {
	rec := dbmodels.Status{}
	err := i.db.
		Model(&dbmodels.Status{}).
		Where("id = ?", id).
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

func (i impl) List(activeOnly bool) (list []dbmodels.Status, err error) {
	list = []dbmodels.Status{}
	tx := i.db.Model(&dbmodels.Status{})
	if activeOnly {
		tx = tx.Where("is_active = true")
	}
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) FirstByStage(tag models.StageTag) (*dbmodels.Status, error) {
	rec := dbmodels.Status{}
	err := i.db.
		Model(&dbmodels.Status{}).
		Where("stage_tag = ?", tag).
		Where("is_active = true").
		Order("created_at").
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

func (i impl) Count() (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.Status{}).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}
