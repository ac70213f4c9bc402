package answerstore

import (
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	// ReplaceForApplication - полная замена ответов по заявке одной операцией,
	// частичная предыдущая попытка не оставляет осиротевших строк.
	ReplaceForApplication(applicationID string, list []dbmodels.AssessmentAnswer) error
	ListByApplication(applicationID string) (list []dbmodels.AssessmentAnswer, err error)
	CountByApplication(applicationID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ReplaceForApplication(applicationID string, list []dbmodels.AssessmentAnswer) error {
	err := i.db.
		Where("application_id = ?", applicationID).
		Delete(&dbmodels.AssessmentAnswer{}).
		Error
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	err = i.db.
		Create(&list).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByApplication(applicationID string) (list []dbmodels.AssessmentAnswer, err error) {
	list = []dbmodels.AssessmentAnswer{}
	err = i.db.
		Model(&dbmodels.AssessmentAnswer{}).
		Where("application_id = ?", applicationID).
		Order("created_at").
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

func (i impl) CountByApplication(applicationID string) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.AssessmentAnswer{}).
		Where("application_id = ?", applicationID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}
