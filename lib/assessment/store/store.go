package assessmentstore

import (
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.Assessment) (id string, err error)
	GetByID(id string) (*dbmodels.Assessment, error)
	GetByOpeningID(openingID string) (*dbmodels.Assessment, error)
	// ReplaceQuestions - полная замена вопросов теста одной операцией,
	// повторное сохранение теста не оставляет строк от предыдущей версии.
	ReplaceQuestions(assessmentID string, list []dbmodels.AssessmentQuestion) error
	ListQuestions(assessmentID string) (list []dbmodels.AssessmentQuestion, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.Assessment) (id string, err error) {
	if err = rec.Validate(); err != nil {
		return "", err
	}
	existedRec, err := i.GetByOpeningID(rec.OpeningID)
	if err != nil {
		return "", err
	}
	if existedRec != nil {
		rec.ID = existedRec.ID
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Assessment, error) {
	rec := dbmodels.Assessment{}
	err := i.db.
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

func (i impl) GetByOpeningID(openingID string) (*dbmodels.Assessment, error) {
	rec := dbmodels.Assessment{}
	err := i.db.
		Where("opening_id = ?", openingID).
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

func (i impl) ReplaceQuestions(assessmentID string, list []dbmodels.AssessmentQuestion) error {
	err := i.db.
		Where("assessment_id = ?", assessmentID).
		Delete(&dbmodels.AssessmentQuestion{}).
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

func (i impl) ListQuestions(assessmentID string) (list []dbmodels.AssessmentQuestion, err error) {
	list = []dbmodels.AssessmentQuestion{}
	err = i.db.
		Model(&dbmodels.AssessmentQuestion{}).
		Where("assessment_id = ?", assessmentID).
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
