package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Assessment - психометрический тест вакансии с окном доступности.
// Окно описывает когда тест можно пройти и не зависит от того, прошел ли его
// конкретный кандидат. Инвариант: OpensAt < ClosesAt, DurationMinutes > 0.
type Assessment struct {
	BaseModel
	OpeningID       string `gorm:"type:varchar(36);uniqueIndex"`
	Name            string `gorm:"type:varchar(255)"`
	OpensAt         time.Time
	ClosesAt        time.Time
	DurationMinutes int
}

func (a Assessment) Validate() error {
	if !a.OpensAt.Before(a.ClosesAt) {
		return errors.New("дата открытия теста должна быть раньше даты закрытия")
	}
	if a.DurationMinutes <= 0 {
		return errors.New("длительность теста должна быть больше нуля")
	}
	return nil
}

type AssessmentQuestion struct {
	BaseModel
	AssessmentID string          `gorm:"type:varchar(36);index"`
	QuestionText string          `gorm:"type:text"`
	Choices      QuestionChoices `gorm:"type:jsonb"`
}

func (j QuestionChoices) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *QuestionChoices) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type QuestionChoices struct {
	Choices []QuestionChoice `json:"choices"`
}

type QuestionChoice struct {
	ID   string `json:"id"`   // Идентификатор варианта
	Text string `json:"text"` // Текст варианта ответа
}
