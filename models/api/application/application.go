package applicationapimodels

import (
	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
)

type ApplicationCreateRequest struct {
	CandidateID string `json:"candidate_id"` // Идентификатор кандидата
	OpeningID   string `json:"opening_id"`   // Идентификатор вакансии
}

func (r ApplicationCreateRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан идентификатор кандидата")
	}
	if r.OpeningID == "" {
		return errors.New("не указан идентификатор вакансии")
	}
	return nil
}

type StageChangeRequest struct {
	StatusID string `json:"status_id"` // Новый статус заявки
}

func (r StageChangeRequest) Validate() error {
	if r.StatusID == "" {
		return errors.New("не указан статус")
	}
	return nil
}

type DecisionRequest struct {
	Outcome string `json:"outcome"` // hired или rejected
	Reason  string `json:"reason"`  // Причина отклонения (для rejected)
}

type ScheduleRequest struct {
	ScheduledAt string `json:"scheduled_at"` // Дата и время в формате RFC3339
	ResourceURL string `json:"resource_url"` // Ссылка на встречу или тест
}

type ApplicationView struct {
	ID            string            `json:"id"`
	CandidateID   string            `json:"candidate_id"`
	OpeningID     string            `json:"opening_id"`
	CurrentStatus string            `json:"current_status_id"`
	Current       *HistoryEntryView `json:"current,omitempty"` // Активная запись истории
}

func ConvertApplication(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:            rec.ID,
		CandidateID:   rec.CandidateID,
		OpeningID:     rec.OpeningID,
		CurrentStatus: rec.CurrentStatusID,
	}
}
