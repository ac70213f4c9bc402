package assessmentapimodels

import (
	"time"

	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
)

// AssessmentWindowView - производное состояние окна доступности.
// Булевы признаки взаимоисключающие, отсчеты присутствуют только в своем состоянии.
type AssessmentWindowView struct {
	OpensAt         time.Time `json:"opens_at"`
	ClosesAt        time.Time `json:"closes_at"`
	DurationMinutes int       `json:"duration_minutes"`
	IsAvailable     bool      `json:"is_available"`
	IsUpcoming      bool      `json:"is_upcoming"`
	IsExpired       bool      `json:"is_expired"`
	TimeUntilStart  *string   `json:"time_until_start"`
	TimeUntilEnd    *string   `json:"time_until_end"`
}

type AssessmentView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Window      AssessmentWindowView `json:"window"`
	CompletedAt *time.Time           `json:"completed_at"`         // Время завершения теста кандидатом
	Questions   []QuestionView       `json:"questions,omitempty"` // Доступны только в открытом окне
}

type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Choices []ChoiceView `json:"choices"`
}

type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func ConvertQuestion(rec dbmodels.AssessmentQuestion) QuestionView {
	result := QuestionView{
		ID:      rec.ID,
		Text:    rec.QuestionText,
		Choices: make([]ChoiceView, 0, len(rec.Choices.Choices)),
	}
	for _, choice := range rec.Choices.Choices {
		result.Choices = append(result.Choices, ChoiceView{ID: choice.ID, Text: choice.Text})
	}
	return result
}

type AnswerItem struct {
	QuestionID string `json:"question_id"`
	ChoiceID   string `json:"choice_id"`
}

type SubmitRequest struct {
	CandidateID string       `json:"candidate_id"` // Идентификатор кандидата
	Answers     []AnswerItem `json:"answers"`
}

func (r SubmitRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан идентификатор кандидата")
	}
	for _, item := range r.Answers {
		if item.QuestionID == "" || item.ChoiceID == "" {
			return errors.New("в ответе не указан вопрос или вариант")
		}
	}
	return nil
}

type SubmitResponse struct {
	CompletedAt time.Time `json:"completed_at"`
}

type EvaluationRequest struct {
	ReviewerID  string  `json:"reviewer_id"` // Идентификатор проверяющего
	Score       float64 `json:"score"`
	IsQualified bool    `json:"is_qualified"`
	Notes       string  `json:"notes"` // Комментарий проверяющего
}

func (r EvaluationRequest) Validate() error {
	if r.ReviewerID == "" {
		return errors.New("не указан идентификатор проверяющего")
	}
	return nil
}

type CreateRequest struct {
	OpeningID       string            `json:"opening_id"`
	Name            string            `json:"name"`
	OpensAt         time.Time         `json:"opens_at"`
	ClosesAt        time.Time         `json:"closes_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Questions       []QuestionRequest `json:"questions"`
}

type QuestionRequest struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

func (r CreateRequest) Validate() error {
	if r.OpeningID == "" {
		return errors.New("не указан идентификатор вакансии")
	}
	rec := dbmodels.Assessment{
		OpensAt:         r.OpensAt,
		ClosesAt:        r.ClosesAt,
		DurationMinutes: r.DurationMinutes,
	}
	return rec.Validate()
}
