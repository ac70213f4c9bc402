package dbmodels

import "time"

// AssessmentAnswer - ответ кандидата на вопрос теста.
// На пару (заявка, вопрос) хранится ровно одна строка, повторная отправка
// не создает дубликатов (уникальный индекс + полная замена в одной транзакции).
type AssessmentAnswer struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);uniqueIndex:idx_answer_application_question"`
	QuestionID    string `gorm:"type:varchar(36);uniqueIndex:idx_answer_application_question"`
	CandidateID   string `gorm:"type:varchar(36);index"`
	ChoiceID      string `gorm:"type:varchar(36)"`
	AnsweredAt    time.Time
}
