package dbmodels

// Application - связь кандидата с вакансией.
// CurrentStatusID всегда совпадает со статусом единственной активной записи истории,
// инвариант поддерживается операцией перехода в lib/pipeline.
type Application struct {
	BaseModel
	CandidateID     string `gorm:"type:varchar(36);index"`
	OpeningID       string `gorm:"type:varchar(36);index"`
	CurrentStatusID string `gorm:"type:varchar(36)"`
	CurrentStatus   *Status `gorm:"foreignKey:CurrentStatusID"`
}
